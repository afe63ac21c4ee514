package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"golang.org/x/time/rate"
)

const CommunityURL = "https://steamcommunity.com"

var (
	ErrPrivateInventory = errors.New("inventory is private, make your inventory public")
	ErrSteamIDNotFound  = errors.New("could not extract steam id from profile url")
)

var (
	steamID64Regex = regexp.MustCompile(`^\d{17}$`)
	gSteamIDRegex  = regexp.MustCompile(`g_steamID = "(\d{17})"`)
	anySteamID     = regexp.MustCompile(`\b\d{17}\b`)
)

// InventoryClient reads the public CS2 inventory of a profile.
type InventoryClient struct {
	http     *resty.Client
	baseURL  string
	pageSize int
	limiter  *rate.Limiter
}

type InventoryOptions struct {
	BaseURL  string
	PageSize int
	Delay    time.Duration
}

func NewInventoryClient(opts InventoryOptions) *InventoryClient {
	if opts.BaseURL == "" {
		opts.BaseURL = CommunityURL
	}
	if opts.PageSize == 0 {
		opts.PageSize = 5000
	}
	if opts.Delay == 0 {
		opts.Delay = time.Second
	}

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeaders(map[string]string{
		"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Upgrade-Insecure-Requests": "1",
	})

	return &InventoryClient{
		http:     client,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		pageSize: opts.PageSize,
		limiter:  rate.NewLimiter(rate.Every(opts.Delay), 1),
	}
}

// ResolveSteamID turns a profile url or SteamID64 into a SteamID64.
func (ic *InventoryClient) ResolveSteamID(ctx context.Context, profile string) (string, error) {
	if steamID64Regex.MatchString(profile) {
		return profile, nil
	}

	res, err := ic.http.R().SetContext(ctx).Get(profile)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("%w: http error: %d", ErrTransport, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", err
	}

	if href, ok := doc.Find("a.inventory_link").Attr("href"); ok {
		if _, rest, found := strings.Cut(href, "/profiles/"); found {
			if id, _, _ := strings.Cut(rest, "/"); id != "" {
				return id, nil
			}
		}
	}

	if groups := gSteamIDRegex.FindSubmatch(res.Body()); len(groups) == 2 {
		return string(groups[1]), nil
	}

	var id string
	doc.Find(`script[type="text/javascript"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(strings.ToLower(text), "steamid") {
			return true
		}
		id = anySteamID.FindString(text)
		return id == ""
	})
	if id != "" {
		return id, nil
	}

	return "", ErrSteamIDNotFound
}

type inventoryResponse struct {
	Assets []struct {
		AssetID    string `json:"assetid"`
		ClassID    string `json:"classid"`
		InstanceID string `json:"instanceid"`
		Amount     string `json:"amount"`
	} `json:"assets"`
	Descriptions []struct {
		ClassID        string       `json:"classid"`
		InstanceID     string       `json:"instanceid"`
		Name           string       `json:"name"`
		MarketName     string       `json:"market_name"`
		MarketHashName string       `json:"market_hash_name"`
		Type           string       `json:"type"`
		Tradable       int          `json:"tradable"`
		Marketable     int          `json:"marketable"`
		Commodity      int          `json:"commodity"`
		IconURL        string       `json:"icon_url"`
		IconURLLarge   string       `json:"icon_url_large"`
		NameColor      string       `json:"name_color"`
		Tags           []domain.Tag `json:"tags"`
	} `json:"descriptions"`
	MoreItems   int    `json:"more_items"`
	LastAssetID string `json:"last_assetid"`
	Success     int    `json:"success"`
	Error       string `json:"error"`
}

// FetchInventory returns every CS2 item in the profile's inventory.
func (ic *InventoryClient) FetchInventory(ctx context.Context, profile string) ([]domain.InventoryItem, error) {
	steamID, err := ic.ResolveSteamID(ctx, profile)
	if err != nil {
		return nil, err
	}

	var items []domain.InventoryItem
	startAssetID := ""
	for {
		if err := ic.limiter.Wait(ctx); err != nil {
			return items, err
		}

		slog.Info("fetching inventory", "steam_id", steamID, "items", len(items))
		page, err := ic.fetchInventoryPage(ctx, steamID, startAssetID)
		if err != nil {
			return items, err
		}
		if len(page.Assets) == 0 && len(page.Descriptions) == 0 {
			slog.Info("no items found or inventory is empty")
			break
		}

		descriptions := make(map[string]int, len(page.Descriptions))
		for i, d := range page.Descriptions {
			descriptions[d.ClassID+"_"+d.InstanceID] = i
		}

		for _, a := range page.Assets {
			item := domain.InventoryItem{
				AssetID:    a.AssetID,
				ClassID:    a.ClassID,
				InstanceID: a.InstanceID,
				Amount:     a.Amount,
				Name:       "Unknown",
			}
			if item.Amount == "" {
				item.Amount = "1"
			}
			if i, ok := descriptions[a.ClassID+"_"+a.InstanceID]; ok {
				d := page.Descriptions[i]
				item.Name = d.Name
				item.MarketName = d.MarketName
				item.MarketHashName = d.MarketHashName
				item.Type = d.Type
				item.Tradable = d.Tradable
				item.Marketable = d.Marketable
				item.Commodity = d.Commodity
				item.IconURL = d.IconURL
				item.IconURLLarge = d.IconURLLarge
				item.NameColor = d.NameColor
				item.Tags = d.Tags
			}
			items = append(items, item)
		}

		if page.MoreItems != 1 || page.LastAssetID == "" {
			break
		}
		startAssetID = page.LastAssetID
	}

	return items, nil
}

func (ic *InventoryClient) fetchInventoryPage(ctx context.Context, steamID, startAssetID string) (inventoryResponse, error) {
	req := ic.http.R().
		SetContext(ctx).
		SetQueryParam("l", "english").
		SetQueryParam("count", strconv.Itoa(ic.pageSize))
	if startAssetID != "" {
		req.SetQueryParam("start_assetid", startAssetID)
	}

	res, err := req.Get(fmt.Sprintf("%s/inventory/%s/%s/%s", ic.baseURL, steamID, domain.CS2AppID, domain.CS2ContextID))
	if err != nil {
		return inventoryResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	switch {
	case res.StatusCode() == http.StatusForbidden:
		return inventoryResponse{}, ErrPrivateInventory
	case res.StatusCode() == http.StatusInternalServerError:
		return inventoryResponse{}, fmt.Errorf("%w: steam returned an error, the inventory might be empty or private", ErrTransport)
	case !res.IsSuccess():
		return inventoryResponse{}, fmt.Errorf("%w: http error: %d", ErrTransport, res.StatusCode())
	}

	var out inventoryResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return inventoryResponse{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if out.Success == 0 && out.Error != "" {
		return inventoryResponse{}, errors.New(out.Error)
	}
	return out, nil
}
