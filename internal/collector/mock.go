package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

// MockClient implements domain.Fetcher and domain.InventorySource with fake data
type MockClient struct {
	PageSize int
}

func NewMockClient() *MockClient {
	return &MockClient{PageSize: 3}
}

type mockRow struct {
	marker   string
	name     string
	price    string
	assetID  string
	stickers []string
}

// most recent first, the order steam renders history in
var mockHistory = []mockRow{
	{"-", "AK-47 | Redline (Field-Tested)", "$15.00 USD", "9001", []string{"Crown (Foil)"}},
	{"+", "Sticker | Crown (Foil)", "$2.00 USD", "9002", nil},
	{"+", "AK-47 | Redline (Field-Tested)", "$10.00 USD", "9003", nil},
	{"+", "AWP | Asiimov (Field-Tested)", "$80.00 USD", "9004", nil},
	{"-", "Glock-18 | Water Elemental (Minimal Wear)", "$4.10 USD", "9005", nil},
	{"", "M4A4 | Howl (Factory New)", "$3,200.00 USD", "9006", nil},
}

func (mc *MockClient) FetchPage(ctx context.Context, params domain.Params) (domain.Page, error) {
	size := mc.PageSize
	start := params["start"]
	if page, ok := params["page"]; ok {
		start = (page - 1) * size
	} else if count := params["count"]; count > 0 {
		size = count
	}
	if start < 0 {
		start = 0
	}

	var rows, hovers strings.Builder
	assets := map[string]any{}
	for i := start; i < start+size && i < len(mockHistory); i++ {
		r := mockHistory[i]
		rowID := fmt.Sprintf("history_row_%d_%d", 4000+i, 5000+i)
		rows.WriteString(renderMockRow(rowID, r))
		fmt.Fprintf(&hovers, "CreateItemHoverFromContainer( g_rgAssets, '%s_name', 730, '2', '%s', 0 );\n", rowID, r.assetID)
		assets[r.assetID] = map[string]any{
			"id":           r.assetID,
			"descriptions": mockStickerDescriptions(r.stickers),
		}
	}

	body, err := json.Marshal(map[string]any{
		"success":      true,
		"pagesize":     size,
		"total_count":  len(mockHistory),
		"start":        start,
		"results_html": rows.String(),
		"hovers":       hovers.String(),
		"assets":       map[string]any{domain.CS2AppID: map[string]any{domain.CS2ContextID: assets}},
	})
	if err != nil {
		return domain.Page{}, err
	}

	var page domain.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return domain.Page{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return page, nil
}

func renderMockRow(rowID string, r mockRow) string {
	return fmt.Sprintf(`<div class="market_listing_row market_recent_listing_row" id="%[1]s">
	<div class="market_listing_left_cell market_listing_gainorloss">%[2]s</div>
	<img id="%[1]s_image" src="https://community.cloudflare.steamstatic.com/economy/image/x/62fx62f">
	<div class="market_listing_right_cell market_listing_their_price">
		<span class="market_table_value">
			<span class="market_listing_price">
				%[3]s
			</span>
		</span>
	</div>
	<div class="market_listing_item_name_block">
		<span id="%[1]s_name" class="market_listing_item_name">%[4]s</span>
		<br/>
		<span class="market_listing_game_name">Counter-Strike 2</span>
	</div>
	<div style="clear: both"></div>
</div>
`, rowID, r.marker, html.EscapeString(r.price), html.EscapeString(r.name))
}

func mockStickerDescriptions(stickers []string) []map[string]string {
	descs := []map[string]string{{"type": "html", "value": " "}}
	if len(stickers) == 0 {
		return descs
	}

	var b strings.Builder
	b.WriteString(`<br><div id="sticker_info" name="sticker_info" title="Sticker" style="border: 2px solid rgb(102, 102, 102); border-radius: 6px; width=100; margin:4px; padding:8px;"><center>`)
	for _, s := range stickers {
		fmt.Fprintf(&b, `<img width=64 height=48 src="https://steamcdn-a.akamaihd.net/apps/730/icons/econ/stickers/x.png" title="Sticker: %s">`, html.EscapeString(s))
	}
	fmt.Fprintf(&b, `<br>Sticker: %s</center></div>`, html.EscapeString(strings.Join(stickers, ", ")))

	return append(descs, map[string]string{"type": "html", "name": "sticker_info", "value": b.String()})
}

func (mc *MockClient) FetchInventory(ctx context.Context, profile string) ([]domain.InventoryItem, error) {
	return []domain.InventoryItem{
		{
			AssetID:        "123456789",
			ClassID:        "310776884",
			InstanceID:     "188530139",
			Amount:         "1",
			Name:           "AK-47 | Redline",
			MarketName:     "AK-47 | Redline (Field-Tested)",
			MarketHashName: "AK-47 | Redline (Field-Tested)",
			Type:           "Rifle",
			Tradable:       1,
			Marketable:     1,
			NameColor:      "D2D2D2",
			Tags: []domain.Tag{
				{Category: "Weapon", InternalName: "weapon_ak47", LocalizedTagName: "AK-47"},
				{Category: "Exterior", InternalName: "WearCategory2", LocalizedTagName: "Field-Tested"},
			},
		},
		{
			AssetID:        "123456790",
			ClassID:        "469448053",
			InstanceID:     "0",
			Amount:         "1",
			Name:           "CS:GO Weapon Case",
			MarketName:     "CS:GO Weapon Case",
			MarketHashName: "CS:GO Weapon Case",
			Type:           "Base Grade Container",
			Tradable:       1,
			Marketable:     1,
			Commodity:      1,
			NameColor:      "D2D2D2",
		},
		{
			AssetID:        "123456791",
			ClassID:        "520025252",
			InstanceID:     "0",
			Amount:         "1",
			Name:           "Sticker | Crown (Foil)",
			MarketName:     "Sticker | Crown (Foil)",
			MarketHashName: "Sticker | Crown (Foil)",
			Type:           "Extraordinary Sticker",
			Tradable:       0,
			Marketable:     1,
			NameColor:      "D2D2D2",
		},
	}, nil
}
