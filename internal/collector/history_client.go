package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

const HistoryURL = "https://steamcommunity.com/market/myhistory"

var (
	ErrAuthentication = errors.New("received html instead of json, authentication failed")
	ErrTransport      = errors.New("transport failure")
	ErrMalformed      = errors.New("malformed json response")
)

var historyHeaders = map[string]string{
	"Accept":              "text/javascript, text/html, application/xml, text/xml, */*",
	"Accept-Language":     "en-US,en;q=0.9",
	"Connection":          "keep-alive",
	"Referer":             "https://steamcommunity.com/market/",
	"Sec-Fetch-Dest":      "empty",
	"Sec-Fetch-Mode":      "cors",
	"Sec-Fetch-Site":      "same-origin",
	"User-Agent":          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
	"X-Prototype-Version": "1.7",
	"X-Requested-With":    "XMLHttpRequest",
	"sec-ch-ua":           `"Google Chrome";v="141", "Not?A_Brand";v="8", "Chromium";v="141"`,
	"sec-ch-ua-mobile":    "?0",
	"sec-ch-ua-platform":  `"Windows"`,
}

// HistoryClient fetches market history pages for the account owning the cookies.
type HistoryClient struct {
	http *resty.Client
	url  string
}

type HistoryOptions struct {
	URL     string
	Timeout time.Duration
}

func NewHistoryClient(cookies map[string]string, opts HistoryOptions) *HistoryClient {
	if opts.URL == "" {
		opts.URL = HistoryURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeaders(historyHeaders)
	for name, value := range cookies {
		client.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	return &HistoryClient{http: client, url: opts.URL}
}

func (hc *HistoryClient) FetchPage(ctx context.Context, params domain.Params) (domain.Page, error) {
	query := make(map[string]string, len(params))
	for k, v := range params {
		query[k] = strconv.Itoa(v)
	}

	res, err := hc.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(hc.url)
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !res.IsSuccess() {
		return domain.Page{}, fmt.Errorf("%w: http error: %d", ErrTransport, res.StatusCode())
	}

	contentType := strings.ToLower(res.Header().Get("Content-Type"))
	if strings.Contains(contentType, "text/html") {
		return domain.Page{}, fmt.Errorf("%w (preview: %q)", ErrAuthentication, preview(res.Body(), 200))
	}

	var page domain.Page
	if err := json.Unmarshal(res.Body(), &page); err != nil {
		return domain.Page{}, fmt.Errorf("%w: content type %q: %w (preview: %q)",
			ErrMalformed, contentType, err, preview(res.Body(), 500))
	}
	return page, nil
}

func preview(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return string(body)
}
