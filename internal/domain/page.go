package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// App and context the market history assets are keyed under.
const (
	CS2AppID     = "730"
	CS2ContextID = "2"
)

// OptionalInt is a numeric response field that may be absent, null,
// a JSON number or a numeric string.
type OptionalInt struct {
	Value int
	Valid bool
}

func Int(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	*o = OptionalInt{}
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// unparseable values are treated as absent
		return nil
	}
	*o = Int(int(f))
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.Value)), nil
}

// Positive reports the value when it is present and greater than zero.
func (o OptionalInt) Positive() (int, bool) {
	if o.Valid && o.Value > 0 {
		return o.Value, true
	}
	return 0, false
}

type AssetDescription struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Asset struct {
	ID           string             `json:"id"`
	ClassID      string             `json:"classid"`
	InstanceID   string             `json:"instanceid"`
	Descriptions []AssetDescription `json:"descriptions"`
}

// Page is one market history response.
type Page struct {
	ResultsHTML string
	Hovers      string
	TotalCount  OptionalInt
	PageSize    OptionalInt
	Count       OptionalInt
	Start       OptionalInt
	CurrentPage OptionalInt
	TotalPages  OptionalInt
	// app id -> context id -> asset id
	Assets map[string]map[string]map[string]Asset
	Raw    json.RawMessage
}

type pageWire struct {
	ResultsHTML json.RawMessage `json:"results_html"`
	HTML        json.RawMessage `json:"html"`
	Hovers      json.RawMessage `json:"hovers"`
	TotalCount  OptionalInt     `json:"total_count"`
	PageSize    OptionalInt     `json:"pagesize"`
	PageSizeAlt OptionalInt     `json:"page_size"`
	Count       OptionalInt     `json:"count"`
	Start       OptionalInt     `json:"start"`
	Page        OptionalInt     `json:"page"`
	CurrentPage OptionalInt     `json:"current_page"`
	TotalPages  OptionalInt     `json:"total_pages"`
	Assets      json.RawMessage `json:"assets"`
}

func (p *Page) UnmarshalJSON(b []byte) error {
	var w pageWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*p = Page{
		Hovers:      rawString(w.Hovers),
		TotalCount:  w.TotalCount,
		PageSize:    firstValid(w.PageSize, w.PageSizeAlt),
		Count:       w.Count,
		Start:       w.Start,
		CurrentPage: firstValid(w.Page, w.CurrentPage),
		TotalPages:  w.TotalPages,
		Raw:         append(json.RawMessage(nil), b...),
	}
	p.ResultsHTML = rawString(w.ResultsHTML)
	if p.ResultsHTML == "" {
		p.ResultsHTML = rawString(w.HTML)
	}

	// steam sends an empty array instead of an object when there are no assets
	assets := bytes.TrimSpace(w.Assets)
	if len(assets) > 0 && assets[0] == '{' {
		var m map[string]map[string]map[string]Asset
		if err := json.Unmarshal(assets, &m); err == nil {
			p.Assets = m
		}
	}
	return nil
}

func (p Page) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(struct {
		ResultsHTML string      `json:"results_html"`
		Hovers      string      `json:"hovers,omitempty"`
		TotalCount  OptionalInt `json:"total_count"`
		PageSize    OptionalInt `json:"pagesize"`
		Start       OptionalInt `json:"start"`
		CurrentPage OptionalInt `json:"page"`
		TotalPages  OptionalInt `json:"total_pages"`
		Assets      any         `json:"assets,omitempty"`
	}{p.ResultsHTML, p.Hovers, p.TotalCount, p.PageSize, p.Start, p.CurrentPage, p.TotalPages, p.Assets})
}

// Blank reports whether the listing fragment has no content.
func (p Page) Blank() bool {
	return strings.TrimSpace(p.ResultsHTML) == ""
}

// StickerDescriptions returns the sticker_info markup attached to a CS2 asset.
func (p Page) StickerDescriptions(assetID string) []string {
	asset, ok := p.Assets[CS2AppID][CS2ContextID][assetID]
	if !ok {
		return nil
	}
	var out []string
	for _, d := range asset.Descriptions {
		if d.Name == "sticker_info" && d.Value != "" {
			out = append(out, d.Value)
		}
	}
	return out
}

// rawString decodes a JSON string; null, false and other non-strings read as "".
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func firstValid(values ...OptionalInt) OptionalInt {
	for _, v := range values {
		if v.Valid && v.Value != 0 {
			return v
		}
	}
	for _, v := range values {
		if v.Valid {
			return v
		}
	}
	return OptionalInt{}
}

// PaginationMode is the request scheme the history endpoint is paged with.
type PaginationMode int

const (
	ModePageNumber PaginationMode = iota
	ModeOffsetCount
)

func (m PaginationMode) String() string {
	if m == ModeOffsetCount {
		return "start_count"
	}
	return "page"
}

// PaginationState is the cursor of the pagination loop. In page mode Cursor
// is the page number and Step is unused.
type PaginationState struct {
	Mode   PaginationMode
	Cursor int
	Step   int
}

// Next returns the state for the following page.
func (s PaginationState) Next() PaginationState {
	if s.Mode == ModeOffsetCount {
		s.Cursor += s.Step
	} else {
		s.Cursor++
	}
	return s
}

// Params returns the query parameters that request the page at the cursor.
func (s PaginationState) Params() Params {
	if s.Mode == ModeOffsetCount {
		return Params{"start": s.Cursor, "count": s.Step}
	}
	return Params{"page": s.Cursor}
}
