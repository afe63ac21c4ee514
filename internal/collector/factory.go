package collector

import (
	"fmt"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

const (
	ModeLive = "live"
	ModeMock = "mock"
)

// NewCollector selects the history fetcher for the collector mode
func NewCollector(mode string, cookies map[string]string) (domain.Fetcher, error) {
	switch mode {
	case ModeLive, "":
		if len(cookies) == 0 {
			return nil, fmt.Errorf("live mode requires steam cookies")
		}
		return NewHistoryClient(cookies, HistoryOptions{}), nil
	case ModeMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'live' or 'mock')", mode)
	}
}

// NewInventorySource selects the inventory source for the collector mode
func NewInventorySource(mode string) (domain.InventorySource, error) {
	switch mode {
	case ModeLive, "":
		return NewInventoryClient(InventoryOptions{}), nil
	case ModeMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'live' or 'mock')", mode)
	}
}
