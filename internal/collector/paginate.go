package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

var ErrNoData = errors.New("could not get valid json from steam, check your cookies and session")

// Paginator drives a Fetcher across every page of the market history.
type Paginator struct {
	Fetcher domain.Fetcher
	// Delay is waited after each response before the next request.
	Delay time.Duration
	// MaxPages stops the loop after that many pages; 0 means unlimited.
	MaxPages int
}

// Collect fetches the first page, detects the pagination scheme from it and
// keeps fetching until the history is exhausted. Failures after the first
// page end pagination and the pages collected so far are returned.
func (p Paginator) Collect(ctx context.Context) ([]domain.Page, error) {
	first, err := p.fetchFirst(ctx)
	if err != nil {
		return nil, err
	}

	pages := []domain.Page{first}
	state := DetectStrategy(first)
	slog.Info("pagination strategy detected", "mode", state.Mode.String(), "cursor", state.Cursor, "step", state.Step)

	for {
		if p.MaxPages > 0 && len(pages) >= p.MaxPages {
			slog.Info("page limit reached", "pages", len(pages))
			break
		}
		if !HasMorePages(pages[len(pages)-1], state) {
			break
		}

		if err := p.pause(ctx); err != nil {
			slog.Warn("pagination interrupted", "pages", len(pages), "err", err)
			break
		}

		state = state.Next()
		page, err := p.Fetcher.FetchPage(ctx, state.Params())
		if err != nil {
			slog.Warn("stopping pagination after failed fetch", "cursor", state.Cursor, "err", err)
			break
		}
		if page.Blank() {
			slog.Debug("empty listing fragment, history exhausted", "cursor", state.Cursor)
			break
		}

		pages = append(pages, page)
		slog.Info("fetched page", "mode", state.Mode.String(), "cursor", state.Cursor, "pages", len(pages))
	}

	return pages, nil
}

// pause waits the full delay after the previous response.
func (p Paginator) pause(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// fetchFirst tries page based parameters, then start/count.
func (p Paginator) fetchFirst(ctx context.Context) (domain.Page, error) {
	first, pageErr := p.Fetcher.FetchPage(ctx, domain.Params{"page": 1})
	if pageErr == nil {
		return first, nil
	}
	slog.Debug("page based request failed, trying start/count", "err", pageErr)

	first, offsetErr := p.Fetcher.FetchPage(ctx, domain.Params{"start": 0, "count": defaultPageSize})
	if offsetErr == nil {
		return first, nil
	}
	return domain.Page{}, fmt.Errorf("%w: %w", ErrNoData, errors.Join(pageErr, offsetErr))
}
