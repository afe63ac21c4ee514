package collector

import "github.com/qepting91/cs2-market-tracker/internal/domain"

const defaultPageSize = 100

// DetectStrategy chooses the pagination scheme from the first page. A page
// exposing a total count together with a page size or start offset is paged
// by offset; anything else is paged by page number.
func DetectStrategy(first domain.Page) domain.PaginationState {
	_, hasSize := first.PageSize.Positive()
	_, hasCount := first.Count.Positive()

	if first.TotalCount.Valid && (hasSize || hasCount || first.Start.Valid) {
		step := defaultPageSize
		if v, ok := first.PageSize.Positive(); ok {
			step = v
		} else if v, ok := first.Count.Positive(); ok {
			step = v
		}
		cursor := 0
		if first.Start.Valid && first.Start.Value > 0 {
			cursor = first.Start.Value
		}
		return domain.PaginationState{Mode: domain.ModeOffsetCount, Cursor: cursor, Step: step}
	}

	cursor := 1
	if v, ok := first.CurrentPage.Positive(); ok {
		cursor = v
	}
	return domain.PaginationState{Mode: domain.ModePageNumber, Cursor: cursor}
}

// HasMorePages reports whether another page follows the given one. Totals
// reported by the server win; without them a non-blank listing fragment
// means more pages may exist.
func HasMorePages(page domain.Page, state domain.PaginationState) bool {
	switch state.Mode {
	case domain.ModeOffsetCount:
		if page.TotalCount.Valid {
			size, ok := page.PageSize.Positive()
			if !ok {
				size = state.Step
			}
			start := state.Cursor
			if page.Start.Valid {
				start = page.Start.Value
			}
			if size > 0 {
				return start+size < page.TotalCount.Value
			}
		}
	default:
		if page.TotalPages.Valid {
			current, ok := page.CurrentPage.Positive()
			if !ok {
				current = state.Cursor
			}
			return current < page.TotalPages.Value
		}
	}

	return !page.Blank()
}
