package collector

import (
	"testing"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDetectStrategy(t *testing.T) {
	cases := []struct {
		name     string
		page     domain.Page
		expected domain.PaginationState
	}{
		{
			name:     "offset with page size",
			page:     domain.Page{TotalCount: domain.Int(250), PageSize: domain.Int(10), Start: domain.Int(0)},
			expected: domain.PaginationState{Mode: domain.ModeOffsetCount, Cursor: 0, Step: 10},
		},
		{
			name:     "offset with start only defaults step",
			page:     domain.Page{TotalCount: domain.Int(250), Start: domain.Int(20)},
			expected: domain.PaginationState{Mode: domain.ModeOffsetCount, Cursor: 20, Step: 100},
		},
		{
			name:     "offset with count as page size",
			page:     domain.Page{TotalCount: domain.Int(250), Count: domain.Int(50)},
			expected: domain.PaginationState{Mode: domain.ModeOffsetCount, Cursor: 0, Step: 50},
		},
		{
			name:     "total count alone is not enough",
			page:     domain.Page{TotalCount: domain.Int(250)},
			expected: domain.PaginationState{Mode: domain.ModePageNumber, Cursor: 1},
		},
		{
			name:     "page number",
			page:     domain.Page{CurrentPage: domain.Int(3), TotalPages: domain.Int(9)},
			expected: domain.PaginationState{Mode: domain.ModePageNumber, Cursor: 3},
		},
		{
			name:     "nothing known",
			page:     domain.Page{},
			expected: domain.PaginationState{Mode: domain.ModePageNumber, Cursor: 1},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, DetectStrategy(test.page))
		})
	}
}

func TestHasMorePagesOffsetBoundary(t *testing.T) {
	state := domain.PaginationState{Mode: domain.ModeOffsetCount, Cursor: 100, Step: 100}

	page := domain.Page{Start: domain.Int(100), PageSize: domain.Int(100), TotalCount: domain.Int(200), ResultsHTML: "<div>rows</div>"}
	require.False(t, HasMorePages(page, state))

	page.TotalCount = domain.Int(201)
	require.True(t, HasMorePages(page, state))
}

func TestHasMorePagesUsesStateWhenPageOmitsFields(t *testing.T) {
	state := domain.PaginationState{Mode: domain.ModeOffsetCount, Cursor: 50, Step: 50}
	page := domain.Page{TotalCount: domain.Int(120)}
	require.True(t, HasMorePages(page, state))

	state.Cursor = 100
	require.False(t, HasMorePages(page, state))
}

func TestHasMorePagesPageNumber(t *testing.T) {
	state := domain.PaginationState{Mode: domain.ModePageNumber, Cursor: 2}

	require.True(t, HasMorePages(domain.Page{CurrentPage: domain.Int(2), TotalPages: domain.Int(3)}, state))
	require.False(t, HasMorePages(domain.Page{CurrentPage: domain.Int(3), TotalPages: domain.Int(3)}, state))
	require.True(t, HasMorePages(domain.Page{TotalPages: domain.Int(3)}, state))
}

func TestHasMorePagesFallsBackToListingFragment(t *testing.T) {
	offset := domain.PaginationState{Mode: domain.ModeOffsetCount, Step: 100}
	pageMode := domain.PaginationState{Mode: domain.ModePageNumber, Cursor: 1}

	for _, state := range []domain.PaginationState{offset, pageMode} {
		require.True(t, HasMorePages(domain.Page{ResultsHTML: "<div>row</div>"}, state))
		require.False(t, HasMorePages(domain.Page{ResultsHTML: "  \n "}, state))
	}
}
