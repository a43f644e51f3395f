package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/usher/internal/domain"
)

func TestSearchDefaultLimit(t *testing.T) {
	stub := newStub()
	c := newTestClient(stub)

	c.Search(context.Background(), "matrix", 0)
	require.Len(t, stub.searchCalls, 1)
	assert.Equal(t, searchCall{query: "matrix", limit: defaultSearchLimit}, stub.searchCalls[0])
}

func TestSearchDegradesToEmpty(t *testing.T) {
	stub := newStub()
	stub.searchErr = domain.ErrServerOffline
	c := newTestClient(stub)

	items := c.Search(context.Background(), "matrix", 5)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFindItemReturnsFirstMatch(t *testing.T) {
	stub := newStub()
	stub.searchResults = []domain.Item{
		{Key: "/library/metadata/101", Title: "The Matrix", Type: "movie", RatingKey: "101"},
		{Key: "/library/metadata/102", Title: "The Matrix Reloaded", Type: "movie", RatingKey: "102"},
		{Key: "/library/metadata/103", Title: "The Matrix Revolutions", Type: "movie", RatingKey: "103"},
	}
	c := newTestClient(stub)

	item := c.FindItem(context.Background(), "matrix")
	require.NotNil(t, item)
	assert.Equal(t, "The Matrix", item.Title)

	require.Len(t, stub.searchCalls, 1)
	assert.Equal(t, searchCall{query: "matrix", limit: findLimit}, stub.searchCalls[0])
}

func TestFindItemNilWhenNothingMatches(t *testing.T) {
	stub := newStub()
	c := newTestClient(stub)
	assert.Nil(t, c.FindItem(context.Background(), "does not exist"))
}

func TestSearchInLibraryTypeFilter(t *testing.T) {
	stub := newStub()
	stub.libraryResults["2"] = []domain.Item{
		{Key: "/library/metadata/201", Title: "The Office", Type: "show", RatingKey: "201"},
		{Key: "/library/metadata/202", Title: "Office Space", Type: "movie", RatingKey: "202"},
	}
	c := newTestClient(stub)

	all := c.SearchInLibrary(context.Background(), "office", "2", "", 10)
	assert.Len(t, all, 2)

	shows := c.SearchInLibrary(context.Background(), "office", "2", "show", 10)
	require.Len(t, shows, 1)
	assert.Equal(t, "The Office", shows[0].Title)

	tracks := c.SearchInLibrary(context.Background(), "office", "2", "track", 10)
	assert.NotNil(t, tracks)
	assert.Empty(t, tracks)
}

func TestSearchInLibraryUnknownLibrary(t *testing.T) {
	stub := newStub()
	stub.libraryErr = domain.ErrLibraryNotFound
	c := newTestClient(stub)

	items := c.SearchInLibrary(context.Background(), "office", "99", "", 10)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
