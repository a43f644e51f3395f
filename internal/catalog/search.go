package catalog

import (
	"context"

	"github.com/mmcdole/usher/internal/domain"
)

const (
	defaultSearchLimit = 20
	findLimit          = 5
)

// Search performs a title search across all libraries
func (c *Client) Search(ctx context.Context, query string, limit int) []domain.Item {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	items, err := c.server.Search(ctx, query, limit)
	if err != nil {
		c.logger.Error("search failed", "error", err, "query", query)
		return []domain.Item{}
	}
	return items
}

// SearchInLibrary searches a single library section. An unknown library key
// yields an empty result rather than an error. A non-empty mediaType keeps
// only items of that type.
func (c *Client) SearchInLibrary(ctx context.Context, query, libraryKey, mediaType string, limit int) []domain.Item {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	items, err := c.server.SearchLibrary(ctx, libraryKey, query, limit)
	if err != nil {
		c.logger.Error("library search failed", "error", err, "query", query, "libraryKey", libraryKey)
		return []domain.Item{}
	}

	if mediaType == "" {
		return items
	}

	filtered := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Type == mediaType {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FindItem resolves a title to a catalog item by taking the first result of
// a small search. Nil when nothing matches. This is the only resolution
// strategy mutations use, so an ambiguous title always resolves the same
// way.
func (c *Client) FindItem(ctx context.Context, title string) *domain.Item {
	items := c.Search(ctx, title, findLimit)
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}
