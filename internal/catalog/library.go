package catalog

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/usher/internal/domain"
)

const defaultRecentLimit = 10

// GetLibraries returns all library sections with their item counts. A
// library whose count cannot be fetched is still listed, with a count of 0.
func (c *Client) GetLibraries(ctx context.Context) []domain.Library {
	libraries, err := c.server.GetLibraries(ctx)
	if err != nil {
		c.logger.Error("failed to list libraries", "error", err)
		return []domain.Library{}
	}

	for i := range libraries {
		count, err := c.server.CountLibraryItems(ctx, libraries[i].Key)
		if err != nil {
			c.logger.Error("failed to count library items", "error", err, "library", libraries[i].Title)
			continue
		}
		libraries[i].Count = count
	}

	return libraries
}

// GetLibraryStatistics aggregates item counts across all libraries. Unlike
// GetLibraries, a single failing count discards the whole aggregate: a
// partial total would silently misreport the catalog size.
func (c *Client) GetLibraryStatistics(ctx context.Context) *domain.LibraryStats {
	libraries, err := c.server.GetLibraries(ctx)
	if err != nil {
		c.logger.Error("failed to list libraries", "error", err)
		return nil
	}

	stats := &domain.LibraryStats{
		ByType:    make(map[string]int),
		Libraries: make([]domain.LibraryCount, 0, len(libraries)),
	}

	for _, lib := range libraries {
		count, err := c.server.CountLibraryItems(ctx, lib.Key)
		if err != nil {
			c.logger.Error("failed to count library items", "error", err, "library", lib.Title)
			return nil
		}

		stats.TotalItems += count
		stats.ByType[lib.Type] += count
		stats.Libraries = append(stats.Libraries, domain.LibraryCount{
			Title: lib.Title,
			Type:  lib.Type,
			Count: count,
		})
	}

	return stats
}

// GetOnDeck returns the server-wide continue-watching list
func (c *Client) GetOnDeck(ctx context.Context) []domain.Item {
	items, err := c.server.GetOnDeck(ctx)
	if err != nil {
		c.logger.Error("failed to fetch on deck items", "error", err)
		return []domain.Item{}
	}
	return items
}

// GetRecentlyAdded returns the newest items. A non-empty library name is
// resolved by fuzzy title match; an unresolvable name yields an empty
// result.
func (c *Client) GetRecentlyAdded(ctx context.Context, libraryName string, limit int) []domain.Item {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	libraryKey := ""
	if libraryName != "" {
		library := c.resolveLibrary(ctx, libraryName)
		if library == nil {
			c.logger.Warn("no library matches name", "name", libraryName)
			return []domain.Item{}
		}
		libraryKey = library.Key
	}

	items, err := c.server.GetRecentlyAdded(ctx, libraryKey, limit)
	if err != nil {
		c.logger.Error("failed to fetch recently added items", "error", err)
		return []domain.Item{}
	}
	return items
}

// resolveLibrary matches a human-entered library name to a section using
// fuzzy title matching. Best rank wins; nil when nothing matches.
func (c *Client) resolveLibrary(ctx context.Context, name string) *domain.Library {
	libraries, err := c.server.GetLibraries(ctx)
	if err != nil {
		c.logger.Error("failed to list libraries", "error", err)
		return nil
	}

	titles := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		titles = append(titles, lib.Title)
	}

	matches := fuzzy.RankFindFold(name, titles)
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	for i := range libraries {
		if libraries[i].Title == matches[0].Target {
			return &libraries[i]
		}
	}
	return nil
}
