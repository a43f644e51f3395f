package catalog

import (
	"context"

	"github.com/mmcdole/usher/internal/domain"
)

// GetPlaylists returns all user playlists
func (c *Client) GetPlaylists(ctx context.Context) []domain.Playlist {
	playlists, err := c.server.GetPlaylists(ctx)
	if err != nil {
		c.logger.Error("failed to fetch playlists", "error", err)
		return []domain.Playlist{}
	}
	return playlists
}

// GetPlaylistItems returns the items of the playlist addressed by key
func (c *Client) GetPlaylistItems(ctx context.Context, key string) []domain.Item {
	items, err := c.server.GetPlaylistItems(ctx, key)
	if err != nil {
		c.logger.Error("failed to fetch playlist items", "error", err, "key", key)
		return []domain.Item{}
	}
	return items
}

// CreatePlaylist creates a playlist and reports the outcome inline instead
// of through an error return. A non-empty description is applied after
// creation; its failure does not undo the creation.
func (c *Client) CreatePlaylist(ctx context.Context, title string, itemIDs []string, description string) domain.PlaylistCreation {
	playlist, err := c.server.CreatePlaylist(ctx, title, itemIDs)
	if err != nil {
		c.logger.Error("failed to create playlist", "error", err, "title", title)
		return domain.PlaylistCreation{Error: err.Error()}
	}

	if description != "" {
		if err := c.server.UpdatePlaylistSummary(ctx, playlist.Key, description); err != nil {
			c.logger.Error("failed to set playlist description", "error", err, "title", title)
		}
	}

	return domain.PlaylistCreation{
		Success:   true,
		Key:       playlist.Key,
		Title:     playlist.Title,
		ItemCount: playlist.ItemCount,
	}
}
