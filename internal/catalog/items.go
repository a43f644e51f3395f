package catalog

import (
	"context"
)

// SetWatched marks the item addressed by key as watched. False when the
// item cannot be found or the update fails; a failed lookup performs no
// mutation.
func (c *Client) SetWatched(ctx context.Context, key string) bool {
	item, err := c.server.GetMediaItem(ctx, key)
	if err != nil {
		c.logger.Error("failed to look up item", "error", err, "key", key)
		return false
	}

	if err := c.server.MarkPlayed(ctx, item.RatingKey); err != nil {
		c.logger.Error("failed to mark watched", "error", err, "key", key)
		return false
	}
	return true
}

// SetUnwatched clears the watched state of the item addressed by key
func (c *Client) SetUnwatched(ctx context.Context, key string) bool {
	item, err := c.server.GetMediaItem(ctx, key)
	if err != nil {
		c.logger.Error("failed to look up item", "error", err, "key", key)
		return false
	}

	if err := c.server.MarkUnplayed(ctx, item.RatingKey); err != nil {
		c.logger.Error("failed to mark unwatched", "error", err, "key", key)
		return false
	}
	return true
}

// AddToCollection tags the item addressed by key with a collection name.
// The looked-up item supplies the library section and media type the edit
// needs.
func (c *Client) AddToCollection(ctx context.Context, key, collection string) bool {
	item, err := c.server.GetMediaItem(ctx, key)
	if err != nil {
		c.logger.Error("failed to look up item", "error", err, "key", key)
		return false
	}

	if err := c.server.AddToCollection(ctx, item, collection); err != nil {
		c.logger.Error("failed to add to collection", "error", err, "key", key, "collection", collection)
		return false
	}
	return true
}

// RemoveFromCollection removes a collection tag from the item addressed by
// key.
func (c *Client) RemoveFromCollection(ctx context.Context, key, collection string) bool {
	item, err := c.server.GetMediaItem(ctx, key)
	if err != nil {
		c.logger.Error("failed to look up item", "error", err, "key", key)
		return false
	}

	if err := c.server.RemoveFromCollection(ctx, item, collection); err != nil {
		c.logger.Error("failed to remove from collection", "error", err, "key", key, "collection", collection)
		return false
	}
	return true
}
