package catalog

import (
	"context"

	"github.com/mmcdole/usher/internal/domain"
)

// GetCurrentlyPlaying returns all active playback sessions
func (c *Client) GetCurrentlyPlaying(ctx context.Context) []domain.Session {
	sessions, err := c.server.GetSessions(ctx)
	if err != nil {
		c.logger.Error("failed to fetch sessions", "error", err)
		return []domain.Session{}
	}
	return sessions
}
