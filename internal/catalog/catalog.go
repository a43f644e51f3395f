package catalog

import (
	"context"
	"log/slog"

	"github.com/mmcdole/usher/internal/domain"
)

// MediaServer combines the repository interfaces a media server backend
// must implement to serve the full tool surface.
type MediaServer interface {
	domain.ServerRepository
	domain.LibraryRepository
	domain.SearchRepository
	domain.MetadataRepository
	domain.SessionRepository
	domain.PlaylistRepository
}

// Client answers catalog questions and performs catalog mutations against a
// media server. Every method is total: remote faults are logged and
// degraded to an empty or false result, never returned as errors. Callers
// can therefore shape a response from any return value.
type Client struct {
	server MediaServer
	logger *slog.Logger
}

// New creates a catalog client backed by the given media server
func New(server MediaServer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		server: server,
		logger: logger,
	}
}

// TestConnection reports whether the server currently answers catalog
// requests.
func (c *Client) TestConnection(ctx context.Context) bool {
	if _, err := c.server.GetLibraries(ctx); err != nil {
		c.logger.Error("connection test failed", "error", err)
		return false
	}
	return true
}

// GetServerInfo returns the server's identity attributes, or the zero value
// when the server cannot be reached.
func (c *Client) GetServerInfo(ctx context.Context) domain.ServerInfo {
	info, err := c.server.GetServerInfo(ctx)
	if err != nil {
		c.logger.Error("failed to fetch server info", "error", err)
		return domain.ServerInfo{}
	}
	return info
}
