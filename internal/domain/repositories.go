package domain

import (
	"context"
)

// ServerRepository exposes server-level identity.
type ServerRepository interface {
	// GetServerInfo returns the server's identity attributes
	GetServerInfo(ctx context.Context) (ServerInfo, error)
}

// LibraryRepository provides access to library sections and their aggregates.
type LibraryRepository interface {
	// GetLibraries returns all library sections (counts not populated)
	GetLibraries(ctx context.Context) ([]Library, error)

	// CountLibraryItems returns the total number of items in a section
	CountLibraryItems(ctx context.Context, libraryKey string) (int, error)

	// GetOnDeck returns the server-wide continue-watching list
	GetOnDeck(ctx context.Context) ([]Item, error)

	// GetRecentlyAdded returns recently added items, optionally scoped to a
	// single section (empty libraryKey means server-wide)
	GetRecentlyAdded(ctx context.Context, libraryKey string, limit int) ([]Item, error)
}

// SearchRepository provides title search.
type SearchRepository interface {
	// Search performs a search across all libraries
	Search(ctx context.Context, query string, limit int) ([]Item, error)

	// SearchLibrary searches within a single library section
	SearchLibrary(ctx context.Context, libraryKey, query string, limit int) ([]Item, error)
}

// MetadataRepository provides item lookup and item-level mutations.
type MetadataRepository interface {
	// GetMediaItem returns metadata for one item, addressed by metadata key
	// path or bare rating key
	GetMediaItem(ctx context.Context, key string) (*Item, error)

	// MarkPlayed marks an item as fully watched
	MarkPlayed(ctx context.Context, ratingKey string) error

	// MarkUnplayed clears an item's watched state
	MarkUnplayed(ctx context.Context, ratingKey string) error

	// AddToCollection tags an item with a collection name
	AddToCollection(ctx context.Context, item *Item, collection string) error

	// RemoveFromCollection removes a collection tag from an item
	RemoveFromCollection(ctx context.Context, item *Item, collection string) error
}

// SessionRepository lists active playback sessions.
type SessionRepository interface {
	// GetSessions returns the sessions currently playing
	GetSessions(ctx context.Context) ([]Session, error)
}

// PlaylistRepository provides playlist reads and creation.
type PlaylistRepository interface {
	// GetPlaylists returns all user playlists
	GetPlaylists(ctx context.Context) ([]Playlist, error)

	// GetPlaylistItems returns the items of one playlist
	GetPlaylistItems(ctx context.Context, ratingKey string) ([]Item, error)

	// CreatePlaylist creates a playlist, optionally with initial items
	CreatePlaylist(ctx context.Context, title string, itemIDs []string) (*Playlist, error)

	// UpdatePlaylistSummary sets a playlist's description text
	UpdatePlaylistSummary(ctx context.Context, ratingKey, summary string) error
}
