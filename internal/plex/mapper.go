package plex

import (
	"github.com/mmcdole/usher/internal/domain"
)

// summaryLimit caps item summaries so tool output stays compact.
const summaryLimit = 200

// MapItem converts a single Plex metadata entry to a domain item. The second
// return value is false when the entry carries neither a key nor a rating key
// and should be skipped.
func MapItem(m Metadata) (domain.Item, bool) {
	if m.Key == "" && m.RatingKey == "" {
		return domain.Item{}, false
	}

	item := domain.Item{
		Key:       m.Key,
		Title:     m.Title,
		Type:      m.Type,
		RatingKey: m.RatingKey,
		Year:      m.Year,
		Rating:    m.Rating,
		Tagline:   m.Tagline,
		Duration:  m.Duration,
		ViewCount: m.ViewCount,
		SectionID: m.LibrarySectionID,
	}

	if item.Title == "" {
		item.Title = "Unknown"
	}
	if item.Type == "" {
		item.Type = "unknown"
	}
	if m.Summary != nil {
		// A reported-but-empty summary stays an empty string; only an
		// absent field leaves the key out.
		s := truncateSummary(*m.Summary)
		item.Summary = &s
	}

	return item, true
}

// MapItems converts Plex metadata entries to domain items
func MapItems(metadata []Metadata) []domain.Item {
	items := make([]domain.Item, 0, len(metadata))
	for _, m := range metadata {
		if item, ok := MapItem(m); ok {
			items = append(items, item)
		}
	}
	return items
}

// MapLibraries converts Plex library directories to domain libraries. Item
// counts are not part of the sections response and are filled in separately.
func MapLibraries(directories []Directory) []domain.Library {
	libraries := make([]domain.Library, 0, len(directories))
	for _, d := range directories {
		libraries = append(libraries, domain.Library{
			Key:   d.Key,
			Title: d.Title,
			Type:  d.Type,
		})
	}
	return libraries
}

// MapSessions converts Plex session metadata to domain sessions
func MapSessions(metadata []Metadata) []domain.Session {
	sessions := make([]domain.Session, 0, len(metadata))
	for _, m := range metadata {
		sessions = append(sessions, mapSession(m))
	}
	return sessions
}

func mapSession(m Metadata) domain.Session {
	session := domain.Session{
		Title:      m.Title,
		User:       "Unknown",
		Type:       m.Type,
		ViewOffset: m.ViewOffset,
	}
	if session.Title == "" {
		session.Title = "Unknown"
	}
	if m.User != nil && m.User.Title != "" {
		session.User = m.User.Title
	}
	if m.Duration != nil {
		session.Duration = *m.Duration
	}
	return session
}

// MapPlaylists converts Plex playlist metadata to domain playlists
func MapPlaylists(metadata []Metadata) []domain.Playlist {
	playlists := make([]domain.Playlist, 0, len(metadata))
	for _, m := range metadata {
		if m.Type != "playlist" {
			continue
		}
		playlists = append(playlists, domain.Playlist{
			Key:          m.Key,
			Title:        m.Title,
			PlaylistType: m.PlaylistType,
			ItemCount:    m.LeafCount,
		})
	}
	return playlists
}

// MapServerInfo converts the root container attributes to domain server info
func MapServerInfo(container MediaContainer) domain.ServerInfo {
	return domain.ServerInfo{
		FriendlyName:      container.FriendlyName,
		MachineIdentifier: container.MachineIdentifier,
		Version:           container.Version,
		Platform:          container.Platform,
		PlatformVersion:   container.PlatformVersion,
	}
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryLimit {
		return s
	}
	return string(runes[:summaryLimit])
}
