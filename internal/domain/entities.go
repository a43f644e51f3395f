package domain

// Item is a single catalog entry (movie, show, episode, track, ...) as
// surfaced by search and lookup operations. The first four fields are always
// populated; the pointer fields are copied over only when the server reported
// them, so their presence in JSON mirrors their presence upstream.
type Item struct {
	Key       string `json:"key"`       // Opaque identifier, the only key mutations accept
	Title     string `json:"title"`     // Display title, "Unknown" when missing
	Type      string `json:"type"`      // movie/show/season/episode/..., "unknown" when missing
	RatingKey string `json:"ratingKey"` // Numeric server key as a string

	Year      *int     `json:"year,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	Tagline   *string  `json:"tagline,omitempty"`
	Duration  *int64   `json:"duration,omitempty"` // Milliseconds
	ViewCount *int     `json:"viewCount,omitempty"`
	Summary   *string  `json:"summary,omitempty"` // Truncated to 200 characters

	// SectionID is the owning library section, carried for collection edits.
	// It is plumbing, not payload, and stays out of the envelope.
	SectionID int `json:"-"`
}

// Library is a single library section.
type Library struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"` // movie/show/artist/photo
	Count int    `json:"count"`
}

// LibraryCount is one row of the per-library statistics breakdown.
type LibraryCount struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// LibraryStats aggregates item counts across all library sections.
type LibraryStats struct {
	TotalItems int            `json:"total_items"`
	ByType     map[string]int `json:"by_type"`
	Libraries  []LibraryCount `json:"libraries"`
}

// Session is an active playback instance on the server.
type Session struct {
	Title      string `json:"title"` // "Unknown" when the server omits it
	User       string `json:"user"`  // First attached username, else "Unknown"
	Type       string `json:"type"`
	Duration   int64  `json:"duration"`   // Milliseconds, 0 when unknown
	ViewOffset int64  `json:"viewOffset"` // Playback position in milliseconds
}

// Playlist is a user playlist.
type Playlist struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	PlaylistType string `json:"playlistType"` // video/audio/photo
	ItemCount    int    `json:"itemCount"`
}

// ServerInfo holds the server's identity attributes. The zero value stands
// for "no information available".
type ServerInfo struct {
	FriendlyName      string `json:"friendlyName"`
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
	Platform          string `json:"platform"`
	PlatformVersion   string `json:"platformVersion"`
}

// PlaylistCreation is the outcome of a create-playlist request. Exactly one
// of the two variants is populated: Success true with key/title/itemCount,
// or Success false with Error.
type PlaylistCreation struct {
	Success   bool   `json:"success"`
	Key       string `json:"key,omitempty"`
	Title     string `json:"title,omitempty"`
	ItemCount int    `json:"itemCount"`
	Error     string `json:"error,omitempty"`
}
