package plex

// APIResponse wraps the MediaContainer for JSON unmarshaling
type APIResponse struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// MediaContainer is the root container for Plex API responses. The server's
// identity attributes appear on the container itself when querying the root
// resource.
type MediaContainer struct {
	Size                int         `json:"size"`
	TotalSize           int         `json:"totalSize,omitempty"`
	Offset              int         `json:"offset,omitempty"`
	Identifier          string      `json:"identifier,omitempty"`
	FriendlyName        string      `json:"friendlyName,omitempty"`
	MachineIdentifier   string      `json:"machineIdentifier,omitempty"`
	Version             string      `json:"version,omitempty"`
	Platform            string      `json:"platform,omitempty"`
	PlatformVersion     string      `json:"platformVersion,omitempty"`
	LibrarySectionID    int         `json:"librarySectionID,omitempty"`
	LibrarySectionTitle string      `json:"librarySectionTitle,omitempty"`
	Directory           []Directory `json:"Directory,omitempty"`
	Metadata            []Metadata  `json:"Metadata,omitempty"`
}

// Directory represents a library section
type Directory struct {
	Key              string `json:"key"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Art              string `json:"art,omitempty"`
	Composite        string `json:"composite,omitempty"`
	Thumb            string `json:"thumb,omitempty"`
	UpdatedAt        int64  `json:"updatedAt,omitempty"`
	CreatedAt        int64  `json:"createdAt,omitempty"`
	ContentChangedAt int64  `json:"contentChangedAt,omitempty"`
}

// Metadata represents a media item (movie, show, episode, playlist, or an
// active session's item). The fields feeding the item-formatting contract
// (year, rating, tagline, duration, viewCount, summary) are pointers so that
// absent and zero stay distinguishable after decoding.
type Metadata struct {
	RatingKey            string   `json:"ratingKey"`
	Key                  string   `json:"key"`
	ParentRatingKey      string   `json:"parentRatingKey,omitempty"`
	GrandparentRatingKey string   `json:"grandparentRatingKey,omitempty"`
	GUID                 string   `json:"guid,omitempty"`
	Studio               string   `json:"studio,omitempty"`
	Type                 string   `json:"type"`
	Title                string   `json:"title"`
	GrandparentTitle     string   `json:"grandparentTitle,omitempty"`
	ParentTitle          string   `json:"parentTitle,omitempty"`
	ContentRating        string   `json:"contentRating,omitempty"`
	Summary              *string  `json:"summary,omitempty"`
	Index                int      `json:"index,omitempty"`
	ParentIndex          int      `json:"parentIndex,omitempty"`
	Rating               *float64 `json:"rating,omitempty"`
	AudienceRating       float64  `json:"audienceRating,omitempty"`
	ViewOffset           int64    `json:"viewOffset,omitempty"`
	LastViewedAt         int64    `json:"lastViewedAt,omitempty"`
	Year                 *int     `json:"year,omitempty"`
	Tagline              *string  `json:"tagline,omitempty"`
	Thumb                string   `json:"thumb,omitempty"`
	Art                  string   `json:"art,omitempty"`
	Duration             *int64   `json:"duration,omitempty"`
	AddedAt              int64    `json:"addedAt,omitempty"`
	UpdatedAt            int64    `json:"updatedAt,omitempty"`
	TitleSort            string   `json:"titleSort,omitempty"`
	ViewCount            *int     `json:"viewCount,omitempty"`
	ChildCount           int      `json:"childCount,omitempty"`
	LeafCount            int      `json:"leafCount,omitempty"`
	ViewedLeafCount      int      `json:"viewedLeafCount,omitempty"`
	LibrarySectionID     int      `json:"librarySectionID,omitempty"`
	LibrarySectionKey    string   `json:"librarySectionKey,omitempty"`
	LibrarySectionTitle  string   `json:"librarySectionTitle,omitempty"`
	PlaylistType         string   `json:"playlistType,omitempty"`
	Smart                bool     `json:"smart,omitempty"`
	User                 *User    `json:"User,omitempty"`
}

// User identifies the account attached to a playback session
type User struct {
	Title string `json:"title,omitempty"`
}
