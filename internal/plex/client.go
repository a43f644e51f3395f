package plex

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/mmcdole/usher/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Usher/1.0"
	clientID       = "usher-mcp-client"
)

// scrobbleIdentifier is the client identifier Plex expects on watch-state
// endpoints.
const scrobbleIdentifier = "com.plexapp.plugins.library"

// errNotFound marks a 404 from the server; callers translate it to the
// domain sentinel that fits the resource they asked for.
var errNotFound = errors.New("plex: resource not found")

// Client implements domain.ServerRepository, domain.LibraryRepository,
// domain.SearchRepository, domain.MetadataRepository,
// domain.SessionRepository, and domain.PlaylistRepository for Plex
type Client struct {
	baseURL           string
	token             string
	machineIdentifier string // fetched from /identity on init
	httpClient        *http.Client
	logger            *slog.Logger
}

// NewClient creates a new Plex API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// FetchIdentity fetches and stores the server's machineIdentifier
func (c *Client) FetchIdentity(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/identity", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Parse XML response
	var identity struct {
		XMLName           xml.Name `xml:"MediaContainer"`
		MachineIdentifier string   `xml:"machineIdentifier,attr"`
	}
	if err := xml.Unmarshal(body, &identity); err != nil {
		return err
	}

	c.machineIdentifier = identity.MachineIdentifier
	return nil
}

// doRequest performs an authenticated HTTP request. Any 2xx status is
// treated as success so the same path serves GET, PUT, and POST endpoints.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("X-Plex-Client-Identifier", clientID)
	req.Header.Set("X-Plex-Product", "Usher")
	req.Header.Set("X-Plex-Version", "1.0")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("plex request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("plex request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("plex request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// parseResponse parses a JSON response into APIResponse
func (c *Client) parseResponse(body []byte) (*MediaContainer, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp.MediaContainer, nil
}

// GetServerInfo returns identity details from the server's root resource
func (c *Client) GetServerInfo(ctx context.Context) (domain.ServerInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return domain.ServerInfo{}, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return domain.ServerInfo{}, err
	}

	return MapServerInfo(*container), nil
}

// GetLibraries returns all available libraries
func (c *Client) GetLibraries(ctx context.Context) ([]domain.Library, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/library/sections", nil)
	if err != nil {
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapLibraries(container.Directory), nil
}

// CountLibraryItems returns the number of items in a library without
// fetching them. A zero container size makes Plex report totalSize only.
func (c *Client) CountLibraryItems(ctx context.Context, libraryKey string) (int, error) {
	query := url.Values{}
	query.Set("X-Plex-Container-Start", "0")
	query.Set("X-Plex-Container-Size", "0")

	path := fmt.Sprintf("/library/sections/%s/all", libraryKey)
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return 0, domain.ErrLibraryNotFound
		}
		return 0, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return 0, err
	}

	total := container.TotalSize
	if total == 0 {
		total = container.Size // Fallback if TotalSize not provided
	}

	return total, nil
}

// Search performs a search across all libraries
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/search", params)
	if err != nil {
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapItems(container.Metadata), nil
}

// SearchLibrary performs a search scoped to a single library
func (c *Client) SearchLibrary(ctx context.Context, libraryKey, query string, limit int) ([]domain.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := fmt.Sprintf("/library/sections/%s/search", libraryKey)
	body, err := c.doRequest(ctx, http.MethodGet, path, params)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrLibraryNotFound
		}
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapItems(container.Metadata), nil
}

// GetMediaItem returns metadata for a specific item. The key may be a full
// metadata path or a bare rating key.
func (c *Client) GetMediaItem(ctx context.Context, key string) (*domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodGet, metadataPath(key), nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	if len(container.Metadata) == 0 {
		return nil, domain.ErrItemNotFound
	}

	item, ok := MapItem(container.Metadata[0])
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

// MarkPlayed marks an item as fully watched
func (c *Client) MarkPlayed(ctx context.Context, ratingKey string) error {
	query := url.Values{}
	query.Set("key", ratingKey)
	query.Set("identifier", scrobbleIdentifier)

	_, err := c.doRequest(ctx, http.MethodGet, "/:/scrobble", query)
	return err
}

// MarkUnplayed marks an item as unwatched
func (c *Client) MarkUnplayed(ctx context.Context, ratingKey string) error {
	query := url.Values{}
	query.Set("key", ratingKey)
	query.Set("identifier", scrobbleIdentifier)

	_, err := c.doRequest(ctx, http.MethodGet, "/:/unscrobble", query)
	return err
}

// AddToCollection tags an item with a collection name, creating the
// collection if it does not exist yet. The item must carry its library
// section so the edit can be addressed to the right section.
func (c *Client) AddToCollection(ctx context.Context, item *domain.Item, collection string) error {
	if item.SectionID == 0 {
		return fmt.Errorf("item %s has no library section", item.RatingKey)
	}

	query := url.Values{}
	query.Set("type", strconv.Itoa(mediaTypeCode(item.Type)))
	query.Set("id", item.RatingKey)
	query.Set("collection[0].tag.tag", collection)
	query.Set("collection.locked", "1")

	path := fmt.Sprintf("/library/sections/%d/all", item.SectionID)
	_, err := c.doRequest(ctx, http.MethodPut, path, query)
	return err
}

// RemoveFromCollection removes a collection tag from an item
func (c *Client) RemoveFromCollection(ctx context.Context, item *domain.Item, collection string) error {
	if item.SectionID == 0 {
		return fmt.Errorf("item %s has no library section", item.RatingKey)
	}

	query := url.Values{}
	query.Set("type", strconv.Itoa(mediaTypeCode(item.Type)))
	query.Set("id", item.RatingKey)
	query.Set("collection[].tag.tag-", collection)
	query.Set("collection.locked", "1")

	path := fmt.Sprintf("/library/sections/%d/all", item.SectionID)
	_, err := c.doRequest(ctx, http.MethodPut, path, query)
	return err
}

// GetSessions returns all active playback sessions
func (c *Client) GetSessions(ctx context.Context) ([]domain.Session, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/status/sessions", nil)
	if err != nil {
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapSessions(container.Metadata), nil
}

// GetPlaylists returns all user playlists
func (c *Client) GetPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/playlists", nil)
	if err != nil {
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapPlaylists(container.Metadata), nil
}

// GetPlaylistItems returns all items in a playlist. The key may be the
// playlist's item path or a bare rating key.
func (c *Client) GetPlaylistItems(ctx context.Context, playlistKey string) ([]domain.Item, error) {
	path := playlistBasePath(playlistKey) + "/items"
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapItems(container.Metadata), nil
}

// CreatePlaylist creates a new playlist with the given items. The server
// decides whether an empty item list is acceptable.
func (c *Client) CreatePlaylist(ctx context.Context, title string, itemIDs []string) (*domain.Playlist, error) {
	// Build canonical URI with machineIdentifier
	ids := strings.Join(itemIDs, ",")
	uri := fmt.Sprintf("server://%s/com.plexapp.plugins.library/library/metadata/%s",
		c.machineIdentifier, ids)

	query := url.Values{}
	query.Set("type", "video")
	query.Set("title", title)
	query.Set("smart", "0")
	query.Set("uri", uri)

	body, err := c.doRequest(ctx, http.MethodPost, "/playlists", query)
	if err != nil {
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	playlists := MapPlaylists(container.Metadata)
	if len(playlists) == 0 {
		return nil, fmt.Errorf("no playlist returned from server")
	}

	return &playlists[0], nil
}

// UpdatePlaylistSummary sets the description shown for a playlist
func (c *Client) UpdatePlaylistSummary(ctx context.Context, playlistKey, summary string) error {
	query := url.Values{}
	query.Set("summary", summary)

	_, err := c.doRequest(ctx, http.MethodPut, playlistBasePath(playlistKey), query)
	return err
}

// GetOnDeck returns in-progress items across all libraries
func (c *Client) GetOnDeck(ctx context.Context) ([]domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/library/onDeck", nil)
	if err != nil {
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapItems(container.Metadata), nil
}

// GetRecentlyAdded returns the newest items, optionally scoped to a library
func (c *Client) GetRecentlyAdded(ctx context.Context, libraryKey string, limit int) ([]domain.Item, error) {
	query := url.Values{}
	query.Set("X-Plex-Container-Start", "0")
	if limit > 0 {
		query.Set("X-Plex-Container-Size", strconv.Itoa(limit))
	}

	path := "/library/recentlyAdded"
	if libraryKey != "" {
		path = fmt.Sprintf("/library/sections/%s/recentlyAdded", libraryKey)
	}

	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrLibraryNotFound
		}
		return nil, err
	}

	container, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	return MapItems(container.Metadata), nil
}

// metadataPath accepts either a full metadata path or a bare rating key
func metadataPath(key string) string {
	if strings.HasPrefix(key, "/") {
		return key
	}
	return "/library/metadata/" + key
}

// playlistBasePath accepts either a playlist's item path or a bare rating
// key and returns the playlist resource path.
func playlistBasePath(key string) string {
	if strings.HasPrefix(key, "/") {
		return strings.TrimSuffix(key, "/items")
	}
	return "/playlists/" + key
}

// mediaTypeCode maps a media type name to the numeric code Plex expects on
// library edits. Unrecognized types fall back to movie.
func mediaTypeCode(mediaType string) int {
	switch mediaType {
	case "movie":
		return 1
	case "show":
		return 2
	case "season":
		return 3
	case "episode":
		return 4
	case "artist":
		return 8
	case "album":
		return 9
	case "track":
		return 10
	case "photo":
		return 13
	case "clip":
		return 18
	default:
		return 1
	}
}
