package plex

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/usher/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(ts.URL, "test-token", testLogger())
}

func TestFetchIdentity(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identity", r.URL.Path)
		w.Header().Set("Content-Type", "text/xml")
		io.WriteString(w, `<MediaContainer size="0" machineIdentifier="abc123" version="1.41.0"/>`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	err := c.FetchIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", c.machineIdentifier)
}

func TestDoRequestSetsHeaders(t *testing.T) {
	var gotToken, gotAccept, gotProduct string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Plex-Token")
		gotAccept = r.Header.Get("Accept")
		gotProduct = r.Header.Get("X-Plex-Product")
		io.WriteString(w, `{"MediaContainer":{"size":0}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.GetLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "Usher", gotProduct)
}

func TestDoRequestAuthFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.GetLibraries(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestDoRequestServerOffline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := NewClient(ts.URL, "test-token", testLogger())
	_, err := c.GetLibraries(context.Background())
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestGetServerInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":24,"friendlyName":"Vault","machineIdentifier":"abc123","version":"1.41.0","platform":"Linux","platformVersion":"6.1"}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	info, err := c.GetServerInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ServerInfo{
		FriendlyName:      "Vault",
		MachineIdentifier: "abc123",
		Version:           "1.41.0",
		Platform:          "Linux",
		PlatformVersion:   "6.1",
	}, info)
}

func TestGetLibraries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":2,"Directory":[
			{"key":"1","type":"movie","title":"Movies"},
			{"key":"2","type":"show","title":"TV Shows"}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	libraries, err := c.GetLibraries(context.Background())
	require.NoError(t, err)
	require.Len(t, libraries, 2)
	assert.Equal(t, domain.Library{Key: "1", Title: "Movies", Type: "movie"}, libraries[0])
	assert.Equal(t, domain.Library{Key: "2", Title: "TV Shows", Type: "show"}, libraries[1])
}

func TestCountLibraryItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections/1/all", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("X-Plex-Container-Size"))
		io.WriteString(w, `{"MediaContainer":{"size":0,"totalSize":412}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	count, err := c.CountLibraryItems(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 412, count)
}

func TestCountLibraryItemsSizeFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"MediaContainer":{"size":17}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	count, err := c.CountLibraryItems(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 17, count)
}

func TestCountLibraryItemsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.CountLibraryItems(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrLibraryNotFound)
}

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		io.WriteString(w, `{"MediaContainer":{"size":2,"Metadata":[
			{"ratingKey":"101","key":"/library/metadata/101","type":"movie","title":"The Matrix","year":1999},
			{"ratingKey":"102","key":"/library/metadata/102","type":"movie","title":"The Matrix Reloaded","year":2003}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, err := c.Search(context.Background(), "matrix", 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "The Matrix", items[0].Title)
	require.NotNil(t, items[0].Year)
	assert.Equal(t, 1999, *items[0].Year)
}

func TestSearchLibrary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections/2/search", r.URL.Path)
		assert.Equal(t, "office", r.URL.Query().Get("query"))
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"201","key":"/library/metadata/201","type":"show","title":"The Office"}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, err := c.SearchLibrary(context.Background(), "2", "office", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "show", items[0].Type)
}

func TestSearchLibraryNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.SearchLibrary(context.Background(), "99", "office", 10)
	assert.ErrorIs(t, err, domain.ErrLibraryNotFound)
}

func TestGetMediaItemByRatingKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/metadata/101", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"101","key":"/library/metadata/101","type":"movie","title":"The Matrix","librarySectionID":1}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	item, err := c.GetMediaItem(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", item.Title)
	assert.Equal(t, 1, item.SectionID)
}

func TestGetMediaItemByPath(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/metadata/101", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"101","key":"/library/metadata/101","type":"movie","title":"The Matrix"}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	item, err := c.GetMediaItem(context.Background(), "/library/metadata/101")
	require.NoError(t, err)
	assert.Equal(t, "101", item.RatingKey)
}

func TestGetMediaItemNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"MediaContainer":{"size":0}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.GetMediaItem(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestMarkPlayed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/:/scrobble", r.URL.Path)
		assert.Equal(t, "101", r.URL.Query().Get("key"))
		assert.Equal(t, "com.plexapp.plugins.library", r.URL.Query().Get("identifier"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	assert.NoError(t, c.MarkPlayed(context.Background(), "101"))
}

func TestMarkUnplayed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/:/unscrobble", r.URL.Path)
		assert.Equal(t, "101", r.URL.Query().Get("key"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	assert.NoError(t, c.MarkUnplayed(context.Background(), "101"))
}

func TestAddToCollection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/library/sections/1/all", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("type"))
		assert.Equal(t, "101", q.Get("id"))
		assert.Equal(t, "Favorites", q.Get("collection[0].tag.tag"))
		assert.Equal(t, "1", q.Get("collection.locked"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	item := &domain.Item{RatingKey: "101", Type: "movie", SectionID: 1}
	assert.NoError(t, c.AddToCollection(context.Background(), item, "Favorites"))
}

func TestAddToCollectionNoSection(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer ts.Close()

	c := newTestClient(ts)
	item := &domain.Item{RatingKey: "101", Type: "movie"}
	assert.Error(t, c.AddToCollection(context.Background(), item, "Favorites"))
	assert.Equal(t, 0, requests)
}

func TestRemoveFromCollection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Favorites", r.URL.Query().Get("collection[].tag.tag-"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	item := &domain.Item{RatingKey: "101", Type: "movie", SectionID: 1}
	assert.NoError(t, c.RemoveFromCollection(context.Background(), item, "Favorites"))
}

func TestGetSessions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status/sessions", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"101","key":"/library/metadata/101","type":"movie","title":"The Matrix","duration":8160000,"viewOffset":1200000,"User":{"title":"morpheus"}}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	sessions, err := c.GetSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.Session{
		Title:      "The Matrix",
		User:       "morpheus",
		Type:       "movie",
		Duration:   8160000,
		ViewOffset: 1200000,
	}, sessions[0])
}

func TestGetPlaylists(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"501","key":"/playlists/501/items","type":"playlist","title":"Movie Night","playlistType":"video","leafCount":12,"smart":false}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	playlists, err := c.GetPlaylists(context.Background())
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, domain.Playlist{
		Key:          "/playlists/501/items",
		Title:        "Movie Night",
		PlaylistType: "video",
		ItemCount:    12,
	}, playlists[0])
}

func TestGetPlaylistItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists/501/items", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"101","key":"/library/metadata/101","type":"movie","title":"The Matrix"}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)

	items, err := c.GetPlaylistItems(context.Background(), "/playlists/501/items")
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = c.GetPlaylistItems(context.Background(), "501")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCreatePlaylist(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/playlists", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "Movie Night", q.Get("title"))
		assert.Equal(t, "0", q.Get("smart"))
		assert.Equal(t, "server://abc123/com.plexapp.plugins.library/library/metadata/101,102", q.Get("uri"))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"501","key":"/playlists/501/items","type":"playlist","title":"Movie Night","playlistType":"video","leafCount":2}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	c.machineIdentifier = "abc123"

	playlist, err := c.CreatePlaylist(context.Background(), "Movie Night", []string{"101", "102"})
	require.NoError(t, err)
	assert.Equal(t, "Movie Night", playlist.Title)
	assert.Equal(t, 2, playlist.ItemCount)
}

func TestUpdatePlaylistSummary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/playlists/501", r.URL.Path)
		assert.Equal(t, "Friday picks", r.URL.Query().Get("summary"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	assert.NoError(t, c.UpdatePlaylistSummary(context.Background(), "/playlists/501/items", "Friday picks"))
}

func TestGetOnDeck(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/onDeck", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"301","key":"/library/metadata/301","type":"episode","title":"Pilot","viewOffset":90000}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, err := c.GetOnDeck(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "episode", items[0].Type)
}

func TestGetRecentlyAdded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/recentlyAdded", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("X-Plex-Container-Size"))
		io.WriteString(w, `{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"101","key":"/library/metadata/101","type":"movie","title":"The Matrix"}
		]}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, err := c.GetRecentlyAdded(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestGetRecentlyAddedScoped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections/2/recentlyAdded", r.URL.Path)
		io.WriteString(w, `{"MediaContainer":{"size":0}}`)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	items, err := c.GetRecentlyAdded(context.Background(), "2", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}
