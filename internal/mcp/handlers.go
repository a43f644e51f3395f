package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mmcdole/usher/internal/domain"
)

const (
	defaultSearchLimit = 20
	defaultRecentLimit = 10

	// watchlistCollection backs the watchlist tools; Plex has no personal
	// watchlist endpoint for owned servers, so membership lives in a
	// collection of this name.
	watchlistCollection = "Watchlist"
)

// textResult marshals an envelope into the tool's text content. Every
// handler returns through here so each response carries the success flag.
func (s *Server) textResult(envelope map[string]any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("failed to marshal tool result", "error", err)
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult shapes a failure envelope
func (s *Server) errorResult(message string) (*mcp.CallToolResult, error) {
	return s.textResult(map[string]any{
		"success": false,
		"error":   message,
	})
}

func (s *Server) handleTestConnection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := s.catalog.GetServerInfo(ctx)
	if info == (domain.ServerInfo{}) {
		return s.errorResult("Connection failed: server not reachable")
	}
	if !s.catalog.TestConnection(ctx) {
		return s.errorResult("Connection failed: library listing unavailable")
	}

	name := info.FriendlyName
	if name == "" {
		name = "Plex server"
	}

	return s.textResult(map[string]any{
		"success":     true,
		"message":     fmt.Sprintf("Connected to %s", name),
		"server_info": info,
	})
}

func (s *Server) handleServerInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := s.catalog.GetServerInfo(ctx)

	var data any = info
	if info == (domain.ServerInfo{}) {
		data = map[string]any{}
	}

	return s.textResult(map[string]any{
		"success": true,
		"data":    data,
	})
}

func (s *Server) handleLibraries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	libraries := s.catalog.GetLibraries(ctx)
	return s.textResult(map[string]any{
		"success": true,
		"count":   len(libraries),
		"data":    libraries,
	})
}

func (s *Server) handleLibraryStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.catalog.GetLibraryStatistics(ctx)

	var data any = stats
	if stats == nil {
		data = map[string]any{}
	}

	return s.textResult(map[string]any{
		"success": true,
		"data":    data,
	})
}

func (s *Server) handleSearchContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return s.errorResult(err.Error())
	}
	limit := req.GetInt("limit", defaultSearchLimit)

	results := s.catalog.Search(ctx, query, limit)
	return s.textResult(map[string]any{
		"success": true,
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleSearchInLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return s.errorResult(err.Error())
	}
	libraryKey, err := req.RequireString("library_key")
	if err != nil {
		return s.errorResult(err.Error())
	}
	mediaType := req.GetString("media_type", "")
	limit := req.GetInt("limit", defaultSearchLimit)

	results := s.catalog.SearchInLibrary(ctx, query, libraryKey, mediaType, limit)
	return s.textResult(map[string]any{
		"success":     true,
		"query":       query,
		"library_key": libraryKey,
		"count":       len(results),
		"results":     results,
	})
}

func (s *Server) handleCurrentlyPlaying(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := s.catalog.GetCurrentlyPlaying(ctx)
	return s.textResult(map[string]any{
		"success":         true,
		"active_sessions": len(sessions),
		"sessions":        sessions,
	})
}

func (s *Server) handlePlaylists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playlists := s.catalog.GetPlaylists(ctx)
	return s.textResult(map[string]any{
		"success":   true,
		"count":     len(playlists),
		"playlists": playlists,
	})
}

func (s *Server) handleCreatePlaylist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return s.errorResult(err.Error())
	}
	description := req.GetString("description", "")

	result := s.catalog.CreatePlaylist(ctx, title, nil, description)
	if !result.Success {
		return s.errorResult(result.Error)
	}

	return s.textResult(map[string]any{
		"success": true,
		"data":    result,
	})
}

func (s *Server) handleAddToWatchlist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return s.errorResult(err.Error())
	}

	item := s.catalog.FindItem(ctx, title)
	if item == nil {
		return s.errorResult(fmt.Sprintf("Could not find '%s'", title))
	}

	ok := s.catalog.AddToCollection(ctx, item.Key, watchlistCollection)

	// Envelopes echo the requested title; the resolved item contributes
	// only its key.
	envelope := map[string]any{
		"success": ok,
		"title":   title,
	}
	if ok {
		envelope["message"] = fmt.Sprintf("Added '%s' to %s", title, watchlistCollection)
	} else {
		message := fmt.Sprintf("Failed to add '%s' to %s", title, watchlistCollection)
		envelope["message"] = message
		envelope["error"] = message
	}
	return s.textResult(envelope)
}

func (s *Server) handleToggleWatched(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return s.errorResult(err.Error())
	}
	watched := req.GetBool("watched", true)

	item := s.catalog.FindItem(ctx, title)
	if item == nil {
		return s.errorResult(fmt.Sprintf("Could not find '%s'", title))
	}

	var ok bool
	if watched {
		ok = s.catalog.SetWatched(ctx, item.Key)
	} else {
		ok = s.catalog.SetUnwatched(ctx, item.Key)
	}

	envelope := map[string]any{
		"success": ok,
		"title":   title,
		"watched": watched,
	}
	if ok {
		state := "watched"
		if !watched {
			state = "unwatched"
		}
		envelope["message"] = fmt.Sprintf("Marked '%s' as %s", title, state)
	} else {
		message := fmt.Sprintf("Failed to update '%s'", title)
		envelope["message"] = message
		envelope["error"] = message
	}
	return s.textResult(envelope)
}

func (s *Server) handleMarkCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return s.errorResult(err.Error())
	}
	collection, err := req.RequireString("collection_name")
	if err != nil {
		return s.errorResult(err.Error())
	}

	item := s.catalog.FindItem(ctx, title)
	if item == nil {
		return s.errorResult(fmt.Sprintf("Could not find '%s'", title))
	}

	ok := s.catalog.AddToCollection(ctx, item.Key, collection)
	envelope := map[string]any{
		"success":    ok,
		"title":      title,
		"collection": collection,
	}
	if ok {
		envelope["message"] = fmt.Sprintf("Added '%s' to '%s'", title, collection)
	} else {
		message := fmt.Sprintf("Failed to add '%s' to '%s'", title, collection)
		envelope["message"] = message
		envelope["error"] = message
	}
	return s.textResult(envelope)
}

func (s *Server) handleRemoveFromCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return s.errorResult(err.Error())
	}
	collection, err := req.RequireString("collection_name")
	if err != nil {
		return s.errorResult(err.Error())
	}

	item := s.catalog.FindItem(ctx, title)
	if item == nil {
		return s.errorResult(fmt.Sprintf("Could not find '%s'", title))
	}

	ok := s.catalog.RemoveFromCollection(ctx, item.Key, collection)
	envelope := map[string]any{
		"success":    ok,
		"title":      title,
		"collection": collection,
	}
	if ok {
		envelope["message"] = fmt.Sprintf("Removed '%s' from '%s'", title, collection)
	} else {
		message := fmt.Sprintf("Failed to remove '%s' from '%s'", title, collection)
		envelope["message"] = message
		envelope["error"] = message
	}
	return s.textResult(envelope)
}

func (s *Server) handleOnDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.catalog.GetOnDeck(ctx)
	return s.textResult(map[string]any{
		"success": true,
		"count":   len(items),
		"results": items,
	})
}

func (s *Server) handleRecentlyAdded(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	library := req.GetString("library", "")
	limit := req.GetInt("limit", defaultRecentLimit)

	items := s.catalog.GetRecentlyAdded(ctx, library, limit)
	return s.textResult(map[string]any{
		"success": true,
		"library": library,
		"count":   len(items),
		"results": items,
	})
}

func (s *Server) handlePlaylistItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("playlist_key")
	if err != nil {
		return s.errorResult(err.Error())
	}

	items := s.catalog.GetPlaylistItems(ctx, key)
	return s.textResult(map[string]any{
		"success":      true,
		"playlist_key": key,
		"count":        len(items),
		"results":      items,
	})
}
