package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mmcdole/usher/internal/catalog"
)

// Server wraps the MCP server with the Plex assistant's tool surface
type Server struct {
	mcpServer *server.MCPServer
	catalog   *catalog.Client
	logger    *slog.Logger
}

// NewServer creates the MCP server and registers all tools. WithRecovery
// turns an escaped handler panic into an error result instead of tearing
// down the stdio session.
func NewServer(cat *catalog.Client, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		catalog: cat,
		logger:  logger,
	}

	s.mcpServer = server.NewMCPServer(
		"plex-assistant",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// ServeStdio serves the MCP protocol on stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("test_plex_connection",
			mcp.WithDescription("Test the connection to the Plex server"),
		),
		s.handleTestConnection,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_server_info",
			mcp.WithDescription("Get identity information about the Plex server"),
		),
		s.handleServerInfo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_libraries",
			mcp.WithDescription("List all Plex libraries with their item counts"),
		),
		s.handleLibraries,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_library_statistics",
			mcp.WithDescription("Get aggregate item counts across all libraries"),
		),
		s.handleLibraryStatistics,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("search_content",
			mcp.WithDescription("Search for content across all Plex libraries"),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Title or phrase to search for"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results"),
				mcp.DefaultNumber(20),
			),
		),
		s.handleSearchContent,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("search_in_library",
			mcp.WithDescription("Search within a single Plex library"),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Title or phrase to search for"),
			),
			mcp.WithString("library_key",
				mcp.Required(),
				mcp.Description("Key of the library to search (see get_libraries)"),
			),
			mcp.WithString("media_type",
				mcp.Description("Only return items of this type (e.g. movie, show, episode)"),
				mcp.DefaultString(""),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results"),
				mcp.DefaultNumber(20),
			),
		),
		s.handleSearchInLibrary,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_currently_playing",
			mcp.WithDescription("Get playback sessions currently active on the server"),
		),
		s.handleCurrentlyPlaying,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_playlists",
			mcp.WithDescription("List all playlists on the server"),
		),
		s.handlePlaylists,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("create_playlist",
			mcp.WithDescription("Create a new empty playlist"),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title for the new playlist"),
			),
			mcp.WithString("description",
				mcp.Description("Optional description shown under the playlist"),
				mcp.DefaultString(""),
			),
		),
		s.handleCreatePlaylist,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_to_watchlist",
			mcp.WithDescription("Find an item by title and add it to the Watchlist collection"),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title of the movie or show to add"),
			),
		),
		s.handleAddToWatchlist,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("toggle_watched",
			mcp.WithDescription("Find an item by title and mark it watched or unwatched"),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title of the item to update"),
			),
			mcp.WithBoolean("watched",
				mcp.Description("True to mark watched, false to mark unwatched"),
				mcp.DefaultBool(true),
			),
		),
		s.handleToggleWatched,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("mark_collection",
			mcp.WithDescription("Find an item by title and add it to a named collection"),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title of the item to tag"),
			),
			mcp.WithString("collection_name",
				mcp.Required(),
				mcp.Description("Collection to add the item to"),
			),
		),
		s.handleMarkCollection,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("remove_from_collection",
			mcp.WithDescription("Find an item by title and remove it from a named collection"),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title of the item to untag"),
			),
			mcp.WithString("collection_name",
				mcp.Required(),
				mcp.Description("Collection to remove the item from"),
			),
		),
		s.handleRemoveFromCollection,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_on_deck",
			mcp.WithDescription("Get the continue-watching list"),
		),
		s.handleOnDeck,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_recently_added",
			mcp.WithDescription("Get recently added items, optionally from one library"),
			mcp.WithString("library",
				mcp.Description("Library name to scope to (fuzzy matched); empty for all"),
				mcp.DefaultString(""),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results"),
				mcp.DefaultNumber(10),
			),
		),
		s.handleRecentlyAdded,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_playlist_items",
			mcp.WithDescription("List the items in a playlist"),
			mcp.WithString("playlist_key",
				mcp.Required(),
				mcp.Description("Key of the playlist (see get_playlists)"),
			),
		),
		s.handlePlaylistItems,
	)
}
