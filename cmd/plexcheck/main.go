package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/mmcdole/usher/internal/catalog"
	"github.com/mmcdole/usher/internal/config"
	"github.com/mmcdole/usher/internal/domain"
	"github.com/mmcdole/usher/internal/log"
	"github.com/mmcdole/usher/internal/plex"
)

// Version is set at build time via ldflags
var Version = "dev"

// searchLimit caps the search check so the output stays scannable.
const searchLimit = 5

// Color palette
var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A00D")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showVersion bool
		query       string
		logToFile   bool
	)
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&showVersion, "v", false, "print version and exit (shorthand)")
	flag.StringVar(&query, "query", "matrix", "query used by the search check")
	flag.BoolVar(&logToFile, "log", false, "also write structured logs to the configured log file")
	flag.Parse()

	if showVersion {
		fmt.Printf("plexcheck %s\n", Version)
		return nil
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The check talks to the terminal, so structured logs stay off unless
	// asked for.
	logger := log.NullLogger()
	if logToFile {
		logger, err = log.Setup(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
	}

	fmt.Println(accentStyle.Render("Usher") + " connection check")
	fmt.Println(dimStyle.Render("Server: " + cfg.Server.URL))
	fmt.Println(dimStyle.Render("Token:  " + maskToken(cfg.Server.Token)))

	if cfg.Server.Token == "" {
		token, err := promptToken()
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("a Plex token is required")
		}
		cfg.Server.Token = token
	}

	client := plex.NewClient(cfg.Server.URL, cfg.Server.Token, logger)
	cat := catalog.New(client, logger)

	fmt.Println()
	if err := connectWithSpinner(client, cat); err != nil {
		fmt.Printf("%s Could not connect to Plex at %s\n", errorStyle.Render("✗"), cfg.Server.URL)
		return err
	}
	fmt.Printf("%s Connected to %s\n", successStyle.Render("✓"), cfg.Server.URL)

	ctx := context.Background()

	checkServerInfo(ctx, cat)
	checkLibraries(ctx, cat)
	checkStatistics(ctx, cat)
	checkSearch(ctx, cat, query)
	checkSessions(ctx, cat)
	checkPlaylists(ctx, cat)
	checkOnDeck(ctx, cat)

	fmt.Println()
	fmt.Println(successStyle.Render("Check complete."))
	return nil
}

// promptToken reads the Plex token without echoing it to the terminal.
func promptToken() (string, error) {
	fmt.Print("Plex token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	fmt.Println() // Add newline after hidden input

	return strings.TrimSpace(string(tokenBytes)), nil
}

// connectWithSpinner verifies the server while a spinner runs: the
// identity endpoint first, then the library listing gate.
func connectWithSpinner(client *plex.Client, cat *catalog.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := client.FetchIdentity(ctx); err != nil {
			errCh <- err
			return
		}
		if !cat.TestConnection(ctx) {
			errCh <- fmt.Errorf("connection test failed")
			return
		}
		errCh <- nil
	}()

	frame := 0
	fmt.Printf("\r%s Connecting to Plex...", spinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			fmt.Print(clearSpinnerLine)
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Connecting to Plex...", spinnerFrames[frame%len(spinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection timed out")
		}
	}
}

func checkServerInfo(ctx context.Context, cat *catalog.Client) {
	section("Server", "")

	info := cat.GetServerInfo(ctx)
	if info == (domain.ServerInfo{}) {
		fail("server info unavailable")
		return
	}

	fmt.Printf("   Name:     %s\n", info.FriendlyName)
	fmt.Printf("   Version:  %s\n", info.Version)
	fmt.Printf("   Platform: %s %s\n", info.Platform, info.PlatformVersion)
	fmt.Printf("   Machine:  %s\n", dimStyle.Render(info.MachineIdentifier))
}

func checkLibraries(ctx context.Context, cat *catalog.Client) {
	section("Libraries", "")

	libraries := cat.GetLibraries(ctx)
	if len(libraries) == 0 {
		none("no libraries found")
		return
	}

	for _, lib := range libraries {
		fmt.Printf("   - %s (%s): %d items\n", lib.Title, lib.Type, lib.Count)
	}
}

func checkStatistics(ctx context.Context, cat *catalog.Client) {
	section("Statistics", "")

	stats := cat.GetLibraryStatistics(ctx)
	if stats == nil {
		fail("statistics unavailable")
		return
	}

	fmt.Printf("   Total items: %d\n", stats.TotalItems)

	types := make([]string, 0, len(stats.ByType))
	for mediaType := range stats.ByType {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	for _, mediaType := range types {
		fmt.Printf("   - %s: %d\n", mediaType, stats.ByType[mediaType])
	}
}

func checkSearch(ctx context.Context, cat *catalog.Client, query string) {
	section("Search", query)

	results := cat.Search(ctx, query, searchLimit)
	if len(results) == 0 {
		none("no results found")
		return
	}

	for _, item := range results {
		fmt.Printf("   - %s (%s)\n", item.Title, item.Type)
	}
}

func checkSessions(ctx context.Context, cat *catalog.Client) {
	section("Now playing", "")

	sessions := cat.GetCurrentlyPlaying(ctx)
	if len(sessions) == 0 {
		none("nobody is watching anything right now")
		return
	}

	for _, s := range sessions {
		progress := "n/a"
		if s.Duration > 0 {
			progress = fmt.Sprintf("%ds / %ds", s.ViewOffset/1000, s.Duration/1000)
		}
		fmt.Printf("   - %s\n", s.Title)
		fmt.Printf("     %s\n", dimStyle.Render(fmt.Sprintf("%s · %s · %s", s.User, s.Type, progress)))
	}
}

func checkPlaylists(ctx context.Context, cat *catalog.Client) {
	section("Playlists", "")

	playlists := cat.GetPlaylists(ctx)
	if len(playlists) == 0 {
		none("no playlists found")
		return
	}

	for _, p := range playlists {
		fmt.Printf("   - %s (%s): %d items\n", p.Title, p.PlaylistType, p.ItemCount)
	}
}

func checkOnDeck(ctx context.Context, cat *catalog.Client) {
	section("On deck", "")

	items := cat.GetOnDeck(ctx)
	if len(items) == 0 {
		none("nothing on deck")
		return
	}

	for _, item := range items {
		fmt.Printf("   - %s (%s)\n", item.Title, item.Type)
	}
}

func section(title, note string) {
	fmt.Println()
	if note != "" {
		fmt.Println(accentStyle.Render(title) + dimStyle.Render(" ("+note+")"))
		return
	}
	fmt.Println(accentStyle.Render(title))
}

func fail(msg string) {
	fmt.Printf("   %s %s\n", errorStyle.Render("✗"), msg)
}

func none(msg string) {
	fmt.Println(dimStyle.Render("   " + msg))
}

// maskToken shows just enough of the token to confirm which one is loaded.
func maskToken(token string) string {
	if token == "" {
		return "not set (will prompt)"
	}
	if len(token) <= 4 {
		return "set"
	}
	return token[:4] + "…"
}
