// Package shell implements the interactive text-menu loop that ties the
// fetcher, parser, search, and player together.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mvens/tvlens/internal/fetcher"
	"github.com/mvens/tvlens/internal/models"
)

// FetchFunc retrieves raw playlist text for a URL.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LaunchFunc starts playback of a channel.
type LaunchFunc func(ch models.Channel) error

// Vault is the optional persistence surface used by the shell.
// A nil Vault disables favorites entirely.
type Vault interface {
	RecordPlaylist(ctx context.Context, url string, channels []models.Channel) (int64, error)
	ToggleFavorite(ctx context.Context, sourceID int64, name, url string) (bool, error)
	// FavoriteURLs is keyed by name + "\n" + url, matching favKey.
	FavoriteURLs(ctx context.Context, sourceID int64) (map[string]bool, error)
	Favorites(ctx context.Context) ([]models.Channel, error)
}

// PlaylistCache is the optional read-through cache for playlist bodies.
type PlaylistCache interface {
	Playlist(ctx context.Context, url string) (body string, ok bool)
	StorePlaylist(ctx context.Context, url, body string, ttl time.Duration) error
}

// Options carries the shell's dependencies.
type Options struct {
	Fetch    FetchFunc
	Launch   LaunchFunc
	Vault    Vault         // optional
	Cache    PlaylistCache // optional
	CacheTTL time.Duration
}

// Shell is the single-threaded interactive menu loop. It owns the channel
// list for the currently loaded playlist; the list is replaced wholesale
// on each successful fetch and never mutated per entry.
type Shell struct {
	out      io.Writer
	in       io.Reader
	lines    chan string
	sig      chan os.Signal
	fetch    FetchFunc
	launch   LaunchFunc
	vault    Vault
	cache    PlaylistCache
	cacheTTL time.Duration

	channels      []models.Channel
	sourceID      int64
	currentFilter string // last search term; kept for parity, not read back
}

var errInterrupted = errors.New("interrupted")

// New creates a Shell reading commands from in and writing screens to out.
func New(in io.Reader, out io.Writer, opts Options) *Shell {
	return &Shell{
		in:       in,
		out:      out,
		fetch:    opts.Fetch,
		launch:   opts.Launch,
		vault:    opts.Vault,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// Run drives the whole session: prompt for a playlist URL, then hand off
// to the main menu. Returns nil on normal exit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.lines = make(chan string)
	go s.readLines()

	if s.sig == nil {
		s.sig = make(chan os.Signal, 1)
		signal.Notify(s.sig, os.Interrupt)
		defer signal.Stop(s.sig)
	}

	for {
		url, err := s.prompt("Enter M3U playlist URL (or 'q' to quit): ")
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errInterrupted):
			if s.confirmExit("Do you want to quit?") {
				return nil
			}
			continue
		}
		if strings.EqualFold(url, "q") {
			return nil
		}
		if url == "" {
			continue
		}

		fmt.Fprintln(s.out, "Validating and fetching playlist...")
		channels, err := s.loadPlaylist(ctx, url)
		if err != nil {
			s.reportLoadError(err)
			continue
		}
		if len(channels) == 0 {
			fmt.Fprintln(s.out, "No channels found in playlist")
			continue
		}

		// Only a fully successful load replaces the session state.
		s.channels = channels
		s.recordToVault(ctx, url)
		fmt.Fprintf(s.out, "Successfully loaded %d channels\n", len(s.channels))
		s.mainMenu(ctx)
		return nil
	}
}

// loadPlaylist fetches (or serves from cache) and parses the playlist.
// It does not touch session state, so a failure leaves the previously
// loaded channels intact.
func (s *Shell) loadPlaylist(ctx context.Context, url string) ([]models.Channel, error) {
	var body string
	cached := false
	if s.cache != nil {
		if b, ok := s.cache.Playlist(ctx, url); ok {
			body = b
			cached = true
			log.Info().Str("url", url).Msg("playlist served from cache")
		}
	}
	if !cached {
		b, err := s.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		body = b
		if s.cache != nil {
			if err := s.cache.StorePlaylist(ctx, url, body, s.cacheTTL); err != nil {
				log.Warn().Err(err).Msg("caching playlist")
			}
		}
	}

	channels, err := fetcher.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// recordToVault persists the loaded playlist when a vault is configured.
// Vault trouble never interrupts the session.
func (s *Shell) recordToVault(ctx context.Context, url string) {
	if s.vault == nil {
		return
	}
	sourceID, err := s.vault.RecordPlaylist(ctx, url, s.channels)
	if err != nil {
		log.Error().Err(err).Msg("recording playlist")
		return
	}
	s.sourceID = sourceID

	favs, err := s.vault.FavoriteURLs(ctx, sourceID)
	if err != nil {
		log.Error().Err(err).Msg("loading favorites")
		return
	}
	for i := range s.channels {
		s.channels[i].Favorite = favs[favKey(s.channels[i])]
	}
}

func favKey(ch models.Channel) string {
	return ch.Name + "\n" + ch.URL
}

func (s *Shell) reportLoadError(err error) {
	switch {
	case errors.Is(err, fetcher.ErrInvalidURL):
		fmt.Fprintln(s.out, "Error: Invalid URL format")
	case errors.Is(err, fetcher.ErrNetwork):
		fmt.Fprintln(s.out, "Error: Could not fetch playlist. Check your internet connection and URL")
	case errors.Is(err, fetcher.ErrMalformedPlaylist), errors.Is(err, fetcher.ErrParse):
		fmt.Fprintln(s.out, "Error: Invalid playlist format")
	default:
		log.Error().Err(err).Msg("loading playlist")
		fmt.Fprintln(s.out, "An unexpected error occurred")
	}
}

// readLines feeds stdin lines into s.lines and closes it on EOF.
func (s *Shell) readLines() {
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		s.lines <- sc.Text()
	}
	close(s.lines)
}

// prompt prints label and waits for either a line of input or an
// interrupt. Returned input is whitespace-trimmed.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	case <-s.sig:
		fmt.Fprintln(s.out)
		return "", errInterrupted
	}
}

// confirmExit asks for a yes/no answer and reports whether the user
// wants to leave. End of input or a second interrupt count as yes.
func (s *Shell) confirmExit(question string) bool {
	for {
		answer, err := s.prompt(question + " [y/n]: ")
		if err != nil {
			return true
		}
		switch strings.ToLower(answer) {
		case "y":
			return true
		case "n":
			return false
		}
	}
}

// pause waits for the user to press enter before redrawing a screen.
func (s *Shell) pause() {
	_, _ = s.prompt("Press Enter to continue...")
}

func (s *Shell) clear() {
	fmt.Fprint(s.out, "\033[H\033[2J")
}
