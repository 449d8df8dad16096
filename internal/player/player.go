// Package player locates a media-player executable and launches streams.
package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/mvens/tvlens/internal/models"
)

// ErrNotFound means no usable media-player executable could be located.
var ErrNotFound = errors.New("media player not found")

// DefaultBinary is the executable name searched for on PATH.
const DefaultBinary = "vlc"

// Launcher finds a media player and spawns it for channel URLs.
type Launcher struct {
	binary string
	// path, when set, is used directly and skips discovery.
	path string
	goos string
}

// New returns a Launcher for the default player binary.
func New() *Launcher {
	return &Launcher{binary: DefaultBinary, goos: runtime.GOOS}
}

// NewWithPath returns a Launcher that uses the given executable path
// directly when path is non-empty.
func NewWithPath(path string) *Launcher {
	l := New()
	l.path = path
	return l
}

// Locate returns the player executable path: the configured override if
// set, else a PATH lookup, else the first existing well-known install
// location for the current OS. ErrNotFound when none match.
func (l *Launcher) Locate() (string, error) {
	if l.path != "" {
		if _, err := os.Stat(l.path); err == nil {
			return l.path, nil
		}
		return "", fmt.Errorf("%w: configured path %s does not exist", ErrNotFound, l.path)
	}
	if p, err := exec.LookPath(l.binary); err == nil {
		return p, nil
	}
	for _, p := range wellKnownPaths(l.goos) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Launch spawns the player with the channel URL as its only argument and
// returns without waiting for it. Stdout and stderr are discarded; the
// child is released so its lifetime is decoupled from ours.
func (l *Launcher) Launch(ch models.Channel) error {
	path, err := l.Locate()
	if err != nil {
		return err
	}

	cmd := exec.Command(path, ch.URL)
	// nil Stdout/Stderr connect the child to the null device.
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		log.Warn().Err(err).Msg("releasing player process")
	}
	log.Info().Str("player", path).Str("channel", ch.Name).Str("url", ch.URL).Msg("playback started")
	return nil
}

func wellKnownPaths(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\VideoLAN\VLC\vlc.exe`,
			`C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`,
		}
	case "darwin":
		return []string{
			"/Applications/VLC.app/Contents/MacOS/VLC",
		}
	case "linux":
		return []string{
			"/usr/bin/vlc",
			"/usr/local/bin/vlc",
		}
	default:
		return nil
	}
}
