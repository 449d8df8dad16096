// Package logging installs the process-wide diagnostic sink.
package logging

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup opens (or creates) the log file at path and installs a global
// zerolog logger writing timestamped events to it. Diagnostics go to the
// file only; the console stays reserved for the interactive shell.
// The returned func closes the file and must be called on shutdown.
func Setup(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
