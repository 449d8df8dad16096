package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mvens/tvlens/internal/cache"
	"github.com/mvens/tvlens/internal/config"
	"github.com/mvens/tvlens/internal/fetcher"
	"github.com/mvens/tvlens/internal/logging"
	"github.com/mvens/tvlens/internal/models"
	"github.com/mvens/tvlens/internal/player"
	"github.com/mvens/tvlens/internal/shell"
	"github.com/mvens/tvlens/internal/vault"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use environment")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := logging.Setup(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx := context.Background()

	opts := shell.Options{
		Fetch: func(ctx context.Context, url string) (string, error) {
			return fetcher.Fetch(ctx, url, cfg.UserAgent, cfg.Timeout)
		},
		CacheTTL: cfg.CacheTTL,
	}

	launcher := player.NewWithPath(cfg.PlayerPath)
	opts.Launch = func(ch models.Channel) error { return launcher.Launch(ch) }

	// The vault is optional: without DATABASE_URL nothing is persisted.
	if cfg.DatabaseURL != "" {
		migrationsPath := "file://" + locateMigrations()
		if err := vault.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		v, err := vault.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "db: %v\n", err)
			os.Exit(1)
		}
		defer v.Close()
		opts.Vault = v
		log.Info().Msg("channel vault enabled")
	}

	// Redis playlist cache is optional too.
	if cfg.RedisURL != "" {
		rds, err := cache.New(cfg.RedisURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis: %v\n", err)
			os.Exit(1)
		}
		defer rds.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = rds.Ping(pingCtx)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis ping: %v\n", err)
			os.Exit(1)
		}
		opts.Cache = rds
		log.Info().Msg("playlist cache enabled")
	}

	// SIGINT is handled at the prompts (exit confirmation); only SIGTERM
	// tears the process down directly.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	sh := shell.New(os.Stdin, os.Stdout, opts)
	if err := sh.Run(ctx); err != nil {
		log.Error().Err(err).Msg("shell")
		fmt.Fprintf(os.Stderr, "tvlens: %v\n", err)
		os.Exit(1)
	}
}

// locateMigrations finds the migrations directory next to the working
// directory or the executable.
func locateMigrations() string {
	abs, err := filepath.Abs("migrations")
	if err != nil {
		abs = "migrations"
	}
	if _, err := os.Stat(abs); err != nil {
		if exe, e := os.Executable(); e == nil {
			abs = filepath.Join(filepath.Dir(exe), "migrations")
		}
	}
	return abs
}
