package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ziadkadry99/scholarsite/internal/carousel"
	"github.com/ziadkadry99/scholarsite/internal/config"
	"github.com/ziadkadry99/scholarsite/internal/datastore"
	"github.com/ziadkadry99/scholarsite/internal/db"
	"github.com/ziadkadry99/scholarsite/internal/logging"
	"github.com/ziadkadry99/scholarsite/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `scholarsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the command logger; --verbose forces debug output.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(w, level)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// siteTimings converts configured millisecond delays for the page runtime.
func siteTimings(t config.Timings) site.Timings {
	return site.Timings{
		SearchDebounce: ms(t.SearchDebounceMS),
		ToastVisible:   ms(t.ToastMS),
		ToastExit:      ms(t.ToastExitMS),
		Carousel: carousel.Timings{
			Autoplay:       ms(t.AutoplayMS),
			CoolDown:       ms(t.CoolDownMS),
			Resume:         ms(t.ResumeMS),
			MoveThrottle:   ms(t.MoveThrottleMS),
			SwipeThreshold: t.SwipeThreshold,
		},
	}
}

// loadData fetches the documents from a directory or an http(s) base URL,
// defaulting to the configured data directory.
func loadData(ctx context.Context, source string, cfg *config.Config, logger *slog.Logger) (*datastore.Store, datastore.Data, error) {
	if source == "" {
		source = cfg.DataPath()
	}
	store, err := datastore.NewForSource(source, logger)
	if err != nil {
		return nil, datastore.Data{}, err
	}
	return store, store.Load(ctx), nil
}

// openStateDB opens the preferences database named by the config.
func openStateDB(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.StateDB)
	if err != nil {
		return nil, fmt.Errorf("opening state database %s: %w", cfg.StateDB, err)
	}
	return database, nil
}

func stderrLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg)
}
