package config

import "github.com/ziadkadry99/scholarsite/internal/livereload"

const (
	// FileName is the default config file, looked up in the working directory.
	FileName = ".scholarsite.yml"
	// EnvPrefix marks environment overrides: SCHOLARSITE_PORT -> port,
	// SCHOLARSITE_TIMINGS__TOAST_MS -> timings.toast_ms.
	EnvPrefix = "SCHOLARSITE_"
	// EnvFile is read from the config file's directory when present.
	EnvFile = ".env"
)

// DefaultTimings returns the stock page delays.
func DefaultTimings() Timings {
	return Timings{
		SearchDebounceMS: 300,
		ToastMS:          3000,
		ToastExitMS:      300,
		AutoplayMS:       3500,
		CoolDownMS:       5000,
		ResumeMS:         1000,
		MoveThrottleMS:   1000,
		SwipeThreshold:   50,
		ReloadDebounceMS: 200,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:  ".",
		Port:     8080,
		LogLevel: "info",
		StateDB:  ".scholarsite.db",
		Timings:  DefaultTimings(),
		// Copied so callers can append without touching the package default.
		WatchExclude: append([]string(nil), livereload.DefaultExcludes...),
	}
}
