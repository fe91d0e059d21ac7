package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/scholarsite/internal/logging"
)

// Load reads configuration from the given YAML file, then overlays a .env
// file next to it and finally the process environment (SCHOLARSITE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// .env values sit between the file and the real environment.
	dotenv := filepath.Join(filepath.Dir(path), EnvFile)
	if vars, err := godotenv.Read(dotenv); err == nil {
		for name, value := range vars {
			if !strings.HasPrefix(name, EnvPrefix) {
				continue
			}
			if err := k.Set(envKey(name), value); err != nil {
				return nil, fmt.Errorf("applying %s: %w", dotenv, err)
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", dotenv, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps SCHOLARSITE_TIMINGS__TOAST_MS to timings.toast_ms.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// DataPath returns the directory holding the JSON documents.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.SiteDir, "data")
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.StateDB == "" {
		return fmt.Errorf("state_db is required")
	}

	return c.Timings.Validate()
}

// Validate checks that no delay is negative and the swipe threshold is set.
func (t Timings) Validate() error {
	delays := []struct {
		name  string
		value int
	}{
		{"search_debounce_ms", t.SearchDebounceMS},
		{"toast_ms", t.ToastMS},
		{"toast_exit_ms", t.ToastExitMS},
		{"autoplay_ms", t.AutoplayMS},
		{"cool_down_ms", t.CoolDownMS},
		{"resume_ms", t.ResumeMS},
		{"move_throttle_ms", t.MoveThrottleMS},
		{"reload_debounce_ms", t.ReloadDebounceMS},
	}
	for _, d := range delays {
		if d.value < 0 {
			return fmt.Errorf("timings.%s must be non-negative", d.name)
		}
	}
	if t.AutoplayMS == 0 {
		return fmt.Errorf("timings.autoplay_ms must be positive")
	}
	if t.SwipeThreshold <= 0 {
		return fmt.Errorf("timings.swipe_threshold must be positive")
	}
	return nil
}
