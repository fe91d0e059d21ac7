package config

// Config is the top-level scholarsite configuration, corresponding to
// .scholarsite.yml.
type Config struct {
	SiteDir         string   `yaml:"site_dir" koanf:"site_dir"`
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	Port            int      `yaml:"port" koanf:"port"`
	LogLevel        string   `yaml:"log_level" koanf:"log_level"`
	LiveReload      bool     `yaml:"live_reload" koanf:"live_reload"`
	StateDB         string   `yaml:"state_db" koanf:"state_db"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WatchExclude    []string `yaml:"watch_exclude" koanf:"watch_exclude"`
	Timings         Timings  `yaml:"timings" koanf:"timings"`
}

// Timings holds the page runtime delays in milliseconds.
type Timings struct {
	SearchDebounceMS int     `yaml:"search_debounce_ms" koanf:"search_debounce_ms"`
	ToastMS          int     `yaml:"toast_ms" koanf:"toast_ms"`
	ToastExitMS      int     `yaml:"toast_exit_ms" koanf:"toast_exit_ms"`
	AutoplayMS       int     `yaml:"autoplay_ms" koanf:"autoplay_ms"`
	CoolDownMS       int     `yaml:"cool_down_ms" koanf:"cool_down_ms"`
	ResumeMS         int     `yaml:"resume_ms" koanf:"resume_ms"`
	MoveThrottleMS   int     `yaml:"move_throttle_ms" koanf:"move_throttle_ms"`
	SwipeThreshold   float64 `yaml:"swipe_threshold" koanf:"swipe_threshold"`
	ReloadDebounceMS int     `yaml:"reload_debounce_ms" koanf:"reload_debounce_ms"`
}
