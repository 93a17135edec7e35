// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file, a dotenv file and ARENA_ env vars on top.
// - Errors returned from this package wrap its sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SheetCSVURL is the published activity sheet export. May be empty at
	// boot; requests then fail with a configuration error.
	SheetCSVURL string `koanf:"sheet_csv_url"`

	// EmployeesCSVURL is the published roster export.
	EmployeesCSVURL string `koanf:"employees_csv_url"`

	// FetchTimeoutMS bounds a single source download.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// PollIntervalMS is how often the browser views refresh.
	PollIntervalMS int `koanf:"poll_interval_ms"`

	// RateLimitRPS and RateLimitBurst throttle /api/arena. Zero RPS disables it.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// FinishBonus, StreakBonus and FinishedStatus tune computed-shape scoring.
	FinishBonus    int    `koanf:"finish_bonus"`
	StreakBonus    int    `koanf:"streak_bonus"`
	FinishedStatus string `koanf:"finished_status"`

	// CollationLanguage is the BCP 47 tag used to order names.
	CollationLanguage string `koanf:"collation_language"`

	// Avatars maps a display name to an image URL. Keys are matched
	// trimmed and upper-cased.
	Avatars map[string]string `koanf:"avatars"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		FetchTimeoutMS:    10_000,
		PollIntervalMS:    15_000,
		RateLimitRPS:      5,
		RateLimitBurst:    10,
		FinishBonus:       50,
		StreakBonus:       10,
		FinishedStatus:    "FINISHED",
		CollationLanguage: "und",
		Avatars:           map[string]string{},
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// PollInterval returns PollIntervalMS as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}
