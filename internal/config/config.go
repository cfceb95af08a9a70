// Package config assembles the runtime configuration for the CLI. Values are
// layered: defaults, then environment (including a .env file if present),
// then a JSON config file, then command-line flags. Later sources take
// precedence over earlier ones.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - InboxPath: path of the inbox SQLite database (empty for in-memory).
//   - PrefsPath: path of the app-owned settings SQLite database.
//   - RequestTimeout: client-side deadline for HTTP calls to the remote
//     service. Zero disables the deadline.
type Config struct {
	InboxPath      string
	PrefsPath      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.InboxPath = "inbox.db"
	c.PrefsPath = "settings.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
