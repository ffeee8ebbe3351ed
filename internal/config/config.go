// Package config handles runtime configuration: defaults, an optional JSON
// overlay and command-line flags, applied in that order so later sources win.
package config

import "time"

// Config holds the runtime settings for the catalog app.
//
// Fields:
//   - DatabaseDSN: path/DSN of the on-device SQLite database.
//   - SessionSecret: HMAC secret signing session tokens. The default is for
//     local development only.
//   - SimulatedLatency: artificial delay applied by the stores to mimic a
//     remote backend. Zero disables it.
//   - PageSize: products per page in listings.
type Config struct {
	DatabaseDSN      string
	SessionSecret    string
	SimulatedLatency time.Duration
	PageSize         int
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "vitrine.db"
	c.SessionSecret = "dev-secret"
	c.SimulatedLatency = 800 * time.Millisecond
	c.PageSize = 6
}

// LoadConfig constructs a Config: defaults, then JSON (if a -c/-config file
// was given), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
