package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/selimv/vitrine/internal/flagx"
	"github.com/selimv/vitrine/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Durations may be
// written either as strings ("800ms") or integer nanoseconds, courtesy of
// timex.Duration.
type JsonConfig struct {
	DatabaseDSN      string         `json:"database_dsn"`
	SessionSecret    string         `json:"session_secret"`
	SimulatedLatency timex.Duration `json:"simulated_latency"`
	PageSize         int            `json:"page_size"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. When no file is given, cfg is left untouched. Read or
// unmarshal errors panic; config problems should stop the program early.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.SessionSecret = jc.SessionSecret
	cfg.SimulatedLatency = time.Duration(jc.SimulatedLatency.Duration)
	cfg.PageSize = jc.PageSize
}
