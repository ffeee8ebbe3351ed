package config

import (
	"flag"
	"os"
	"time"

	"github.com/selimv/vitrine/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-d string   database path/DSN
//	-s string   session token secret
//	-l int      simulated latency in milliseconds
//	-p int      products per page
//
// os.Args is filtered to only the flags handled here, so the -c/-config
// flags consumed by parseJson do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-l", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path to the local database")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "secret signing session tokens")
	latency := fs.Int("l", int(cfg.SimulatedLatency.Milliseconds()), "simulated backend latency (in milliseconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "products per page")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SimulatedLatency = time.Duration(*latency) * time.Millisecond
}
