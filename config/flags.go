package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"salesanalysis/plot"
)

const ENV_PREFIX = "SALES_ANALYSIS_"

// Flags holds the process configuration. Environment variables provide the defaults and command line flags override
// them.
type Flags struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	AssetsHost string `env:"ASSETS_HOST"`
	// SweepInterval is how often views without an update stream get unmounted, and how long they may sit idle first.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`
	// Snapshot, when set, writes the initial view to this path as a standalone page instead of serving.
	Snapshot string `env:"SNAPSHOT"`
}

// GetFlags reads the configuration from the environment and the process arguments.
func GetFlags(args []string) (*Flags, error) {
	return ParseFlags(flag.NewFlagSet("salesanalysis", flag.ContinueOnError), args, nil)
}

// ParseFlags parses args into a Flags using fs. environment replaces the process environment when it is non-nil.
func ParseFlags(fs *flag.FlagSet, args []string, environment map[string]string) (*Flags, error) {
	flags := &Flags{}
	opts := env.Options{Prefix: ENV_PREFIX}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(flags, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if flags.AssetsHost == "" {
		flags.AssetsHost = plot.DEFAULT_ASSETS_HOST
	}

	fs.StringVar(&flags.Addr, "addr", flags.Addr, "http listen address")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "log format (text, json)")
	fs.StringVar(&flags.AssetsHost, "assets-host", flags.AssetsHost, "where the browser loads echarts from")
	fs.DurationVar(&flags.SweepInterval, "sweep-interval", flags.SweepInterval, "how often to unmount idle views")
	fs.StringVar(&flags.Snapshot, "snapshot", flags.Snapshot, "write the initial charts to this html file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if flags.SweepInterval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive, got %s", flags.SweepInterval)
	}

	return flags, nil
}
