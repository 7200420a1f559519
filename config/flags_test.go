package config_test

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesanalysis/config"
	"salesanalysis/plot"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Parallel()

	flags, err := config.ParseFlags(newFlagSet(), nil, map[string]string{"UNRELATED": "1"})
	require.NoError(t, err)

	assert.Equal(t, ":8080", flags.Addr)
	assert.Equal(t, "info", flags.LogLevel)
	assert.Equal(t, "text", flags.LogFormat)
	assert.Equal(t, plot.DEFAULT_ASSETS_HOST, flags.AssetsHost)
	assert.Equal(t, 30*time.Second, flags.SweepInterval)
	assert.Empty(t, flags.Snapshot)
}

func TestParseFlagsEnvironment(t *testing.T) {
	t.Parallel()

	flags, err := config.ParseFlags(newFlagSet(), nil, map[string]string{
		"SALES_ANALYSIS_ADDR":           ":9000",
		"SALES_ANALYSIS_LOG_FORMAT":     "json",
		"SALES_ANALYSIS_SWEEP_INTERVAL": "5s",
		"SALES_ANALYSIS_ASSETS_HOST":    "/static/js/",
		"SALES_ANALYSIS_SNAPSHOT":       "charts.html",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", flags.Addr)
	assert.Equal(t, "json", flags.LogFormat)
	assert.Equal(t, 5*time.Second, flags.SweepInterval)
	assert.Equal(t, "/static/js/", flags.AssetsHost)
	assert.Equal(t, "charts.html", flags.Snapshot)
}

func TestParseFlagsOverrideEnvironment(t *testing.T) {
	t.Parallel()

	flags, err := config.ParseFlags(newFlagSet(),
		[]string{"-addr", ":7000", "-snapshot", "out.html", "-log-level", "debug"},
		map[string]string{"SALES_ANALYSIS_ADDR": ":9000"},
	)
	require.NoError(t, err)

	assert.Equal(t, ":7000", flags.Addr)
	assert.Equal(t, "out.html", flags.Snapshot)
	assert.Equal(t, "debug", flags.LogLevel)
}

func TestParseFlagsErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
		env  map[string]string
		want string
	}{
		"bad env duration": {
			env:  map[string]string{"SALES_ANALYSIS_SWEEP_INTERVAL": "soon"},
			want: "parse env:",
		},
		"unknown flag": {
			args: []string{"-nope"},
			env:  map[string]string{"UNRELATED": "1"},
			want: "parse flags:",
		},
		"zero sweep interval": {
			args: []string{"-sweep-interval", "0s"},
			env:  map[string]string{"UNRELATED": "1"},
			want: "sweep interval must be positive",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := config.ParseFlags(newFlagSet(), tc.args, tc.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
