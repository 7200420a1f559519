package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"salesanalysis/config"
	"salesanalysis/events"
	"salesanalysis/logging"
	"salesanalysis/models"
	"salesanalysis/plot"
	"salesanalysis/store"
	"salesanalysis/utils"
	"salesanalysis/web/handlers"
)

func main() {
	flags, err := config.GetFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.Setup(os.Stderr, flags.LogLevel, flags.LogFormat)
	plotter := plot.NewPlotter(flags.AssetsHost)

	if flags.Snapshot != "" {
		path, err := writeSnapshot(plotter, flags.Snapshot)
		if err != nil {
			logger.Error("couldn't write snapshot", "error", err)
			os.Exit(1)
		}
		logger.Info("wrote snapshot", "path", path)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventHub := events.NewHub()

	// Initialise UI
	dashboard, err := handlers.NewSalesAnalysis(plotter, eventHub, logger)
	if err != nil {
		logger.Error("couldn't create dashboard", "error", err)
		os.Exit(1)
	}

	// Initialise Server
	server := handlers.NewServer(dashboard, eventHub, logger, flags.SweepInterval)
	if err := server.Start(ctx, flags.Addr); err != nil {
		logger.Error("couldn't start server", "error", err)
		os.Exit(1)
	}
}

// writeSnapshot renders the charts as a freshly mounted view would show them to a standalone html page. An existing
// file is never overwritten, the snapshot goes next to it instead.
func writeSnapshot(plotter *plot.Plotter, path string) (_ string, err error) {
	path = utils.NextAvailableFilename(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()

	counter := models.NewCounter()
	line := plotter.Line(store.LineDataset(counter.Value()), store.SharedOptions)
	bar := plotter.Bar(store.BarDataset(counter.Value()), store.SharedOptions)
	pie := plotter.Pie(store.PieDataset(counter.Value()), store.SharedOptions)

	if err := plotter.Page(f, store.VIEW_LABEL, line, bar, pie); err != nil {
		return "", fmt.Errorf("render snapshot: %w", err)
	}
	return path, nil
}
