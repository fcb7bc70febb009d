// farmdir-fixture serves the farm search API from a local dataset so the
// directory can be developed and tested without the real backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"farmdir/internal/domain"
	"farmdir/internal/fixture"
	"farmdir/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr      string
		dataPath  string
		perPage   int
		synthetic int
		debug     bool
	)

	flagSet := pflag.NewFlagSet("farmdir-fixture", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", ":8787", "listen address")
	flagSet.StringVar(&dataPath, "data", "", "dataset JSON file (default: embedded dataset)")
	flagSet.IntVar(&perPage, "per-page", 20, "farms per page")
	flagSet.IntVar(&synthetic, "synthetic", 0, "serve this many generated farms instead of a dataset")
	flagSet.BoolVar(&debug, "debug", false, "log every request")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level})

	var ds *fixture.Dataset
	switch {
	case synthetic > 0:
		ds = fixture.Synthetic(synthetic, domain.DefaultVocabulary)
	case dataPath != "":
		var err error
		if ds, err = fixture.Load(dataPath, domain.DefaultVocabulary); err != nil {
			return err
		}
	default:
		ds = fixture.Default()
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           fixture.NewRouter(ds, perPage, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fixture listening", "addr", addr, "farms", len(ds.Farms), "per_page", perPage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("fixture stopped")
	return nil
}
