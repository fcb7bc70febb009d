package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"farmdir/internal/config"
	"farmdir/internal/eventbus"
	"farmdir/internal/images"
	"farmdir/internal/logging"
	"farmdir/internal/search"
	"farmdir/internal/ui"
	"farmdir/internal/ui/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		apiURL     string
		assetsURL  string
		configPath string
		logPath    string
		envFile    string
		noProbe    bool
	)

	flagSet := pflag.NewFlagSet("farmdir", pflag.ContinueOnError)
	flagSet.StringVar(&apiURL, "api", "", "search API base URL (overrides config)")
	flagSet.StringVar(&assetsURL, "assets", "", "base URL for relative image paths (overrides config)")
	flagSet.StringVar(&configPath, "config", "", "config file (default: <user config dir>/farmdir/config.toml)")
	flagSet.StringVar(&logPath, "log", "", "log file (overrides config)")
	flagSet.StringVar(&envFile, "env", ".env", "dotenv file with FARMDIR_* overrides")
	flagSet.BoolVar(&noProbe, "no-probe", false, "don't check whether images load")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}

	// Configuration: file, then environment, then flags
	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if assetsURL != "" {
		cfg.AssetsURL = assetsURL
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}
	if noProbe {
		cfg.Images.Probe = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", configSvc.Path(), err)
	}

	// The terminal belongs to the UI, so logs go to a file
	logger := logging.Discard()
	if cfg.Log.File != "" {
		fileLogger, logFile, err := logging.OpenFile(cfg.Log.File, cfg.SlogLevel())
		if err != nil {
			return err
		}
		defer logFile.Close()
		logger = fileLogger
	}
	slog.SetDefault(logger)

	location := flagSet.Arg(0)
	if location == "" && cfg.UISettings.RestoreLastLocation {
		location = cfg.LastLocation
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	bus := eventbus.New(logger)
	defer bus.Close()

	vocab := cfg.Vocabulary()
	client := search.NewClient(cfg.APIURL, vocab, logger)

	var prober commands.ImageProber
	if cfg.Images.Probe && cfg.UISettings.ShowImages {
		prober = images.NewProber(bus, cfg.Images.Concurrency, time.Duration(cfg.Images.Timeout), logger)
	}

	model := ui.NewModel(ui.Options{
		Bus:          bus,
		Searcher:     client,
		Prober:       prober,
		Vocabulary:   vocab,
		AssetsURL:    cfg.AssetsURL,
		Location:     location,
		Logger:       logger,
		Context:      ctx,
		HistoryLimit: 100,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	go func() {
		select {
		case <-sigChan:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	// Forward background events into the program
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	unsubscribe := []func(){
		bus.Subscribe(eventbus.EventImageProbed, forward),
		bus.Subscribe(eventbus.EventError, forward),
	}
	defer func() {
		for _, u := range unsubscribe {
			u()
		}
	}()

	logger.Info("starting", "api", cfg.APIURL, "location", location)
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", "error", err)
		return fmt.Errorf("running program: %w", err)
	}
	cancel()

	final := model.Location()
	logger.Info("exited", "location", final)

	if cfg.UISettings.AutosaveOnExit && final != "" {
		if _, err := config.SaveLastLocation(configSvc, final); err != nil {
			logger.Warn("failed to save last location", "path", configSvc.Path(), "error", err)
		}
	}

	// Print the location so it can be shared
	fmt.Println(final)
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `farmdir - browse the local farm directory from the terminal.

Usage:
  farmdir [location] [flags]

The location is a directory URL or query string, for example
  farmdir '/farms?q=kale&distance=25&categories=vegetables,honey'

Without a location the last visited one is restored. The final location
is printed on exit.

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
