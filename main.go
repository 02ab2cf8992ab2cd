package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reelfind/internal/config"
	"reelfind/internal/eventbus"
	"reelfind/internal/logging"
	"reelfind/internal/popularity"
	"reelfind/internal/store"
	"reelfind/internal/tmdb"
	"reelfind/internal/ui"
)

const usage = `reelfind - search movies from the terminal

Usage:
  reelfind [-config path] [-store backend] [-write-config]

Options:
  -config path     config file (default %s)
  -store backend   search store: memory, mongo or redis
  -write-config    write the effective config (without the API token) and exit

Environment:
  TMDB_API_TOKEN, REELFIND_API_TOKEN   movie API bearer token
  REELFIND_API_BASE_URL, REELFIND_IMAGE_BASE_URL
  REELFIND_DEBOUNCE_MS, REELFIND_TRENDING_LIMIT
  REELFIND_STORE_BACKEND, REELFIND_MONGO_URI, REELFIND_REDIS_URL
  REELFIND_LOG_LEVEL, REELFIND_LOG_FILE
`

func main() {
	// Parse command line arguments
	var (
		configPath  string
		backend     string
		writeConfig bool
	)
	flag.StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	flag.StringVar(&backend, "store", "", "Search store backend (memory, mongo, redis)")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the effective config and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, config.DefaultPath())
	}
	flag.Parse()

	if err := run(configPath, backend, writeConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, backend string, writeConfig bool) error {
	// Load configuration
	configSvc := config.NewConfigServiceAt(configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if backend != "" {
		cfg.Store.Backend = strings.ToLower(strings.TrimSpace(backend))
	}

	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return nil
	}

	// Set up logging
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		logging.Init(logging.Config{Level: cfg.Log.Level, Output: logFile})
	}
	logging.Info().Str("config", configSvc.Path()).Str("store", cfg.Store.Backend).Msg("starting reelfind")

	if cfg.API.Token == "" {
		logging.Warn().Msg("no API token configured, requests will likely be rejected")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	openCtx, openCancel := context.WithTimeout(ctx, cfg.Store.Timeout())
	searchStore, err := store.Open(openCtx, cfg.Store, cfg.API.ImageBaseURL)
	openCancel()
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := searchStore.Close(closeCtx); err != nil {
			logging.Warn().Err(err).Msg("failed to close search store")
		}
	}()

	// Create event bus; the tracker records successful searches off the UI loop
	bus := eventbus.New()
	tracker := popularity.NewTracker(bus, searchStore, cfg.Store.Timeout())
	defer func() {
		// Deliver pending searches before the store goes away
		bus.Close()
		tracker.Close()
	}()

	client := tmdb.NewClient(tmdb.Config{BaseURL: cfg.API.BaseURL, Token: cfg.API.Token})

	// Create UI model
	uiModel := ui.NewModel(ctx, cfg, bus, client, searchStore)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	go func() {
		select {
		case <-sigChan:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Error().Err(err).Msg("error running program")
		return fmt.Errorf("running program: %w", err)
	}
	logging.Info().Msg("UI exited normally")
	return nil
}
