package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/appydinos/moviebrowser/internal/config"
	"github.com/appydinos/moviebrowser/internal/domain"
	applog "github.com/appydinos/moviebrowser/internal/log"
	"github.com/appydinos/moviebrowser/internal/movies"
	"github.com/appydinos/moviebrowser/internal/service"
	"github.com/appydinos/moviebrowser/internal/store"
	"github.com/appydinos/moviebrowser/internal/tmdb"
	"github.com/appydinos/moviebrowser/internal/tui"
	"github.com/appydinos/moviebrowser/internal/watchlist"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("v", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("moviebrowser %s\n", version)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applog.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = applog.NullLogger()
	}
	slog.SetDefault(logger)

	if !cfg.IsConfigured() {
		if err := runSetup(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSetup prompts for a TMDB API key and writes the config file.
func runSetup(cfg *config.Config) error {
	fmt.Println("A TMDB API key is required (https://www.themoviedb.org/settings/api).")
	fmt.Print("API key: ")

	var key string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
		key = string(raw)
	} else {
		if _, err := fmt.Scanln(&key); err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("no API key provided")
	}

	cfg.TMDB.APIKey = key
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Println("Configuration saved.")
	return nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if !cfg.IsConfigured() {
		return domain.ErrMissingAPIKey
	}

	client := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.Language, logger)

	cache, err := store.NewResponseCache(cfg.Storage.CacheDir)
	if err != nil {
		// A dead cache is not fatal, fall back to network only.
		logger.Warn("response cache unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	dbPath, err := cfg.WatchlistPath()
	if err != nil {
		return err
	}
	wl, err := watchlist.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("opening watchlist: %w", err)
	}
	defer wl.Close()

	repo := movies.NewRepository(client, cache, logger)

	browseSvc := service.NewBrowseService(repo, logger)
	defer browseSvc.Close()
	detailsSvc := service.NewDetailsService(repo, wl, logger)
	defer detailsSvc.Close()
	watchlistSvc := service.NewWatchlistService(wl, logger)
	defer watchlistSvc.Close()

	model := tui.NewModel(browseSvc, detailsSvc, watchlistSvc, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting", "version", version)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
