// Package cli provides the Cobra command tree and dependency wiring for
// the shopfront CLI. This file is the composition root: the only place
// where concrete types are instantiated and wired together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/internal/cart"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/session"
	"github.com/shopfront/shopfront/internal/tui"
)

// Dependencies holds the services the commands run against. Commands
// reach them through the package-level deps variable.
type Dependencies struct {
	Config      *config.Manager
	Settings    *config.Config
	Credentials session.CredentialStore
	API         *api.Client
	Session     *session.Store
	Cart        *cart.Store
	Theme       tui.Theme
	Logger      *slog.Logger
}

var deps *Dependencies

// InitDependencies loads configuration and wires the credential store,
// API client, and the session and cart stores. Called once per process
// before any command runs.
func InitDependencies(verbose bool) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	manager := config.NewManager()
	cfg, err := manager.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	configDir, err := manager.ConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	creds := session.NewFileCredentialStore(configDir)

	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	client := api.NewClient(cfg.API.BaseURL, httpClient, creds.Current, logger)

	deps = &Dependencies{
		Config:      manager,
		Settings:    cfg,
		Credentials: creds,
		API:         client,
		Session:     session.NewStore(creds, client, logger),
		Cart:        cart.NewStore(client, logger),
		Theme:       tui.NewTheme(noColorConfigured(cfg)),
		Logger:      logger,
	}
	return nil
}

// GetDeps returns the current Dependencies instance, or nil before
// InitDependencies has run.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// noColorConfigured folds the config flag (which already absorbs the
// app-specific environment override) with the NO_COLOR convention.
func noColorConfigured(cfg *config.Config) bool {
	return cfg.UI.NoColor || os.Getenv("NO_COLOR") != ""
}
