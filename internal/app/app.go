package app

import (
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/catalog"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/notifications"
	"github.com/thenoetrevino/dealboard/internal/registry"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/selection"
)

// App holds the board core and wires its parts together.
// This is the main application container shared by the CLI and the TUI.
type App struct {
	Config *config.Config
	Store  remote.Store

	Pipelines     *catalog.PipelineCatalog
	Stages        *catalog.StageCatalog
	Deals         *registry.Registry
	Selection     *selection.Selection
	Notifications *notifications.Center

	Board *board.Controller
	Drag  *drag.Coordinator

	logger *slog.Logger
}

// New creates a new App over an existing store.
// This is the single entry point for creating the application container.
func New(store remote.Store, cfg *config.Config, opts ...Option) *App {
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if ac.cell == nil {
		ac.cell = selection.NewFileCell(cfg.SelectionPath())
	}
	if ac.notify == nil {
		ac.notify = notifications.NewCenter(0)
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}

	a := &App{
		Config:        cfg,
		Store:         store,
		Pipelines:     catalog.NewPipelineCatalog(store),
		Stages:        catalog.NewStageCatalog(store),
		Deals:         registry.New(store),
		Selection:     selection.New(ac.cell),
		Notifications: ac.notify,
		logger:        ac.logger,
	}

	a.Board = board.NewController(board.Config{
		Pipelines:    a.Pipelines,
		Stages:       a.Stages,
		Deals:        a.Deals,
		Selection:    a.Selection,
		LegacyStages: board.LegacyStages(cfg.LegacyStages),
		Notify:       a.Notifications,
	})
	a.Drag = drag.NewCoordinator(store, a.Deals, a.Stages, a.Notifications)

	return a
}

// NewFromConfig builds the HTTP client described by cfg and an App over it
func NewFromConfig(cfg *config.Config, opts ...Option) (*App, error) {
	client, err := remote.NewClient(cfg.Remote.BaseURL,
		remote.WithTimeout(cfg.Remote.Timeout),
		remote.WithTokenSource(remote.StaticToken(cfg.Remote.Token)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote client: %w", err)
	}

	a := New(client, cfg, opts...)
	a.logger.Debug("app initialized", "base_url", cfg.Remote.BaseURL, "state", cfg.SelectionPath())
	return a, nil
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	return nil
}
