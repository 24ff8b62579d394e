package app

import (
	"log/slog"

	"github.com/thenoetrevino/dealboard/internal/notifications"
	"github.com/thenoetrevino/dealboard/internal/selection"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	cell   selection.Cell
	notify *notifications.Center
	logger *slog.Logger
}

// WithSelectionCell replaces the file-backed selection cell
func WithSelectionCell(cell selection.Cell) Option {
	return func(cfg *appConfig) {
		cfg.cell = cell
	}
}

// WithNotifications shares a notification center with the caller
func WithNotifications(center *notifications.Center) Option {
	return func(cfg *appConfig) {
		cfg.notify = center
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
