package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// Run starts the interactive board and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, a *app.App, f filter.Filters) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	theme.Init(a.Config.ColorScheme)
	components.InitStyles()

	p := tea.NewProgram(New(ctx, a, f), tea.WithContext(ctx), tea.WithAltScreen())

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running board: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping board")
		<-errChan
	}
	return nil
}
