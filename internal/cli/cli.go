package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with the board core
	ctx context.Context

	// owned is false when App was injected through the context and belongs to
	// the caller
	owned bool
}

type contextKey struct{}

// WithApp returns a context carrying an existing App. Commands run under it
// use that App instead of building one from the config file.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// NewCLI loads the config and connects to the remote store it names
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{App: application, ctx: ctx, owned: true}, nil
}

// GetCLIFromContext returns a CLI over the App injected with WithApp, or a
// fresh one from NewCLI.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(contextKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, ctx: ctx}, nil
	}
	return NewCLI(ctx)
}

// Context returns the context the CLI was created with
func (c *CLI) Context() context.Context {
	return c.ctx
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned || c.App == nil {
		return nil
	}
	return c.App.Close()
}

// ErrNotInteractive is returned when a command needs a terminal to prompt on
var ErrNotInteractive = errors.New("not attached to a terminal")
