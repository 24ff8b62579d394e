// Package cli holds helpers for command tests. It is separate from testutil
// so that testutil stays free of the app and cli packages.
package cli

import (
	"testing"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/selection"
	"github.com/thenoetrevino/dealboard/internal/testutil"
)

// SetupCLITest serves a seeded store and returns it with an App connected to
// it. The selection lives in memory.
func SetupCLITest(t *testing.T) (*testutil.Store, *app.App) {
	t.Helper()
	return SetupCLITestWithCell(t, selection.NewMemoryCell())
}

// SetupCLITestWithCell is SetupCLITest with a caller-provided selection cell,
// for tests that preset or inspect the persisted selection
func SetupCLITestWithCell(t *testing.T, cell selection.Cell) (*testutil.Store, *app.App) {
	t.Helper()

	store := testutil.NewStore(t)

	cfg := config.Default()
	cfg.Remote.BaseURL = store.URL()
	cfg.Remote.Token = testutil.TestToken
	cfg.StateDir = t.TempDir()

	appInstance, err := app.NewFromConfig(cfg, app.WithSelectionCell(cell))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() { _ = appInstance.Close() })

	return store, appInstance
}
