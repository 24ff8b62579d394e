package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/selection"
)

func TestGetCLIFromContext_UsesInjectedApp(t *testing.T) {
	client, err := remote.NewClient("http://127.0.0.1:1")
	require.NoError(t, err)
	a := app.New(client, nil, app.WithSelectionCell(selection.NewMemoryCell()))

	c, err := GetCLIFromContext(WithApp(context.Background(), a))
	require.NoError(t, err)
	assert.Same(t, a, c.App)

	// An injected app belongs to the caller and is not closed
	assert.NoError(t, c.Close())
}
