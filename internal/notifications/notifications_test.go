package notifications

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCenter(ttl time.Duration) (*Center, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewCenter(ttl)
	c.now = clock.now
	return c, clock
}

func TestCenter_AddAndAll(t *testing.T) {
	c, _ := newTestCenter(time.Second)
	assert.False(t, c.HasAny())

	c.Add(LevelInfo, "loaded")
	c.Add(LevelError, "move rejected")

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "loaded", all[0].Message)
	assert.Equal(t, LevelError, all[1].Level)
	assert.True(t, c.HasAny())
}

func TestCenter_Expiry(t *testing.T) {
	c, clock := newTestCenter(time.Second)
	c.Add(LevelWarning, "stale")

	clock.t = clock.t.Add(500 * time.Millisecond)
	assert.Len(t, c.All(), 1)

	clock.t = clock.t.Add(time.Second)
	assert.Empty(t, c.All())
	assert.True(t, c.Prune())
	assert.False(t, c.Prune())
}

func TestCenter_ClearLevel(t *testing.T) {
	c, _ := newTestCenter(time.Minute)
	c.Add(LevelInfo, "a")
	c.Add(LevelError, "b")
	c.Add(LevelInfo, "c")

	c.ClearLevel(LevelInfo)
	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Message)

	c.Clear()
	assert.False(t, c.HasAny())
}

func TestCenter_ConcurrentAdd(t *testing.T) {
	c := NewCenter(time.Minute)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(LevelError, "x")
		}()
	}
	wg.Wait()
	assert.Len(t, c.All(), 20)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}
