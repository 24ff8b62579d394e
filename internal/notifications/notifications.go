// Package notifications holds transient user-facing messages raised by the
// board core (failed moves, unreachable store) until the UI shows them.
package notifications

import (
	"slices"
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level int

const (
	// LevelInfo is an informational notification
	LevelInfo Level = iota
	// LevelWarning is a recoverable problem, such as stale data being shown
	LevelWarning
	// LevelError is a failed operation the user should know about
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultTTL is how long a notification stays visible
const DefaultTTL = 5 * time.Second

// Notification is a single message with a severity level.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the notification should no longer be shown at now
func (n Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && !now.Before(n.ExpiresAt)
}

// Sink receives notifications. The drag coordinator and board controller
// only need this much.
type Sink interface {
	Add(level Level, message string)
}

// Center stores notifications. Safe for concurrent use: persistence results
// arrive from worker goroutines while the UI reads on its own loop.
type Center struct {
	mu            sync.Mutex
	notifications []Notification
	ttl           time.Duration
	now           func() time.Time
}

var _ Sink = (*Center)(nil)

// NewCenter creates an empty Center. A ttl of zero uses DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Add adds a new notification with the specified level and message.
//
// Parameters:
//   - level: the severity level of the notification
//   - message: the notification message to display
func (c *Center) Add(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.notifications = append(c.notifications, Notification{
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	})
}

// Clear removes all notifications.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
}

// ClearLevel removes all notifications of a specific level.
func (c *Center) ClearLevel(level Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = slices.DeleteFunc(c.notifications, func(n Notification) bool {
		return n.Level == level
	})
}

// Prune drops expired notifications and reports whether anything was removed
func (c *Center) Prune() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	before := len(c.notifications)
	c.notifications = slices.DeleteFunc(c.notifications, func(n Notification) bool {
		return n.Expired(now)
	})
	return len(c.notifications) != before
}

// All returns the notifications that have not expired, oldest first.
func (c *Center) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]Notification, 0, len(c.notifications))
	for _, n := range c.notifications {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}

// HasAny returns true if there are any live notifications.
func (c *Center) HasAny() bool {
	return len(c.All()) > 0
}
