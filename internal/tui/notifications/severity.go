// Package notifications renders board notifications as banners
package notifications

import "github.com/thenoetrevino/dealboard/internal/notifications"

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// FromLevel maps a notification center level to a banner severity
func FromLevel(level notifications.Level) Severity {
	switch level {
	case notifications.LevelWarning:
		return Warning
	case notifications.LevelError:
		return Error
	default:
		return Info
	}
}
