package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal atomic.Int64
	RequestErrors atomic.Int64
	AuthFailures  atomic.Int64
	MovesAccepted atomic.Int64
	MovesRejected atomic.Int64
	InFlight      atomic.Int32
	StartTime     time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequests increments the request counter
func (m *Metrics) IncRequests() {
	m.RequestsTotal.Add(1)
}

// IncRequestErrors counts a response with status >= 400
func (m *Metrics) IncRequestErrors() {
	m.RequestErrors.Add(1)
}

// IncAuthFailures counts a request rejected for a bad credential
func (m *Metrics) IncAuthFailures() {
	m.AuthFailures.Add(1)
}

// IncMovesAccepted counts a successful PUT /deals/{id}
func (m *Metrics) IncMovesAccepted() {
	m.MovesAccepted.Add(1)
}

// IncMovesRejected counts a failed PUT /deals/{id}
func (m *Metrics) IncMovesRejected() {
	m.MovesRejected.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal int64     `json:"requests_total"`
	RequestErrors int64     `json:"request_errors"`
	AuthFailures  int64     `json:"auth_failures"`
	MovesAccepted int64     `json:"moves_accepted"`
	MovesRejected int64     `json:"moves_rejected"`
	InFlight      int32     `json:"in_flight"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal: m.RequestsTotal.Load(),
		RequestErrors: m.RequestErrors.Load(),
		AuthFailures:  m.AuthFailures.Load(),
		MovesAccepted: m.MovesAccepted.Load(),
		MovesRejected: m.MovesRejected.Load(),
		InFlight:      m.InFlight.Load(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).Round(time.Second).String(),
	}
}
