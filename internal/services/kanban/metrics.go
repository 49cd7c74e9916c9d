package kanban

import (
	"sync/atomic"
	"time"
)

// Metrics counts engine activity. Safe for concurrent use.
type Metrics struct {
	MovesApplied       atomic.Int64
	NoOps              atomic.Int64
	ValidationFailures atomic.Int64
	PersistSucceeded   atomic.Int64
	PersistFailed      atomic.Int64
	StaleResults       atomic.Int64
	Refreshes          atomic.Int64
	RefreshFailures    atomic.Int64
	Rollbacks          atomic.Int64
	StartTime          time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	MovesApplied       int64     `json:"moves_applied"`
	NoOps              int64     `json:"no_ops"`
	ValidationFailures int64     `json:"validation_failures"`
	PersistSucceeded   int64     `json:"persist_succeeded"`
	PersistFailed      int64     `json:"persist_failed"`
	StaleResults       int64     `json:"stale_results"`
	Refreshes          int64     `json:"refreshes"`
	RefreshFailures    int64     `json:"refresh_failures"`
	Rollbacks          int64     `json:"rollbacks"`
	StartTime          time.Time `json:"start_time"`
	UptimeSeconds      float64   `json:"uptime_seconds"`
}

// Snapshot returns the current counter values
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MovesApplied:       m.MovesApplied.Load(),
		NoOps:              m.NoOps.Load(),
		ValidationFailures: m.ValidationFailures.Load(),
		PersistSucceeded:   m.PersistSucceeded.Load(),
		PersistFailed:      m.PersistFailed.Load(),
		StaleResults:       m.StaleResults.Load(),
		Refreshes:          m.Refreshes.Load(),
		RefreshFailures:    m.RefreshFailures.Load(),
		Rollbacks:          m.Rollbacks.Load(),
		StartTime:          m.StartTime,
		UptimeSeconds:      time.Since(m.StartTime).Seconds(),
	}
}

// InFlight is the number of persistence calls issued but not yet reported
func (s MetricsSnapshot) InFlight() int64 {
	return s.MovesApplied - s.PersistSucceeded - s.PersistFailed - s.StaleResults
}
