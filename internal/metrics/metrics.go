// Package metrics provides lightweight counters for tracking runtime
// statistics of a fibd server.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a fibd server.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	sessionsActive atomic.Int64
	sessionsTotal  atomic.Int64
	requestsTotal  atomic.Int64
	malformedTotal atomic.Int64
	timeoutsTotal  atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active session counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// ActiveSessions returns the current number of live sessions.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// ── Request metrics ──────────────────────────────────────────────────

// RequestServed records one successfully answered request.
func (c *Collector) RequestServed() {
	if c == nil {
		return
	}
	c.requestsTotal.Add(1)
}

// MalformedRequest records a request answered with a format error.
func (c *Collector) MalformedRequest() {
	if c == nil {
		return
	}
	c.malformedTotal.Add(1)
}

// SessionTimedOut records a session closed by the idle timeout.
func (c *Collector) SessionTimedOut() {
	if c == nil {
		return
	}
	c.timeoutsTotal.Add(1)
}

// RequestCount returns the total number of answered requests.
func (c *Collector) RequestCount() int64 {
	if c == nil {
		return 0
	}
	return c.requestsTotal.Load()
}

// MalformedCount returns the total number of format errors sent.
func (c *Collector) MalformedCount() int64 {
	if c == nil {
		return 0
	}
	return c.malformedTotal.Load()
}

// TimeoutCount returns the total number of idle-timeout closures.
func (c *Collector) TimeoutCount() int64 {
	if c == nil {
		return 0
	}
	return c.timeoutsTotal.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	SessionsActive   int64  `json:"sessions_active"`
	SessionsTotal    int64  `json:"sessions_total"`
	RequestsTotal    int64  `json:"requests_total"`
	MalformedTotal   int64  `json:"malformed_total"`
	TimeoutsTotal    int64  `json:"timeouts_total"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive: c.sessionsActive.Load(),
		SessionsTotal:  c.sessionsTotal.Load(),
		RequestsTotal:  c.requestsTotal.Load(),
		MalformedTotal: c.malformedTotal.Load(),
		TimeoutsTotal:  c.timeoutsTotal.Load(),
		ErrorsTotal:    c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
