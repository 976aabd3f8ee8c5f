package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety.
// The counters feed both the status protocol reply and the snapshot exposed
// for tests.
type Metrics struct {
	EventsReceived  atomic.Int64 // events accepted from publishing clients
	EventsBroadcast atomic.Int64 // broadcast rounds fanned out to subscribers
	EventsSent      atomic.Int64 // per-client deliveries
	EventsDropped   atomic.Int64 // deliveries skipped because a queue was full
	ActiveClients   atomic.Int64 // currently connected clients
	TotalClients    atomic.Int64 // connections accepted since start
	StartTime       time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsReceived increments the events received counter
func (m *Metrics) IncEventsReceived() {
	m.EventsReceived.Add(1)
}

// IncEventsBroadcast increments the broadcast rounds counter
func (m *Metrics) IncEventsBroadcast() {
	m.EventsBroadcast.Add(1)
}

// IncEventsSent increments the per-client delivery counter
func (m *Metrics) IncEventsSent() {
	m.EventsSent.Add(1)
}

// IncEventsDropped increments the dropped delivery counter
func (m *Metrics) IncEventsDropped() {
	m.EventsDropped.Add(1)
}

// IncTotalClients increments the cumulative connection counter
func (m *Metrics) IncTotalClients() {
	m.TotalClients.Add(1)
}

// SetActiveClients sets the current connected clients count
func (m *Metrics) SetActiveClients(count int64) {
	m.ActiveClients.Store(count)
}

// Uptime returns the time elapsed since the daemon started
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.StartTime)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsReceived  int64     `json:"events_received"`
	EventsBroadcast int64     `json:"events_broadcast"`
	EventsSent      int64     `json:"events_sent"`
	EventsDropped   int64     `json:"events_dropped"`
	ActiveClients   int64     `json:"active_clients"`
	TotalClients    int64     `json:"total_clients"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// Snapshot returns a consistent-enough view of the current metrics.
// Counters are read individually, so a snapshot taken mid-broadcast may
// be off by one between related counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived:  m.EventsReceived.Load(),
		EventsBroadcast: m.EventsBroadcast.Load(),
		EventsSent:      m.EventsSent.Load(),
		EventsDropped:   m.EventsDropped.Load(),
		ActiveClients:   m.ActiveClients.Load(),
		TotalClients:    m.TotalClients.Load(),
		StartTime:       m.StartTime,
		Uptime:          m.Uptime().String(),
	}
}
