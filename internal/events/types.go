// Package events defines the wire protocol and client for live-update
// notifications between the CLI/TUI processes and the daemon.
package events

import "time"

// ProtocolVersion is the wire protocol version. The daemon logs a
// warning when a client announces a different version but still
// serves it on a best-effort basis.
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDatabaseChanged EventType = "db_changed"
	EventPing            EventType = "ping"
	EventPong            EventType = "pong"
)

// Event represents a database change notification
type Event struct {
	Type       EventType
	ProjectID  int       // For filtering - which project was modified
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}

// SubscribeMessage is sent by clients to subscribe to specific project updates
type SubscribeMessage struct {
	ProjectID int // 0 = all projects, >0 = specific project
}

// StatusMessage reports daemon health back to a requesting client
type StatusMessage struct {
	Uptime          string
	ActiveClients   int64
	TotalClients    int64
	EventsBroadcast int64
	EventsDropped   int64
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Type      string            // "event", "subscribe", "ping", "pong", "status_request", "status"
	Version   int               `json:",omitempty"`
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
	Status    *StatusMessage    `json:",omitempty"`
}
