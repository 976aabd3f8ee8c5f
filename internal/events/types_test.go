package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// Constants Tests
// ============================================================================

func TestProtocolVersion(t *testing.T) {
	if ProtocolVersion != 1 {
		t.Errorf("Expected ProtocolVersion to be 1, got %d", ProtocolVersion)
	}
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{EventDatabaseChanged, "db_changed"},
		{EventPing, "ping"},
		{EventPong, "pong"},
	}

	for _, tt := range tests {
		if string(tt.eventType) != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, string(tt.eventType))
		}
	}
}

// ============================================================================
// Struct Tests
// ============================================================================

func TestEvent_Creation(t *testing.T) {
	now := time.Now()
	event := Event{
		Type:       EventDatabaseChanged,
		ProjectID:  42,
		Timestamp:  now,
		SequenceID: 123,
	}

	if event.Type != EventDatabaseChanged {
		t.Errorf("Expected type %s, got %s", EventDatabaseChanged, event.Type)
	}
	if event.ProjectID != 42 {
		t.Errorf("Expected ProjectID 42, got %d", event.ProjectID)
	}
	if !event.Timestamp.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, event.Timestamp)
	}
	if event.SequenceID != 123 {
		t.Errorf("Expected SequenceID 123, got %d", event.SequenceID)
	}
}

// ============================================================================
// Wire Format Tests
// ============================================================================

func TestMessage_WireFormat(t *testing.T) {
	msg := Message{
		Type:    "event",
		Version: ProtocolVersion,
		Event: &Event{
			Type:       EventDatabaseChanged,
			ProjectID:  7,
			SequenceID: 99,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal message: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if decoded.Type != "event" {
		t.Errorf("Expected type 'event', got '%s'", decoded.Type)
	}
	if decoded.Version != ProtocolVersion {
		t.Errorf("Expected version %d, got %d", ProtocolVersion, decoded.Version)
	}
	if decoded.Event == nil {
		t.Fatal("Expected event payload, got nil")
	}
	if decoded.Event.ProjectID != 7 {
		t.Errorf("Expected project ID 7, got %d", decoded.Event.ProjectID)
	}
	if decoded.Event.SequenceID != 99 {
		t.Errorf("Expected sequence ID 99, got %d", decoded.Event.SequenceID)
	}
	if decoded.Subscribe != nil || decoded.Status != nil {
		t.Error("Expected unused payloads to stay nil")
	}
}

func TestMessage_OmitsEmptyPayloads(t *testing.T) {
	data, err := json.Marshal(Message{Type: "ping"})
	if err != nil {
		t.Fatalf("Failed to marshal ping: %v", err)
	}

	for _, field := range []string{"Event", "Subscribe", "Status", "Version"} {
		if strings.Contains(string(data), field) {
			t.Errorf("Expected %s to be omitted from %s", field, data)
		}
	}
}

func TestMessage_StatusPayload(t *testing.T) {
	msg := Message{
		Type:    "status",
		Version: ProtocolVersion,
		Status: &StatusMessage{
			Uptime:          "2h15m0s",
			ActiveClients:   3,
			TotalClients:    11,
			EventsBroadcast: 230,
			EventsDropped:   1,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal status message: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal status message: %v", err)
	}

	if decoded.Status == nil {
		t.Fatal("Expected status payload, got nil")
	}
	if decoded.Status.ActiveClients != 3 {
		t.Errorf("Expected 3 active clients, got %d", decoded.Status.ActiveClients)
	}
	if decoded.Status.EventsBroadcast != 230 {
		t.Errorf("Expected 230 events broadcast, got %d", decoded.Status.EventsBroadcast)
	}
	if decoded.Status.Uptime != "2h15m0s" {
		t.Errorf("Expected uptime '2h15m0s', got '%s'", decoded.Status.Uptime)
	}
}
