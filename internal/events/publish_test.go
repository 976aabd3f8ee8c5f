package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher is a minimal EventPublisher that fails a configurable
// number of sends before succeeding.
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

// Unused interface methods
func (m *mockRetryPublisher) Connect(ctx context.Context) error                { return nil }
func (m *mockRetryPublisher) Listen(ctx context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) Subscribe(projectID int) error                    { return nil }
func (m *mockRetryPublisher) Close() error                                     { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := Event{
		Type:      EventDatabaseChanged,
		ProjectID: 1,
	}

	err := PublishWithRetry(mock, event, 3)
	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}

	if mock.lastEvent.ProjectID != 1 {
		t.Errorf("Expected event project ID 1, got %d", mock.lastEvent.ProjectID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}
	event := Event{
		Type:      EventDatabaseChanged,
		ProjectID: 5,
	}

	start := time.Now()
	err := PublishWithRetry(mock, event, 3)
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("Expected eventual success, got error: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
	// Two backoff sleeps: 50ms + 100ms
	if elapsed < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms of backoff, got %v", elapsed)
	}
}

func TestPublishWithRetry_AllAttemptsFail(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 10}
	event := Event{
		Type:      EventDatabaseChanged,
		ProjectID: 2,
	}

	err := PublishWithRetry(mock, event, 3)
	if err == nil {
		t.Error("Expected error after all retries failed, got nil")
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	// A nil client silently skips publishing
	err := PublishWithRetry(nil, Event{Type: EventDatabaseChanged}, 3)
	if err != nil {
		t.Errorf("Expected nil error for nil client, got %v", err)
	}
}
