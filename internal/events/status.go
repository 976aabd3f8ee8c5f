package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"time"
)

// RequestStatus dials the daemon socket, asks for its status, and returns
// the reply. It uses its own short-lived connection so callers do not need
// a streaming Client.
func RequestStatus(ctx context.Context, socketPath string) (*StatusMessage, error) {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to dial daemon socket: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing status connection: %v", err)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	msg := Message{Type: "status_request", Version: ProtocolVersion}
	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send status request: %w", err)
	}

	// The server may interleave pings or broadcasts on this connection;
	// keep reading until the status reply arrives.
	decoder := json.NewDecoder(conn)
	for {
		var reply Message
		if err := decoder.Decode(&reply); err != nil {
			return nil, fmt.Errorf("failed to read status reply: %w", err)
		}
		if reply.Type == "status" && reply.Status != nil {
			return reply.Status, nil
		}
	}
}
