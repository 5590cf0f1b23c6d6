package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/daemon"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
)

// SetupTestDaemon starts a daemon on a socket inside t.TempDir().
// Shutdown is registered with t.Cleanup.
func SetupTestDaemon(t *testing.T) (*daemon.Server, string) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "kanban.sock")
	server, err := daemon.NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		if err := server.Shutdown(); err != nil {
			t.Logf("Warning: daemon shutdown error during cleanup: %v", err)
		}
	})

	go func() {
		if err := server.Start(ctx); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()

	return server, socketPath
}

// SetupTestClient connects an event client to socketPath.
func SetupTestClient(t *testing.T, socketPath string, opts ...events.ClientOption) *events.Client {
	t.Helper()

	client, err := events.NewClient(socketPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect test client: %v", err)
	}
	return client
}

// WaitForCondition polls condition until it holds or timeout elapses.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Logf("Timeout waiting for condition: %s", description)
	return false
}

// WaitForEvent waits for an event on ch, failing the test on timeout.
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}
