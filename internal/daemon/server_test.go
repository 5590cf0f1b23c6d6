package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
)

// Test helpers live here rather than in testutil to avoid an import cycle.

func setupTestDaemon(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "kanban.sock")

	server, err := NewServer(socketPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = server.Start(ctx) }()

	return server, socketPath
}

func connectRawClient(t *testing.T, socketPath string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()
	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

func waitForClients(t *testing.T, server *Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return server.ClientCount() == n },
		2*time.Second, 10*time.Millisecond, "expected %d clients", n)
}

func readMessage(t *testing.T, conn net.Conn, dec *json.Decoder) events.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg events.Message
	require.NoError(t, dec.Decode(&msg))
	return msg
}

func sendEvent(t *testing.T, enc *json.Encoder, ev events.Event) {
	t.Helper()
	require.NoError(t, enc.Encode(events.Message{
		Version: events.ProtocolVersion,
		Type:    "event",
		Event:   &ev,
	}))
}

func TestNewServer_RemovesStaleSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "kanban.sock")
	require.NoError(t, os.WriteFile(socketPath, []byte("stale"), 0o600))

	server, err := NewServer(socketPath)
	require.NoError(t, err)
	require.NoError(t, server.Shutdown())

	_, err = os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err), "socket file should be removed on shutdown")
}

func TestServer_BroadcastsToAllClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	_, senderEnc, _ := connectRawClient(t, socketPath)
	conn1, _, dec1 := connectRawClient(t, socketPath)
	conn2, _, dec2 := connectRawClient(t, socketPath)
	waitForClients(t, server, 3)

	sendEvent(t, senderEnc, events.BoardChanged("task-1", "review"))

	for _, rc := range []struct {
		conn net.Conn
		dec  *json.Decoder
	}{{conn1, dec1}, {conn2, dec2}} {
		msg := readMessage(t, rc.conn, rc.dec)
		assert.Equal(t, "event", msg.Type)
		assert.Equal(t, events.ProtocolVersion, msg.Version)
		require.NotNil(t, msg.Event)
		assert.Equal(t, events.EventBoardChanged, msg.Event.Type)
		assert.Equal(t, "task-1", msg.Event.TaskID)
		assert.Equal(t, int64(1), msg.Event.SequenceID)
	}

	assert.Equal(t, int64(1), server.Metrics().EventsReceived.Load())
}

func TestServer_SequenceIDsIncrease(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	conn, _, dec := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	require.NoError(t, server.Broadcast(events.BoardChanged("a", "todo")))
	require.NoError(t, server.Broadcast(events.BoardChanged("b", "done")))

	first := readMessage(t, conn, dec)
	second := readMessage(t, conn, dec)
	require.NotNil(t, first.Event)
	require.NotNil(t, second.Event)
	assert.Less(t, first.Event.SequenceID, second.Event.SequenceID)
}

func TestServer_RemovesDisconnectedClient(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	conn, _, _ := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, server, 0)
	assert.Equal(t, int32(0), server.Metrics().ConnectedClients.Load())
}

func TestServer_PingsAndDropsSilentClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t, WithPingInterval(20*time.Millisecond))
	conn, _, dec := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	msg := readMessage(t, conn, dec)
	assert.Equal(t, "ping", msg.Type)

	// never answering with pong gets the client dropped
	waitForClients(t, server, 0)
}

func TestServer_PongKeepsClientAlive(t *testing.T) {
	server, socketPath := setupTestDaemon(t, WithPingInterval(20*time.Millisecond))
	conn, enc, dec := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		msg := readMessage(t, conn, dec)
		if msg.Type == "ping" {
			require.NoError(t, enc.Encode(events.Message{Version: events.ProtocolVersion, Type: "pong"}))
		}
	}
	assert.Equal(t, 1, server.ClientCount())
}

func TestServer_ShutdownIsIdempotent(t *testing.T) {
	server, _ := setupTestDaemon(t)
	assert.NoError(t, server.Shutdown())
	assert.NoError(t, server.Shutdown())
	assert.Error(t, server.Broadcast(events.BoardChanged("x", "todo")))
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.EventsReceived.Add(2)
	m.MessagesSent.Add(3)
	m.ConnectedClients.Store(4)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.EventsReceived)
	assert.Equal(t, int64(3), snap.MessagesSent)
	assert.Equal(t, int32(4), snap.ConnectedClients)
	assert.Equal(t, m.StartTime, snap.StartTime)
	assert.NotEmpty(t, snap.Uptime)
}
