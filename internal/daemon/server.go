package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
)

// ErrBroadcastFull is returned by Broadcast when the fan-out queue is saturated
var ErrBroadcastFull = errors.New("broadcast channel full")

// client is one connected TUI or CLI process
type client struct {
	conn     net.Conn
	send     chan events.Message
	lastPong time.Time
	closed   bool
	mu       sync.Mutex // protects lastPong, closed and sends on send
}

// Server is the kanban event daemon. Every board_changed event received
// from one client is stamped with a sequence id and fanned out to all.
type Server struct {
	socketPath   string
	listener     net.Listener
	clients      map[*client]struct{}
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	broadcast    chan events.Event
	metrics      *Metrics
	sequence     atomic.Int64
	clientBuffer int
	pingInterval time.Duration
	staleAfter   time.Duration
	logger       *slog.Logger
	shutdownOnce sync.Once
}

// Option configures a Server
type Option func(*Server)

// WithClientBuffer sets the per-client send queue size
func WithClientBuffer(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.clientBuffer = n
		}
	}
}

// WithPingInterval sets how often clients are pinged. Clients silent for
// three intervals are dropped.
func WithPingInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.pingInterval = d
			s.staleAfter = 3 * d
		}
	}
}

// WithLogger sets the logger used for connection diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer listens on socketPath, replacing a stale socket file if present.
func NewServer(socketPath string, opts ...Option) (*Server, error) {
	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		socketPath:   socketPath,
		listener:     listener,
		clients:      make(map[*client]struct{}),
		ctx:          ctx,
		cancel:       cancel,
		broadcast:    make(chan events.Event, getEnvInt("KANBAN_DAEMON_BROADCAST_BUFFER", 100)),
		metrics:      NewMetrics(),
		clientBuffer: getEnvInt("KANBAN_DAEMON_CLIENT_BUFFER", 10),
		pingInterval: 30 * time.Second,
		staleAfter:   90 * time.Second,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics { return s.metrics }

// SocketPath returns the path the server listens on
func (s *Server) SocketPath() string { return s.socketPath }

// Start runs the accept, broadcast and health loops until ctx is cancelled
// or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("daemon listening", "socket", s.socketPath)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	acceptErr := make(chan error, 1)
	go func() { acceptErr <- s.acceptLoop(runCtx) }()
	go s.broadcastLoop(runCtx)
	go s.monitorHealth(runCtx)

	var err error
	select {
	case <-runCtx.Done():
	case err = <-acceptErr:
		if err != nil {
			s.logger.Error("accept loop failed", "error", err)
		}
	}

	if shutdownErr := s.Shutdown(); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.clientBuffer),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = struct{}{}
		count := len(s.clients)
		s.mu.Unlock()
		s.metrics.ConnectedClients.Store(int32(count))

		s.logger.Debug("client connected", "clients", count)

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.broadcast:
			event.SequenceID = s.sequence.Add(1)
			s.metrics.EventsBroadcast.Add(1)

			msg := events.Message{
				Version: events.ProtocolVersion,
				Type:    "event",
				Event:   &event,
			}

			for _, c := range s.snapshotClients() {
				if !s.sendToClient(c, msg) {
					s.logger.Warn("client send queue full, event dropped", "sequence_id", event.SequenceID)
				}
			}
		}
	}
}

// handleClient reads messages from one connection until it fails
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		s.logger.Debug("client disconnected", "clients", s.ClientCount())
	}()

	decoder := json.NewDecoder(c.conn)
	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			s.logger.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			s.metrics.EventsReceived.Add(1)
			if err := s.Broadcast(*msg.Event); err != nil {
				s.logger.Warn("dropping event", "error", err)
			}

		case "pong":
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)
	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and drops the ones that stopped answering
func (s *Server) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	ping := events.Message{
		Version: events.ProtocolVersion,
		Type:    "ping",
		Event:   &events.Event{Type: events.EventPing},
	}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, c := range s.snapshotClients() {
				c.mu.Lock()
				silent := now.Sub(c.lastPong)
				c.mu.Unlock()

				if silent > s.staleAfter {
					s.logger.Info("removing stale client", "silent_for", silent)
					s.removeClient(c)
					continue
				}
				s.sendToClient(c, ping)
			}
		}
	}
}

// Broadcast queues an event for fan-out without blocking
func (s *Server) Broadcast(event events.Event) error {
	select {
	case <-s.ctx.Done():
		return errors.New("daemon shut down")
	default:
	}

	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.MessagesDropped.Add(1)
		return ErrBroadcastFull
	}
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown closes the listener and every client, then removes the socket file.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cancel()

		if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			err = closeErr
		}

		for _, c := range s.snapshotClients() {
			s.removeClient(c)
		}

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.Warn("failed to remove socket file", "error", removeErr)
		}

		s.logger.Info("daemon stopped", "metrics", s.metrics.Snapshot())
	})
	return err
}

func (s *Server) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	count := len(s.clients)
	s.mu.Unlock()
	s.metrics.ConnectedClients.Store(int32(count))

	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	_ = c.conn.Close()
}

// sendToClient queues msg for c without blocking. It reports false when the
// queue is full or the client is gone.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	select {
	case c.send <- msg:
		s.metrics.MessagesSent.Add(1)
		return true
	default:
		s.metrics.MessagesDropped.Add(1)
		return false
	}
}
