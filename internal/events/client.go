package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"
)

// DefaultDebounce is the batching window used when neither an option nor
// KANBAN_EVENT_DEBOUNCE_MS sets one.
const DefaultDebounce = 100 * time.Millisecond

// Client is a connection to the kanban daemon. It batches outgoing
// board_changed events, receives broadcasts and reconnects on failure.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching
	eventQueue   chan Event
	debounce     time.Duration
	closed       bool
	batcherOnce  sync.Once
	batcherAlive bool
	batcherDone  chan struct{}

	// Reconnection
	maxRetries int
	baseDelay  time.Duration

	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithDebounce sets the batching window. Non-positive values are ignored.
func WithDebounce(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithReconnect sets how many reconnect attempts are made and the first backoff delay.
func WithReconnect(maxRetries int, baseDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// NewClient creates a new event client but does not connect.
func NewClient(socketPath string, opts ...ClientOption) (*Client, error) {
	if socketPath == "" {
		return nil, errors.New("socket path is required")
	}

	debounce := DefaultDebounce
	if envVal := os.Getenv("KANBAN_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounce = time.Duration(parsed) * time.Millisecond
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    debounce,
		maxRetries:  5,
		baseDelay:   time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Connect dials the daemon socket and starts the batcher on first success.
// Dial failures are returned as *DaemonError.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.New("client closed")
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", ClassifyDaemonError(err))
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	c.batcherOnce.Do(func() {
		c.batcherAlive = true
		go c.startBatcher()
	})

	return nil
}

// SendEvent queues an event to be sent to the daemon. It never blocks:
// ErrQueueFull is returned when the queue is saturated.
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("client closed")
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher coalesces queued events and writes at most one event per
// debounce window. A batch touching several tasks is sent without a task id.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending *Event

	merge := func(ev Event) {
		if pending == nil {
			batched := ev
			batched.Type = EventBoardChanged
			pending = &batched
			return
		}
		if pending.TaskID != ev.TaskID {
			pending.TaskID = ""
			pending.Status = ""
		}
		pending.Timestamp = ev.Timestamp
	}

	flush := func() {
		if pending == nil {
			return
		}
		if err := c.send(Message{Type: "event", Event: pending}); err != nil && !isConnectionError(err) {
			slog.Warn("failed to send batched event", "error", err)
		}
		pending = nil
	}

	for {
		select {
		case <-c.ctx.Done():
			for {
				select {
				case ev, ok := <-c.eventQueue:
					if !ok {
						flush()
						return
					}
					merge(ev)
				default:
					flush()
					return
				}
			}

		case ev, ok := <-c.eventQueue:
			if !ok {
				flush()
				return
			}
			merge(ev)

		case <-ticker.C:
			flush()
		}
	}
}

// send writes one message to the socket.
func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	msg.Version = ProtocolVersion
	return c.encoder.Encode(msg)
}

// Listen returns a channel of events broadcast by the daemon. Reconnection is
// handled internally; the channel closes when ctx is done or reconnecting fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	c.mu.Lock()
	connected := c.conn != nil
	c.mu.Unlock()
	if !connected {
		return nil, ErrNotConnected
	}

	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		err := c.readEvents(ctx, eventChan)
		if err == nil || ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}

		slog.Info("daemon connection lost, reconnecting", "error", err)
		if !c.reconnect(ctx) {
			slog.Warn("giving up on daemon", "attempts", c.maxRetries)
			return
		}
		slog.Info("reconnected to daemon")
	}
}

// readEvents decodes messages until the connection fails.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil || msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return nil
			}

		case "ping":
			if err := c.send(Message{Type: "pong"}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send pong", "error", err)
			}
		}
	}
}

func isConnectionError(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, ErrNotConnected)
}

// reconnect retries Connect with exponential backoff. A restarted daemon
// starts its sequence from zero again, so the last seen sequence is reset.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				_ = c.conn.Close()
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				c.lastSequence = 0
				return true
			}

			slog.Debug("reconnect attempt failed", "attempt", i+1, "max_retries", c.maxRetries, "retry_in", delay)
			delay *= 2
		}
	}

	return false
}

// Close flushes pending events, closes the connection and stops all goroutines.
// Calling Close more than once is safe.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	alive := c.batcherAlive
	c.mu.Unlock()

	c.cancel()
	if alive {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
