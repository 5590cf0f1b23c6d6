package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic counters
type Metrics struct {
	EventsReceived   atomic.Int64
	EventsBroadcast  atomic.Int64
	MessagesSent     atomic.Int64
	MessagesDropped  atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	EventsReceived   int64     `json:"events_received"`
	EventsBroadcast  int64     `json:"events_broadcast"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesDropped  int64     `json:"messages_dropped"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// Snapshot returns the current values
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived:   m.EventsReceived.Load(),
		EventsBroadcast:  m.EventsBroadcast.Load(),
		MessagesSent:     m.MessagesSent.Load(),
		MessagesDropped:  m.MessagesDropped.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}
