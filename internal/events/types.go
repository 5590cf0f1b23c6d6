package events

import "time"

// ProtocolVersion is bumped whenever Message changes shape
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event is a board change notification
type Event struct {
	Type       EventType `json:"type"`
	TaskID     string    `json:"task_id,omitempty"` // empty when several tasks changed in one batch
	Status     string    `json:"status,omitempty"`  // column the task ended up in, if known
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // assigned by the daemon, monotonically increasing
}

// Message wraps events and control messages on the wire
type Message struct {
	Version int    `json:"version"`
	Type    string `json:"type"` // "event", "ping", "pong"
	Event   *Event `json:"event,omitempty"`
}

// BoardChanged builds the event published after a write to taskID
func BoardChanged(taskID, status string) Event {
	return Event{
		Type:      EventBoardChanged,
		TaskID:    taskID,
		Status:    status,
		Timestamp: time.Now(),
	}
}
