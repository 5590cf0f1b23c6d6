package models

import "time"

// Task represents a single card on the kanban board
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Position    int       `json:"position"` // index inside the status column
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetID returns the task identifier (used by quiet CLI output)
func (t *Task) GetID() string {
	return t.ID
}

// Clone returns a copy that can be handed out without sharing the board's pointer
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
