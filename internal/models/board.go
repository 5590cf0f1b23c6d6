package models

import (
	"fmt"
	"sort"
)

// Board is the in-memory view of all columns and the tasks they reference.
// It owns the ordering rules shared by the store, the TUI and the tests.
// A Board is not safe for concurrent use; callers serialize access.
type Board struct {
	columns []*Column
	tasks   map[string]*Task
}

// NewBoard builds a board from a flat task list. Tasks are grouped by status
// and ordered by Position, ties broken by CreatedAt then ID.
func NewBoard(tasks []*Task) (*Board, error) {
	b := &Board{tasks: make(map[string]*Task, len(tasks))}
	for _, s := range Statuses() {
		b.columns = append(b.columns, &Column{Status: s, Title: s.DefaultTitle()})
	}

	sorted := make([]*Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i], sorted[j]
		if a.Position != c.Position {
			return a.Position < c.Position
		}
		if !a.CreatedAt.Equal(c.CreatedAt) {
			return a.CreatedAt.Before(c.CreatedAt)
		}
		return a.ID < c.ID
	})

	for _, t := range sorted {
		if err := b.Add(t.Clone()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// SetTitles overrides column titles; unknown statuses are ignored
func (b *Board) SetTitles(titles map[Status]string) {
	for _, c := range b.columns {
		if title, ok := titles[c.Status]; ok && title != "" {
			c.Title = title
		}
	}
}

// Columns returns the columns in display order
func (b *Board) Columns() []*Column {
	return b.columns
}

// Column returns the column for status, or nil
func (b *Board) Column(status Status) *Column {
	idx := status.Index()
	if idx < 0 {
		return nil
	}
	return b.columns[idx]
}

// Task returns the task with the given id, or nil
func (b *Board) Task(id string) *Task {
	return b.tasks[id]
}

// GetTaskByID is the read-only lookup handed to the drop resolver
func (b *Board) GetTaskByID(id string) (*Task, bool) {
	t, ok := b.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// TasksIn returns the tasks of a column in order
func (b *Board) TasksIn(status Status) []*Task {
	col := b.Column(status)
	if col == nil {
		return nil
	}
	out := make([]*Task, 0, col.Len())
	for _, id := range col.TaskIDs {
		out = append(out, b.tasks[id])
	}
	return out
}

// Len returns the total number of tasks on the board
func (b *Board) Len() int {
	return len(b.tasks)
}

// Add appends a task to the end of its status column
func (b *Board) Add(t *Task) error {
	col := b.Column(t.Status)
	if col == nil {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, t.Status)
	}
	if _, exists := b.tasks[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.ID)
	}
	t.Position = col.Len()
	col.TaskIDs = append(col.TaskIDs, t.ID)
	b.tasks[t.ID] = t
	return nil
}

// Remove deletes a task and closes the gap in its column
func (b *Board) Remove(id string) error {
	t, ok := b.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotOnBoard, id)
	}
	col := b.Column(t.Status)
	if idx := col.IndexOf(id); idx >= 0 {
		col.TaskIDs = append(col.TaskIDs[:idx], col.TaskIDs[idx+1:]...)
	}
	delete(b.tasks, id)
	b.renumber(col)
	return nil
}

// Move relocates a task to status. Without an anchor the task is appended to
// the destination column. With an anchor the task takes the anchor's slot:
// it lands before the anchor, except when moving down inside the same column
// where it lands after it.
func (b *Board) Move(taskID string, status Status, anchorID string) error {
	dst := b.Column(status)
	if dst == nil {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	t, ok := b.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotOnBoard, taskID)
	}
	if anchorID != "" {
		anchor, ok := b.tasks[anchorID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrAnchorNotOnBoard, anchorID)
		}
		if anchor.Status != status {
			return fmt.Errorf("%w: anchor %s is in %s, not %s", ErrAnchorColumnMismatch, anchorID, anchor.Status, status)
		}
		if anchorID == taskID {
			return nil
		}
	}

	src := b.Column(t.Status)
	oldIdx := src.IndexOf(taskID)
	src.TaskIDs = append(src.TaskIDs[:oldIdx], src.TaskIDs[oldIdx+1:]...)

	insertAt := dst.Len()
	if anchorID != "" {
		anchorIdx := dst.IndexOf(anchorID)
		insertAt = anchorIdx
		if src == dst && oldIdx <= anchorIdx {
			insertAt = anchorIdx + 1
		}
	}

	dst.TaskIDs = append(dst.TaskIDs, "")
	copy(dst.TaskIDs[insertAt+1:], dst.TaskIDs[insertAt:])
	dst.TaskIDs[insertAt] = taskID

	t.Status = status
	b.renumber(src)
	if dst != src {
		b.renumber(dst)
	}
	return nil
}

// Validate checks that every task sits in exactly one column and that the
// column matches the task's status.
func (b *Board) Validate() error {
	seen := make(map[string]Status, len(b.tasks))
	for _, col := range b.columns {
		for i, id := range col.TaskIDs {
			t, ok := b.tasks[id]
			if !ok {
				return fmt.Errorf("%w: column %s references missing task %s", ErrBoardInconsistent, col.Status, id)
			}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: task %s in both %s and %s", ErrBoardInconsistent, id, prev, col.Status)
			}
			if t.Status != col.Status {
				return fmt.Errorf("%w: task %s has status %s but sits in %s", ErrBoardInconsistent, id, t.Status, col.Status)
			}
			if t.Position != i {
				return fmt.Errorf("%w: task %s has position %d, expected %d", ErrBoardInconsistent, id, t.Position, i)
			}
			seen[id] = col.Status
		}
	}
	if len(seen) != len(b.tasks) {
		return fmt.Errorf("%w: %d tasks but %d column entries", ErrBoardInconsistent, len(b.tasks), len(seen))
	}
	return nil
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	c := &Board{tasks: make(map[string]*Task, len(b.tasks))}
	for _, col := range b.columns {
		ids := make([]string, len(col.TaskIDs))
		copy(ids, col.TaskIDs)
		c.columns = append(c.columns, &Column{Status: col.Status, Title: col.Title, TaskIDs: ids})
	}
	for id, t := range b.tasks {
		c.tasks[id] = t.Clone()
	}
	return c
}

func (b *Board) renumber(col *Column) {
	for i, id := range col.TaskIDs {
		b.tasks[id].Position = i
	}
}
