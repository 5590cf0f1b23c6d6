package state

// DragState tracks a grabbed task between the grab and the drop.
type DragState struct {
	taskID       string
	originColumn int
	originSlot   int
}

// NewDragState creates an idle DragState.
func NewDragState() *DragState {
	return &DragState{}
}

// Start grabs taskID, remembering where it was picked up.
func (d *DragState) Start(taskID string, column, slot int) {
	d.taskID = taskID
	d.originColumn = column
	d.originSlot = slot
}

// Clear releases the grabbed task.
func (d *DragState) Clear() {
	*d = DragState{}
}

// Active reports whether a task is grabbed.
func (d *DragState) Active() bool {
	return d.taskID != ""
}

// TaskID returns the grabbed task, or "".
func (d *DragState) TaskID() string {
	return d.taskID
}

// Origin returns the column and slot the task was grabbed from.
func (d *DragState) Origin() (column, slot int) {
	return d.originColumn, d.originSlot
}
