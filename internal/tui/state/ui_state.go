package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode Mode = iota // Default navigation mode
	DragMode               // A task is grabbed and the cursor marks the drop target
	DetailMode             // Reading one task
	HelpMode               // Displaying help screen
	TaskFormMode           // Creating or editing a task
	ColumnFormMode         // Renaming a column
)

func (m Mode) String() string {
	switch m {
	case NormalMode:
		return "NORMAL"
	case DragMode:
		return "DRAG"
	case DetailMode:
		return "DETAIL"
	case HelpMode:
		return "HELP"
	case TaskFormMode:
		return "TASK FORM"
	case ColumnFormMode:
		return "COLUMN FORM"
	}
	return "UNKNOWN"
}

// UIState manages the user interface state.
// This includes the cursor, terminal dimensions, and the current interaction mode.
type UIState struct {
	// selectedColumn is the index of the column under the cursor
	selectedColumn int

	// selectedTask is the slot under the cursor. In DragMode it may equal the
	// column length, which stands for the empty area below the last card.
	selectedTask int

	width  int
	height int

	mode Mode
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

// SelectedColumn returns the index of the column under the cursor.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = index
}

// SelectedTask returns the slot under the cursor.
func (s *UIState) SelectedTask() int {
	return s.selectedTask
}

// SetSelectedTask updates the selected slot.
func (s *UIState) SetSelectedTask(index int) {
	s.selectedTask = index
}

// MoveColumn shifts the cursor by delta columns, staying within [0, columns).
// The slot is clamped to maxSlot(newColumn).
func (s *UIState) MoveColumn(delta, columns int, maxSlot func(col int) int) {
	if columns == 0 {
		return
	}
	s.selectedColumn = clamp(s.selectedColumn+delta, 0, columns-1)
	s.selectedTask = clamp(s.selectedTask, 0, maxSlot(s.selectedColumn))
}

// MoveTask shifts the cursor by delta slots, staying within [0, maxSlot].
func (s *UIState) MoveTask(delta, maxSlot int) {
	s.selectedTask = clamp(s.selectedTask+delta, 0, maxSlot)
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetSize records the terminal dimensions.
func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// ContentHeight returns the available height for the board.
// This is terminal height minus title and status bar, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const titleHeight = 2     // title + gap line
	const statusBarHeight = 2 // status bar + help line
	return max(s.height-titleHeight-statusBarHeight, 5)
}

// ColumnWidth splits the terminal width across columns, with a floor of 16.
func (s *UIState) ColumnWidth(columns int) int {
	if columns == 0 {
		return s.width
	}
	return max(s.width/columns-2, 16)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
