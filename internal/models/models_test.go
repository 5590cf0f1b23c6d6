package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Helpers
// ============================================================================

func newTestBoard(t *testing.T, layout map[Status][]string) *Board {
	t.Helper()
	var tasks []*Task
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range Statuses() {
		for i, id := range layout[s] {
			tasks = append(tasks, &Task{
				ID:        id,
				Title:     "task " + id,
				Status:    s,
				Priority:  PriorityMedium,
				Position:  i,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
		}
	}
	b, err := NewBoard(tasks)
	require.NoError(t, err)
	return b
}

func ids(b *Board, s Status) []string {
	return append([]string{}, b.Column(s).TaskIDs...)
}

// ============================================================================
// Status / Priority
// ============================================================================

func TestParseStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"todo", StatusTodo, false},
		{"in-progress", StatusInProgress, false},
		{"review", StatusReview, false},
		{"done", StatusDone, false},
		{"testing", "", true},
		{"Done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatusLoose(t *testing.T) {
	t.Parallel()
	got, err := ParseStatusLoose("In Progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got)

	got, err = ParseStatusLoose(" DONE ")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, got)

	_, err = ParseStatusLoose("testing")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatusTestingIsNotCanonical(t *testing.T) {
	t.Parallel()
	assert.False(t, StatusTesting.Valid())
	assert.Equal(t, -1, StatusTesting.Index())
	assert.Len(t, Statuses(), 4)
}

func TestParsePriority(t *testing.T) {
	t.Parallel()
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.True(t, errors.Is(err, ErrUnknownPriority))
}

// ============================================================================
// Board construction
// ============================================================================

func TestNewBoard_GroupsAndOrders(t *testing.T) {
	t.Parallel()
	tasks := []*Task{
		{ID: "b", Status: StatusTodo, Position: 1},
		{ID: "a", Status: StatusTodo, Position: 0},
		{ID: "c", Status: StatusDone, Position: 0},
	}
	b, err := NewBoard(tasks)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ids(b, StatusTodo))
	assert.Equal(t, []string{"c"}, ids(b, StatusDone))
	assert.Empty(t, ids(b, StatusReview))
	assert.NoError(t, b.Validate())
}

func TestNewBoard_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	_, err := NewBoard([]*Task{{ID: "x", Status: StatusTesting}})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestNewBoard_DoesNotAliasInput(t *testing.T) {
	t.Parallel()
	in := &Task{ID: "a", Status: StatusTodo}
	b, err := NewBoard([]*Task{in})
	require.NoError(t, err)

	require.NoError(t, b.Move("a", StatusDone, ""))
	assert.Equal(t, StatusTodo, in.Status)
}

func TestGetTaskByID_ReturnsCopy(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{StatusTodo: {"a"}})

	got, ok := b.GetTaskByID("a")
	require.True(t, ok)
	got.Status = StatusDone
	assert.Equal(t, StatusTodo, b.Task("a").Status)

	_, ok = b.GetTaskByID("missing")
	assert.False(t, ok)
}

// ============================================================================
// Move
// ============================================================================

func TestMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		taskID   string
		status   Status
		anchorID string
		wantTodo []string
		wantDone []string
	}{
		{"append to other column", "a", StatusDone, "", []string{"b", "c"}, []string{"x", "y", "a"}},
		{"insert before anchor in other column", "b", StatusDone, "y", []string{"a", "c"}, []string{"x", "b", "y"}},
		{"same column move down lands after anchor", "a", StatusTodo, "c", []string{"b", "c", "a"}, []string{"x", "y"}},
		{"same column move down by one", "a", StatusTodo, "b", []string{"b", "a", "c"}, []string{"x", "y"}},
		{"same column move up lands before anchor", "c", StatusTodo, "a", []string{"c", "a", "b"}, []string{"x", "y"}},
		{"same column append", "a", StatusTodo, "", []string{"b", "c", "a"}, []string{"x", "y"}},
		{"anchor is the task itself", "b", StatusTodo, "b", []string{"a", "b", "c"}, []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, map[Status][]string{
				StatusTodo: {"a", "b", "c"},
				StatusDone: {"x", "y"},
			})

			require.NoError(t, b.Move(tt.taskID, tt.status, tt.anchorID))
			assert.Equal(t, tt.wantTodo, ids(b, StatusTodo))
			assert.Equal(t, tt.wantDone, ids(b, StatusDone))
			assert.Equal(t, tt.status, b.Task(tt.taskID).Status)
			assert.NoError(t, b.Validate())
		})
	}
}

func TestMove_Errors(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{
		StatusTodo:   {"a"},
		StatusReview: {"r"},
	})

	assert.ErrorIs(t, b.Move("missing", StatusDone, ""), ErrTaskNotOnBoard)
	assert.ErrorIs(t, b.Move("a", StatusTesting, ""), ErrUnknownStatus)
	assert.ErrorIs(t, b.Move("a", StatusDone, "missing"), ErrAnchorNotOnBoard)
	assert.ErrorIs(t, b.Move("a", StatusDone, "r"), ErrAnchorColumnMismatch)

	// failed moves leave the board untouched
	assert.Equal(t, []string{"a"}, ids(b, StatusTodo))
	assert.NoError(t, b.Validate())
}

func TestRemove(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{StatusTodo: {"a", "b", "c"}})

	require.NoError(t, b.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, ids(b, StatusTodo))
	assert.Equal(t, 1, b.Task("c").Position)
	assert.Nil(t, b.Task("b"))
	assert.ErrorIs(t, b.Remove("b"), ErrTaskNotOnBoard)
}

func TestAdd_Duplicate(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{StatusTodo: {"a"}})
	err := b.Add(&Task{ID: "a", Status: StatusDone})
	assert.ErrorIs(t, err, ErrDuplicateTask)
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{StatusTodo: {"a", "b"}})
	c := b.Clone()

	require.NoError(t, c.Move("a", StatusDone, ""))
	assert.Equal(t, []string{"a", "b"}, ids(b, StatusTodo))
	assert.Equal(t, StatusTodo, b.Task("a").Status)
}

func TestValidate_DetectsMismatch(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{StatusTodo: {"a"}})
	b.Task("a").Status = StatusDone
	assert.ErrorIs(t, b.Validate(), ErrBoardInconsistent)
}

func TestSetTitles(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, nil)
	b.SetTitles(map[Status]string{StatusTodo: "Backlog", StatusTesting: "QA"})
	assert.Equal(t, "Backlog", b.Column(StatusTodo).Title)
	assert.Equal(t, "Done", b.Column(StatusDone).Title)
}

func TestBoard_MarshalJSON(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, map[Status][]string{
		StatusTodo: {"a", "b"},
		StatusDone: {"c"},
	})
	b.SetTitles(map[Status]string{StatusTodo: "Backlog"})

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded struct {
		Columns []struct {
			Status Status `json:"status"`
			Title  string `json:"title"`
			Tasks  []Task `json:"tasks"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Columns, 4)
	assert.Equal(t, "Backlog", decoded.Columns[0].Title)
	require.Len(t, decoded.Columns[0].Tasks, 2)
	assert.Equal(t, "a", decoded.Columns[0].Tasks[0].ID)
	assert.Empty(t, decoded.Columns[1].Tasks)
	assert.Equal(t, "c", decoded.Columns[3].Tasks[0].ID)
}
