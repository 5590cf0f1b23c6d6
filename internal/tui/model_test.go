package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/app"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/testutil"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/tui/state"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type harness struct {
	t     *testing.T
	app   *app.App
	model Model
}

func setupModel(t *testing.T) *harness {
	t.Helper()
	a := app.New(testutil.SetupTestDB(t))
	h := &harness{t: t, app: a, model: New(context.Background(), a, config.Default())}
	h.send(tea.WindowSizeMsg{Width: 160, Height: 40})
	h.run(h.model.Init())
	return h
}

func (h *harness) create(title string, status models.Status) string {
	h.t.Helper()
	created, err := h.app.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{Title: title, Status: status})
	require.NoError(h.t, err)
	return created.ID
}

func (h *harness) column(status models.Status) []string {
	h.t.Helper()
	board, err := h.app.TaskService.GetBoard(context.Background())
	require.NoError(h.t, err)
	return append([]string{}, board.Column(status).TaskIDs...)
}

// send delivers msg and runs every command it produces to completion
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	default:
		h.send(msg)
	}
}

func (h *harness) press(keys ...tea.Key) {
	h.t.Helper()
	for _, k := range keys {
		h.send(tea.KeyPressMsg(k))
	}
}

// open delivers k and drops its commands. Opening a form starts a cursor
// blink loop that never settles.
func (h *harness) open(k tea.Key) {
	h.t.Helper()
	updated, _ := h.model.Update(tea.KeyPressMsg(k))
	h.model = updated.(Model)
}

func (h *harness) reload() {
	h.t.Helper()
	h.run(h.model.loadBoard())
}

func (h *harness) content() string {
	return h.model.View().Content
}

var (
	keySpace = tea.Key{Code: tea.KeySpace, Text: " "}
	keyEsc   = tea.Key{Code: tea.KeyEscape}
	keyEnter = tea.Key{Code: tea.KeyEnter}
	keyLeft  = tea.Key{Code: 'h', Text: "h"}
	keyRight = tea.Key{Code: 'l', Text: "l"}
	keyUp    = tea.Key{Code: 'k', Text: "k"}
	keyDown  = tea.Key{Code: 'j', Text: "j"}
	keyHelp  = tea.Key{Code: '?', Text: "?"}

	keyNew    = tea.Key{Code: 'n', Text: "n"}
	keyEdit   = tea.Key{Code: 'e', Text: "e"}
	keyRename = tea.Key{Code: 'R', Text: "R"}
	keySave   = tea.Key{Code: 's', Mod: tea.ModCtrl}
)

// formTick stands in for the internal messages a form receives between keys
type formTick struct{}

// ============================================================================
// LOADING AND NAVIGATION
// ============================================================================

func TestInit_LoadsBoard(t *testing.T) {
	h := setupModel(t)
	h.create("Write docs", models.StatusTodo)
	h.reload()

	out := h.content()
	assert.True(t, h.model.View().AltScreen)
	for _, title := range []string{"To Do", "In Progress", "Review", "Done", "Write docs"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, state.Offline.String())
}

func TestView_BeforeLoad(t *testing.T) {
	a := app.New(testutil.SetupTestDB(t))
	m := New(context.Background(), a, config.Default())
	assert.Equal(t, "Loading...", m.View().Content)
}

func TestNavigation_StaysOnBoard(t *testing.T) {
	h := setupModel(t)
	h.create("A", models.StatusTodo)
	h.create("B", models.StatusTodo)
	h.reload()

	h.press(keyDown, keyDown, keyDown)
	assert.Equal(t, 1, h.model.ui.SelectedTask(), "cursor stops at the last card")

	h.press(keyRight)
	assert.Equal(t, 1, h.model.ui.SelectedColumn())
	assert.Equal(t, 0, h.model.ui.SelectedTask(), "empty column clamps the slot")

	h.press(keyLeft, keyLeft, keyUp)
	assert.Equal(t, 0, h.model.ui.SelectedColumn())
	assert.Equal(t, 0, h.model.ui.SelectedTask())

	// Arrow keys work alongside the configured keys
	h.press(tea.Key{Code: tea.KeyRight})
	assert.Equal(t, 1, h.model.ui.SelectedColumn())
}

// ============================================================================
// DRAG AND DROP
// ============================================================================

func TestDrag_OntoTaskTakesItsSlot(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	r := h.create("R", models.StatusReview)
	h.reload()

	h.press(keySpace)
	require.Equal(t, state.DragMode, h.model.ui.Mode())
	assert.Contains(t, h.content(), "drop here")

	h.press(keyRight, keyRight, keySpace)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Empty(t, h.column(models.StatusTodo))
	assert.Equal(t, []string{a, r}, h.column(models.StatusReview))

	// The cursor follows the moved task
	assert.Equal(t, 2, h.model.ui.SelectedColumn())
	assert.Equal(t, 0, h.model.ui.SelectedTask())
	assert.Contains(t, h.content(), "moved")
}

func TestDrag_OntoColumnAppends(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	r := h.create("R", models.StatusReview)
	h.reload()

	// The slot after the last card is the column itself
	h.press(keySpace, keyRight, keyRight, keyDown, keySpace)

	assert.Equal(t, []string{r, a}, h.column(models.StatusReview))
	assert.Equal(t, 1, h.model.ui.SelectedTask())
}

func TestDrag_IntoEmptyColumn(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	h.reload()

	h.press(keySpace, keyRight, keyRight, keyRight, keySpace)

	assert.Equal(t, []string{a}, h.column(models.StatusDone))
}

func TestDrag_DownwardInSameColumnLandsAfterTarget(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	b := h.create("B", models.StatusTodo)
	c := h.create("C", models.StatusTodo)
	h.reload()

	h.press(keySpace, keyDown, keyDown, keySpace)

	assert.Equal(t, []string{b, c, a}, h.column(models.StatusTodo))
	assert.Equal(t, 2, h.model.ui.SelectedTask())
}

func TestDrag_UpwardInSameColumn(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	b := h.create("B", models.StatusTodo)
	c := h.create("C", models.StatusTodo)
	h.reload()

	h.press(keyDown, keyDown, keySpace, keyUp, keyUp, keySpace)

	assert.Equal(t, []string{c, a, b}, h.column(models.StatusTodo))
}

func TestDrag_CancelMovesNothing(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	h.reload()

	h.press(keySpace, keyRight, keyEsc)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.False(t, h.model.drag.Active())
	assert.Equal(t, []string{a}, h.column(models.StatusTodo))
	assert.Equal(t, 0, h.model.ui.SelectedColumn(), "cursor returns to the grabbed task")
	assert.Contains(t, h.content(), "drop cancelled")
}

func TestDrag_DropOnItself(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	b := h.create("B", models.StatusTodo)
	h.reload()

	h.press(keySpace, keySpace)

	assert.Equal(t, []string{a, b}, h.column(models.StatusTodo))
	assert.Contains(t, h.content(), "nothing to move")
}

func TestGrab_EmptyColumnIsNoop(t *testing.T) {
	h := setupModel(t)
	h.press(keySpace)
	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
}

func TestDrag_TaskDeletedElsewhere(t *testing.T) {
	h := setupModel(t)
	a := h.create("A", models.StatusTodo)
	h.reload()

	h.press(keySpace)
	require.NoError(t, h.app.TaskService.DeleteTask(context.Background(), a))
	h.send(RefreshMsg{Event: events.BoardChanged(a, "")})

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Contains(t, h.content(), "grabbed task was removed")
}

// ============================================================================
// OTHER MODES
// ============================================================================

func TestDetail_OpenAndClose(t *testing.T) {
	h := setupModel(t)
	created, err := h.app.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{
		Title:       "Ship release",
		Description: "Tag and publish",
	})
	require.NoError(t, err)
	h.reload()

	h.press(keyEnter)
	require.Equal(t, state.DetailMode, h.model.ui.Mode())
	require.NotNil(t, h.model.detailTask)
	assert.Equal(t, created.ID, h.model.detailTask.ID)
	assert.Contains(t, h.content(), "Ship release")

	h.press(keyEsc)
	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Nil(t, h.model.detailTask)
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	h := setupModel(t)

	h.press(keyHelp)
	require.Equal(t, state.HelpMode, h.model.ui.Mode())
	assert.Contains(t, h.content(), "prev column")

	h.press(keyDown)
	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
}

func TestQuit(t *testing.T) {
	h := setupModel(t)
	_, cmd := h.model.Update(tea.KeyPressMsg(tea.Key{Code: 'q', Text: "q"}))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCustomKeyMappings(t *testing.T) {
	cfg := config.Default()
	cfg.KeyMappings.Grab = "g"

	a := app.New(testutil.SetupTestDB(t))
	h := &harness{t: t, app: a, model: New(context.Background(), a, cfg)}
	h.create("A", models.StatusTodo)
	h.run(h.model.Init())

	h.press(keySpace)
	assert.Equal(t, state.NormalMode, h.model.ui.Mode())

	h.press(tea.Key{Code: 'g', Text: "g"})
	assert.Equal(t, state.DragMode, h.model.ui.Mode())
}

// ============================================================================
// FORMS
// ============================================================================

func TestTaskForm_CreatesInSelectedColumn(t *testing.T) {
	h := setupModel(t)

	h.press(keyRight)
	h.open(keyNew)
	require.Equal(t, state.TaskFormMode, h.model.ui.Mode())
	require.NotNil(t, h.model.forms.TaskForm)
	assert.Contains(t, h.content(), "New task in In Progress")

	h.model.forms.FormTitle = "  Draft release notes "
	h.model.forms.FormDescription = "List the **breaking** changes"
	h.press(keySave)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Nil(t, h.model.forms.TaskForm)

	ids := h.column(models.StatusInProgress)
	require.Len(t, ids, 1)
	task, err := h.app.TaskService.GetTask(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Draft release notes", task.Title)
	assert.Equal(t, "List the **breaking** changes", task.Description)

	assert.Equal(t, 1, h.model.ui.SelectedColumn())
	assert.Equal(t, 0, h.model.ui.SelectedTask())
	assert.Contains(t, h.content(), "created")
}

func TestTaskForm_EditsSelectedTask(t *testing.T) {
	h := setupModel(t)
	h.create("A", models.StatusTodo)
	b := h.create("B", models.StatusTodo)
	h.reload()

	h.press(keyDown)
	h.open(keyEdit)
	require.Equal(t, state.TaskFormMode, h.model.ui.Mode())
	assert.Equal(t, b, h.model.forms.EditingTaskID)
	assert.Equal(t, "B", h.model.forms.FormTitle, "form starts from the current values")

	h.model.forms.FormTitle = "B, renamed"
	h.press(keySave)

	task, err := h.app.TaskService.GetTask(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "B, renamed", task.Title)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, 1, h.model.ui.SelectedTask(), "editing keeps the card in place")
	assert.Contains(t, h.content(), "updated")
}

func TestTaskForm_CancelSavesNothing(t *testing.T) {
	h := setupModel(t)

	h.open(keyNew)
	h.model.forms.FormTitle = "Never saved"
	h.press(keyEsc)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Nil(t, h.model.forms.TaskForm)
	assert.Empty(t, h.model.forms.FormTitle)
	assert.Empty(t, h.column(models.StatusTodo))
}

func TestTaskForm_DeclinedConfirmSavesNothing(t *testing.T) {
	h := setupModel(t)

	h.open(keyNew)
	h.model.forms.FormTitle = "Declined"
	h.model.forms.FormConfirm = false
	h.model.forms.TaskForm.State = huh.StateCompleted
	h.send(formTick{})

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Empty(t, h.column(models.StatusTodo))
	assert.Contains(t, h.content(), "task not saved")
}

func TestTaskForm_ValidationErrorIsShown(t *testing.T) {
	h := setupModel(t)

	h.open(keyNew)
	h.model.forms.FormTitle = "   "
	h.press(keySave)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Empty(t, h.column(models.StatusTodo))
	assert.Contains(t, h.content(), "save failed")
}

func TestTaskForm_EditNeedsATask(t *testing.T) {
	h := setupModel(t)

	h.open(keyEdit)
	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Nil(t, h.model.forms.TaskForm)
}

func TestTaskForm_KeysGoToTheForm(t *testing.T) {
	h := setupModel(t)
	h.create("A", models.StatusTodo)
	h.reload()

	h.open(keyNew)
	updated, _ := h.model.Update(tea.KeyPressMsg(keySpace))
	h.model = updated.(Model)

	assert.Equal(t, state.TaskFormMode, h.model.ui.Mode(), "board keys do not fire while a form is open")
	assert.False(t, h.model.drag.Active())
}

func TestColumnForm_Renames(t *testing.T) {
	h := setupModel(t)

	h.press(keyRight, keyRight)
	h.open(keyRename)
	require.Equal(t, state.ColumnFormMode, h.model.ui.Mode())
	assert.Equal(t, models.StatusReview, h.model.forms.EditingColumn)
	assert.Equal(t, "Review", h.model.forms.FormColumnName)

	h.model.forms.FormColumnName = "Code review"
	h.press(keySave)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	col, err := h.app.ColumnService.GetColumn(context.Background(), models.StatusReview)
	require.NoError(t, err)
	assert.Equal(t, "Code review", col.Title)
	assert.Contains(t, h.content(), "Code review")
	assert.Contains(t, h.content(), "renamed column")
}

func TestColumnForm_InvalidNameIsShown(t *testing.T) {
	h := setupModel(t)

	h.open(keyRename)
	h.model.forms.FormColumnName = ""
	h.press(keySave)

	col, err := h.app.ColumnService.GetColumn(context.Background(), models.StatusTodo)
	require.NoError(t, err)
	assert.Equal(t, "To Do", col.Title)
	assert.Contains(t, h.content(), "rename failed")
}

func TestColumnForm_Cancel(t *testing.T) {
	h := setupModel(t)

	h.open(keyRename)
	h.model.forms.FormColumnName = "Backlog"
	h.press(keyEsc)

	assert.Equal(t, state.NormalMode, h.model.ui.Mode())
	assert.Nil(t, h.model.forms.ColumnForm)
	col, err := h.app.ColumnService.GetColumn(context.Background(), models.StatusTodo)
	require.NoError(t, err)
	assert.Equal(t, "To Do", col.Title)
}

// ============================================================================
// LIVE UPDATES
// ============================================================================

func TestRefreshMsg_ReloadsBoard(t *testing.T) {
	h := setupModel(t)
	h.create("From another client", models.StatusDone)

	assert.NotContains(t, h.content(), "From another client")
	h.send(RefreshMsg{Event: events.BoardChanged("", "")})
	assert.Contains(t, h.content(), "From another client")
}

func TestSubscribe_ClosedChannel(t *testing.T) {
	h := setupModel(t)
	ch := make(chan events.Event)
	close(ch)
	h.model.eventChan = ch
	h.model.conn = state.Connected

	h.run(h.model.subscribe())

	assert.Equal(t, state.Disconnected, h.model.conn)
	assert.Nil(t, h.model.eventChan)
	assert.Contains(t, h.content(), "lost connection")
}

func TestNew_WithDaemon(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	listener := testutil.SetupTestClient(t, socketPath)
	publisher := testutil.SetupTestClient(t, socketPath)

	a := app.New(testutil.SetupTestDB(t), app.WithEventPublisher(listener))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	m := New(ctx, a, config.Default())
	require.NotNil(t, m.eventChan)
	assert.Equal(t, state.Connected, m.conn)

	require.NoError(t, publisher.SendEvent(events.BoardChanged("", "")))

	msg := m.subscribe()()
	assert.IsType(t, RefreshMsg{}, msg)
}
