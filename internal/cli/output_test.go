package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
)

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

func newFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: out, Err: errOut}, out, errOut
}

func TestOutputFormatter_Success(t *testing.T) {
	t.Run("json wraps data", func(t *testing.T) {
		f, out, _ := newFormatter(true, false)
		require.NoError(t, f.Success(map[string]any{"test": "value"}))

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "value", result["data"].(map[string]any)["test"])
	})

	t.Run("quiet prints id", func(t *testing.T) {
		f, out, _ := newFormatter(false, true)
		require.NoError(t, f.Success(mockDataWithID{ID: "abc-123", Name: "x"}))
		assert.Equal(t, "abc-123\n", out.String())
	})

	t.Run("quiet without id falls back to pretty print", func(t *testing.T) {
		f, out, _ := newFormatter(false, true)
		require.NoError(t, f.Success(mockDataWithoutID{Name: "n", Value: 2}))
		assert.Contains(t, out.String(), "Name:n")
	})

	t.Run("human", func(t *testing.T) {
		f, out, _ := newFormatter(false, false)
		require.NoError(t, f.Success(mockDataWithoutID{Name: "n", Value: 2}))
		assert.Contains(t, out.String(), "Value:2")
	})
}

func TestOutputFormatter_Printf(t *testing.T) {
	for _, mode := range []struct {
		name        string
		json, quiet bool
		wantOutput  bool
	}{
		{"human", false, false, true},
		{"json", true, false, false},
		{"quiet", false, true, false},
	} {
		t.Run(mode.name, func(t *testing.T) {
			f, out, _ := newFormatter(mode.json, mode.quiet)
			f.Printf("hello %s\n", "world")
			if mode.wantOutput {
				assert.Equal(t, "hello world\n", out.String())
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestOutputFormatter_ErrorWithSuggestion(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		f, out, errOut := newFormatter(true, false)
		require.NoError(t, f.ErrorWithSuggestion("TASK_NOT_FOUND", "task not found", "try kanban task list"))
		assert.Empty(t, errOut.String())

		var result struct {
			Success bool `json:"success"`
			Error   struct {
				Code       string `json:"code"`
				Message    string `json:"message"`
				Suggestion string `json:"suggestion"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Equal(t, "TASK_NOT_FOUND", result.Error.Code)
		assert.Equal(t, "try kanban task list", result.Error.Suggestion)
	})

	t.Run("human goes to stderr", func(t *testing.T) {
		f, out, errOut := newFormatter(false, false)
		require.NoError(t, f.ErrorWithSuggestion("X", "broken", "fix it"))
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "Error: broken")
		assert.Contains(t, errOut.String(), "Suggestion: fix it")
	})

	t.Run("no suggestion line when empty", func(t *testing.T) {
		f, _, errOut := newFormatter(false, false)
		require.NoError(t, f.Error("X", "broken"))
		assert.NotContains(t, errOut.String(), "Suggestion")
	})
}

func TestOutputFormatter_Fail(t *testing.T) {
	f, out, _ := newFormatter(true, false)
	err := f.Fail(taskservice.ErrTaskNotFound)

	var exitErr *ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitNotFound, exitErr.Code)
	assert.ErrorIs(t, err, taskservice.ErrTaskNotFound)
	assert.Contains(t, out.String(), `"code":"TASK_NOT_FOUND"`)
}
