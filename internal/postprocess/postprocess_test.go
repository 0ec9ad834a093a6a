package postprocess

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
)

func TestOrchestrator_Run_SkipsWhenNotAllowed(t *testing.T) {
	t.Parallel()
	o := New(Check{Name: "format", Command: []string{"true"}})
	hc := &hooks.Context{ToolName: "write_to_file", Session: &govtypes.Session{}, PushResult: func(string) {}}

	err := o.Run(context.Background(), hc, hooks.Outcome{Allowed: false})
	require.NoError(t, err)
}

func TestOrchestrator_Run_SkipsWhenSafeTool(t *testing.T) {
	t.Parallel()
	var pushed []string
	o := New(Check{Name: "format", Command: []string{"false"}})
	hc := &hooks.Context{ToolName: "read_file", Session: &govtypes.Session{}, PushResult: func(s string) { pushed = append(pushed, s) }}

	err := o.Run(context.Background(), hc, hooks.Outcome{Allowed: true})
	require.NoError(t, err)
	assert.Empty(t, pushed)
}

func TestOrchestrator_Run_PassingCheckPushesNothing(t *testing.T) {
	t.Parallel()
	var pushed []string
	o := New(Check{Name: "format", Command: []string{"true"}})
	hc := &hooks.Context{
		ToolName:   "write_to_file",
		Payload:    govtypes.Payload{"path": "a.txt"},
		Session:    &govtypes.Session{},
		PushResult: func(s string) { pushed = append(pushed, s) },
	}

	err := o.Run(context.Background(), hc, hooks.Outcome{Allowed: true})
	require.NoError(t, err)
	assert.Empty(t, pushed)
}

func TestOrchestrator_Run_FailingCheckPushesWarning(t *testing.T) {
	t.Parallel()
	var pushed []string
	o := New(Check{Name: "lint", Command: []string{"false"}})
	hc := &hooks.Context{
		ToolName:   "write_to_file",
		Payload:    govtypes.Payload{"path": "a.txt"},
		Session:    &govtypes.Session{},
		PushResult: func(s string) { pushed = append(pushed, s) },
	}

	err := o.Run(context.Background(), hc, hooks.Outcome{Allowed: true})
	require.Error(t, err)
	require.Len(t, pushed, 1)
	assert.Contains(t, pushed[0], "hook_warning")
	assert.Contains(t, pushed[0], "lint")
}

func TestOrchestrator_Run_MissingCommandReportsNotFound(t *testing.T) {
	t.Parallel()
	var pushed []string
	o := New(Check{Name: "typecheck", Command: []string{"definitely-not-a-real-binary-xyz"}})
	hc := &hooks.Context{
		ToolName:   "write_to_file",
		Payload:    govtypes.Payload{"path": "a.txt"},
		Session:    &govtypes.Session{},
		PushResult: func(s string) { pushed = append(pushed, s) },
	}

	err := o.Run(context.Background(), hc, hooks.Outcome{Allowed: true})
	require.Error(t, err)
	require.Len(t, pushed, 1)
}

func TestCheck_Run_TimesOut(t *testing.T) {
	t.Parallel()
	c := Check{Name: "slow", Command: []string{"sleep", "5"}, Timeout: 50 * time.Millisecond}
	result := c.run(context.Background(), "")
	assert.False(t, result.Passed)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "timed out")
}

func TestCheck_Run_OrderPreserved(t *testing.T) {
	t.Parallel()
	var order []string
	o := New(
		Check{Name: "first", Command: []string{"false"}},
		Check{Name: "second", Command: []string{"false"}},
	)
	hc := &hooks.Context{
		ToolName:   "write_to_file",
		Payload:    govtypes.Payload{"path": "a.txt"},
		Session:    &govtypes.Session{},
		PushResult: func(s string) { order = append(order, s) },
	}

	_ = o.Run(context.Background(), hc, hooks.Outcome{Allowed: true})
	require.Len(t, order, 2)
	assert.Contains(t, order[0], "first")
	assert.Contains(t, order[1], "second")
}
