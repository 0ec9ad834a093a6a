package handshake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
)

func TestGate_Check_DeniesMutatingToolWithNoActiveIntent(t *testing.T) {
	t.Parallel()
	g := New()
	var pushed string
	hc := &hooks.Context{
		ToolName:   "write_to_file",
		Session:    &govtypes.Session{WorkingDirectory: t.TempDir()},
		PushResult: func(s string) { pushed = s },
	}

	decision, err := g.Check(hc)
	require.NoError(t, err)
	assert.False(t, decision.Allow)
	assert.True(t, decision.AlreadyReported)
	assert.Contains(t, pushed, `"code":"NO_ACTIVE_INTENT"`)
}

func TestGate_Check_AllowsMutatingToolWithActiveIntent(t *testing.T) {
	t.Parallel()
	g := New()
	hc := &hooks.Context{
		ToolName: "write_to_file",
		Session:  &govtypes.Session{WorkingDirectory: t.TempDir(), ActiveIntentID: "FEAT-1"},
	}

	decision, err := g.Check(hc)
	require.NoError(t, err)
	assert.True(t, decision.Allow)
}

func TestGate_Check_AllowsNonMutatingToolRegardlessOfIntent(t *testing.T) {
	t.Parallel()
	g := New()
	hc := &hooks.Context{
		ToolName: "read_file",
		Session:  &govtypes.Session{WorkingDirectory: t.TempDir()},
	}

	decision, err := g.Check(hc)
	require.NoError(t, err)
	assert.True(t, decision.Allow)
}

func TestGate_Check_DeniesWhenSessionNil(t *testing.T) {
	t.Parallel()
	g := New()
	var pushed string
	hc := &hooks.Context{
		ToolName:   "apply_diff",
		Session:    nil,
		PushResult: func(s string) { pushed = s },
	}

	decision, err := g.Check(hc)
	require.NoError(t, err)
	assert.False(t, decision.Allow)
	assert.Contains(t, pushed, "NO_ACTIVE_INTENT")
}

func TestSelect_LoadsAndRenders(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := "active_intents:\n  - id: FEAT-1\n    owned_scope: [\"src/**\"]\n    constraints: [\"no breaking changes\"]\n    acceptance_criteria: [\"tests pass\"]\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".orchestration"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".orchestration", "active_intents.yaml"), []byte(doc), 0o644))

	intent, payload, err := Select(dir, "FEAT-1")
	require.NoError(t, err)
	assert.Equal(t, "FEAT-1", intent.ID)
	assert.True(t, strings.HasPrefix(payload, "<intent_context>"))
	assert.Contains(t, payload, "<id>FEAT-1</id>")
	assert.Contains(t, payload, "<glob>src/**</glob>")
	assert.Contains(t, payload, "<item>no breaking changes</item>")
	assert.Contains(t, payload, "<item>tests pass</item>")
	assert.True(t, strings.HasSuffix(payload, "</intent_context>"))
}

func TestSelect_UnknownIntentErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := "active_intents:\n  - id: FEAT-1\n    owned_scope: []\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".orchestration"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".orchestration", "active_intents.yaml"), []byte(doc), 0o644))

	_, _, err := Select(dir, "FEAT-MISSING")
	assert.Error(t, err)
}

func TestBind_SetsActiveIntentID(t *testing.T) {
	t.Parallel()
	sess := &govtypes.Session{}
	Bind(sess, "FEAT-9")
	assert.Equal(t, "FEAT-9", sess.ActiveIntentID)
}

func TestRenderIntentContext_EscapesSpecialCharacters(t *testing.T) {
	t.Parallel()
	intent := govtypes.Intent{ID: "FEAT<1>", OwnedScope: []string{"src/**"}}
	payload := RenderIntentContext(intent)
	assert.Contains(t, payload, "FEAT&lt;1&gt;")
}

func TestRenderIntentContext_EmptyIntentHasEmptyElements(t *testing.T) {
	t.Parallel()
	payload := RenderIntentContext(govtypes.Intent{})
	assert.Contains(t, payload, "<owned_scope></owned_scope>")
	assert.Contains(t, payload, "<constraints></constraints>")
	assert.Contains(t, payload, "<acceptance_criteria></acceptance_criteria>")
}
