package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

func TestTailReader_PollReadsOnlyCompleteLines(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "agent_trace.jsonl")

	line1 := `{"id":"a","timestamp":"t1","vcs":{"revision_id":"r1"},"files":[]}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(line1), 0o644))

	reader := newTailReader(path)
	records, err := reader.poll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)

	// Append a second complete record plus a partial (unterminated) line.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":"b","timestamp":"t2","vcs":{"revision_id":"r2"},"files":[]}` + "\n" + `{"id":"c"`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err = reader.poll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].ID)

	// No further complete lines yet: another poll yields nothing new.
	records, err = reader.poll()
	require.NoError(t, err)
	assert.Empty(t, records)

	// Complete the partial line; it should now surface.
	f, err = os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`,"timestamp":"t3","vcs":{"revision_id":"r3"},"files":[]}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err = reader.poll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c", records[0].ID)
}

func TestTailReader_Poll_MissingFileIsNotAnError(t *testing.T) {
	t.Parallel()
	reader := newTailReader(filepath.Join(t.TempDir(), "missing.jsonl"))
	records, err := reader.poll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTailReader_Poll_SkipsUnparseableLines(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "agent_trace.jsonl")
	content := "not json\n" + `{"id":"ok","timestamp":"t","vcs":{"revision_id":"r"},"files":[]}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reader := newTailReader(path)
	records, err := reader.poll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].ID)
}

func TestRenderRecord_IncludesPathAndMutationClass(t *testing.T) {
	t.Parallel()
	var rec govtypes.TraceRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "x",
		"timestamp": "2026-01-01T00:00:00Z",
		"vcs": {"revision_id": "abc123"},
		"files": [{
			"relative_path": "src/a.go",
			"conversations": [{
				"url": "roo://task/t/instance/i",
				"contributor": {"entity_type": "ai", "model_identifier": "m"},
				"ranges": [],
				"related": [],
				"meta": {"mutation_class": "AST_REFACTOR", "mutation_confidence": "HIGH", "mutation_signals": [], "hook_invocation_id": "h"}
			}]
		}]
	}`), &rec))

	out := renderRecord(rec)
	assert.Contains(t, out, "src/a.go")
	assert.Contains(t, out, "AST_REFACTOR")
}
