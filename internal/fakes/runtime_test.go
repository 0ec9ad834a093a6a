package fakes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

func TestRuntime_WriteThenReadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rt := New(dir)
	ctx := context.Background()

	_, err := rt.Run(ctx, "write_to_file", govtypes.Payload{"path": "src/a.go", "content": "package src\n"})
	require.NoError(t, err)

	result, err := rt.Run(ctx, "read_file", govtypes.Payload{"path": "src/a.go"})
	require.NoError(t, err)
	assert.Equal(t, "package src\n", result)
}

func TestRuntime_ApplyDiff_ReplacesContent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("old\n"), 0o644))
	rt := New(dir)

	_, err := rt.Run(context.Background(), "apply_diff", govtypes.Payload{"path": "a.txt", "new_string": "new\n"})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestRuntime_DeleteFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	rt := New(dir)

	_, err := rt.Run(context.Background(), "delete", govtypes.Payload{"path": "a.txt"})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRuntime_ExecuteCommand_NeverShellsOut(t *testing.T) {
	t.Parallel()
	rt := New(t.TempDir())
	result, err := rt.Run(context.Background(), "execute_command", govtypes.Payload{"command": "rm -rf /"})
	require.NoError(t, err)
	assert.Equal(t, "simulated: rm -rf /", result)
}

func TestRuntime_ListFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	rt := New(dir)

	result, err := rt.Run(context.Background(), "list_files", govtypes.Payload{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, result)
}

func TestRuntime_UnknownTool_Errors(t *testing.T) {
	t.Parallel()
	rt := New(t.TempDir())
	_, err := rt.Run(context.Background(), "not_a_real_tool", govtypes.Payload{})
	require.Error(t, err)
}

func TestResolvePath_RejectsEscape(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rt := New(dir)
	_, err := rt.Run(context.Background(), "read_file", govtypes.Payload{"path": "../../etc/passwd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes working directory")
}

func TestRuntime_MissingPath_Errors(t *testing.T) {
	t.Parallel()
	rt := New(t.TempDir())
	_, err := rt.Run(context.Background(), "write_to_file", govtypes.Payload{"content": "x"})
	require.Error(t, err)
}
