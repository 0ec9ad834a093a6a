package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const intentMapDoc = `# Intent Map

## FEAT-1

Some description.

**Depends on:**
- FEAT-0
- ` + "`FEAT-2`" + `

## FEAT-3

**Depends on:**
- FEAT-1
`

func TestParseIntentMap(t *testing.T) {
	t.Parallel()

	deps := parseIntentMap(intentMapDoc)
	assert.Equal(t, []string{"FEAT-0", "FEAT-2"}, deps["FEAT-1"])
	assert.Equal(t, []string{"FEAT-1"}, deps["FEAT-3"])
	assert.Nil(t, deps["FEAT-UNKNOWN"])
}

func TestParseIntentMap_NoDependsSection(t *testing.T) {
	t.Parallel()

	deps := parseIntentMap("## FEAT-9\n\nNo dependencies here.\n")
	assert.Empty(t, deps["FEAT-9"])
}

func TestIntentDependencies_MissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Nil(t, intentDependencies(dir, "FEAT-1"))
}

func TestIntentDependencies_CachesByModTime(t *testing.T) {
	dir := t.TempDir()
	clearIntentMapCache()
	path := filepath.Join(dir, ".orchestration", "intent_map.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(intentMapDoc), 0o644))

	deps := intentDependencies(dir, "FEAT-1")
	assert.Equal(t, []string{"FEAT-0", "FEAT-2"}, deps)

	// A second call on the unchanged file (same mtime) returns the cached
	// parse.
	deps2 := intentDependencies(dir, "FEAT-1")
	assert.Equal(t, deps, deps2)
}
