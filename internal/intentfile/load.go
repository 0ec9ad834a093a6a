// Package intentfile loads the declarative intent file
// ".orchestration/active_intents.yaml" (or ".yml") that both the Handshake
// and the Scope & Lock Gate consult (spec §3, §6). Parsed results are
// cached by (path, mtime), invalidated strictly on modification-time
// change (spec §5(e)).
package intentfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

type document struct {
	ActiveIntents []rawIntent `yaml:"active_intents"`
}

// rawIntent tolerates owned_scope arriving as something other than a YAML
// sequence (spec §6: "non-array owned_scope is treated as empty").
type rawIntent struct {
	ID                 string    `yaml:"id"`
	OwnedScope         yaml.Node `yaml:"owned_scope"`
	Constraints        []string  `yaml:"constraints"`
	AcceptanceCriteria []string  `yaml:"acceptance_criteria"`
}

type cacheEntry struct {
	mtime   time.Time
	intents map[string]govtypes.Intent
}

var (
	mu    sync.RWMutex
	cache = map[string]cacheEntry{}
)

// Load reads and parses the active-intents file under workdir, returning
// a map keyed by intent id. Missing id entries are rejected per-entry
// (the entry is skipped, not the whole file).
func Load(workdir string) (map[string]govtypes.Intent, error) {
	path, modTime, err := locate(workdir)
	if err != nil {
		return nil, err
	}

	mu.RLock()
	entry, ok := cache[path]
	mu.RUnlock()
	if ok && entry.mtime.Equal(modTime) {
		return entry.intents, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path derived from workdir + fixed filename
	if err != nil {
		return nil, fmt.Errorf("reading active intents: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing active intents: %w", err)
	}

	intents := map[string]govtypes.Intent{}
	for _, ri := range doc.ActiveIntents {
		if ri.ID == "" {
			continue
		}
		intents[ri.ID] = govtypes.Intent{
			ID:                 ri.ID,
			OwnedScope:         decodeOwnedScope(ri.OwnedScope),
			Constraints:        ri.Constraints,
			AcceptanceCriteria: ri.AcceptanceCriteria,
		}
	}

	mu.Lock()
	cache[path] = cacheEntry{mtime: modTime, intents: intents}
	mu.Unlock()

	return intents, nil
}

// decodeOwnedScope returns the glob list if node is a YAML sequence of
// scalars, else nil (treated as empty per spec §6).
func decodeOwnedScope(node yaml.Node) []string {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	var globs []string
	for _, child := range node.Content {
		if child.Kind == yaml.ScalarNode {
			globs = append(globs, child.Value)
		}
	}
	return globs
}

// locate finds active_intents.yaml or .yml under workdir/.orchestration
// and returns its path and modification time.
func locate(workdir string) (string, time.Time, error) {
	dir := filepath.Join(workdir, ".orchestration")
	for _, name := range []string{"active_intents.yaml", "active_intents.yml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil {
			return path, info.ModTime(), nil
		}
	}
	return "", time.Time{}, fmt.Errorf("no active_intents.yaml/.yml under %s", dir)
}

// Clear empties the parse cache. Exposed for test isolation.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	cache = map[string]cacheEntry{}
}
