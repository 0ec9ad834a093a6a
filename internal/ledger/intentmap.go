package ledger

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
)

var sectionHeadingRe = regexp.MustCompile(`^##\s+([A-Z]+-\d+)`)

type intentMapCacheEntry struct {
	mtime time.Time
	deps  map[string][]string
}

var (
	intentMapMu    sync.RWMutex
	intentMapCache = map[string]intentMapCacheEntry{}
)

// intentDependencies parses ".orchestration/intent_map.md" under workdir
// and returns the dependency ids declared for intentID (spec §4.5, §6).
// A missing or unparseable file is treated as "no dependencies" (spec §7).
func intentDependencies(workdir, intentID string) []string {
	path := filepath.Join(workdir, ".orchestration", "intent_map.md")
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	intentMapMu.RLock()
	entry, ok := intentMapCache[path]
	intentMapMu.RUnlock()
	if ok && entry.mtime.Equal(info.ModTime()) {
		return entry.deps[intentID]
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path derived from workdir + fixed filename
	if err != nil {
		return nil
	}

	deps := parseIntentMap(string(raw))

	intentMapMu.Lock()
	intentMapCache[path] = intentMapCacheEntry{mtime: info.ModTime(), deps: deps}
	intentMapMu.Unlock()

	return deps[intentID]
}

// parseIntentMap implements spec §6's intent-map grammar.
func parseIntentMap(doc string) map[string][]string {
	deps := map[string][]string{}
	lines := strings.Split(doc, "\n")

	var currentID string
	inDependsBlock := false

	for _, line := range lines {
		if m := sectionHeadingRe.FindStringSubmatch(line); m != nil {
			currentID = m[1]
			inDependsBlock = false
			continue
		}
		if currentID == "" {
			continue
		}
		if strings.Contains(line, "**Depends on:**") {
			inDependsBlock = true
			continue
		}
		if !inDependsBlock {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			inDependsBlock = false
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			dep := strings.TrimPrefix(trimmed, "-")
			dep = strings.Trim(strings.TrimSpace(dep), "`")
			if dep != "" {
				deps[currentID] = append(deps[currentID], dep)
			}
		}
	}

	return deps
}

// clearIntentMapCache empties the parse cache. Exposed for test isolation.
func clearIntentMapCache() {
	intentMapMu.Lock()
	defer intentMapMu.Unlock()
	intentMapCache = map[string]intentMapCacheEntry{}
}
