package scope

import (
	"sync"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// expansionSet is the process-wide (but engine-instance-scoped, per spec
// §9 design note) map from intent id to human-approved additional globs.
// It grows only; Clear exists solely for test isolation.
type expansionSet struct {
	mu    sync.RWMutex
	globs map[string][]string
}

// NewExpansionSet returns an empty, ready-to-use ExpansionSet.
func NewExpansionSet() govtypes.ExpansionSet {
	return &expansionSet{globs: map[string][]string{}}
}

func (e *expansionSet) Globs(intentID string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.globs[intentID]...)
}

func (e *expansionSet) Approve(intentID string, globs []string) {
	if len(globs) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globs[intentID] = append(e.globs[intentID], globs...)
}

func (e *expansionSet) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globs = map[string][]string{}
}
