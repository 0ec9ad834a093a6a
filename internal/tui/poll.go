// Package tui implements the live "ledger tail" view: a scrolling,
// color-coded display of trace records as they are appended to
// ".orchestration/agent_trace.jsonl". The model/view split and the
// polling-for-new-lines approach are adapted from the teacher's
// list.Model/list view package, generalized from "render a static
// checkpoint tree" to "render a growing ledger stream".
package tui

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// tailReader incrementally reads newly appended JSONL lines from path,
// remembering its byte offset across calls.
type tailReader struct {
	path   string
	offset int64
}

func newTailReader(path string) *tailReader {
	return &tailReader{path: path}
}

// poll reads any lines appended to the ledger file since the last call,
// parsing each complete (newline-terminated) line as a
// govtypes.TraceRecord. Unparseable lines are skipped rather than failing
// the whole poll.
func (t *tailReader) poll() ([]govtypes.TraceRecord, error) {
	f, err := os.Open(t.path) //nolint:gosec // operator-supplied ledger path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, err
	}

	chunk, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	// Only consume through the last complete line: the writer may be
	// mid-append, and a truncated trailing line would otherwise be
	// skipped forever once the offset moved past it.
	lastNewline := bytes.LastIndexByte(chunk, '\n')
	if lastNewline < 0 {
		return nil, nil
	}
	complete := chunk[:lastNewline]
	t.offset += int64(lastNewline) + 1

	var records []govtypes.TraceRecord
	for _, line := range bytes.Split(complete, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec govtypes.TraceRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
