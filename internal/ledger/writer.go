// Package ledger implements the Trace Ledger Writer (spec §4.5): the
// append-only post-hook that binds a successful destructive tool call to
// the file ranges it touched, hashed and linked back to the intent that
// authorized it.
package ledger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Heban-7/governed-ai-native-ide/internal/classifier"
	"github.com/Heban-7/governed-ai-native-ide/internal/filelock"
	"github.com/Heban-7/governed-ai-native-ide/internal/gitutil"
	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hasher"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
	"github.com/Heban-7/governed-ai-native-ide/internal/intentfile"
	"github.com/Heban-7/governed-ai-native-ide/internal/logging"
	"github.com/Heban-7/governed-ai-native-ide/internal/redactscan"
)

const ledgerRelPath = ".orchestration/agent_trace.jsonl"

// nowFunc is overridable in tests.
var nowFunc = time.Now

// Writer is the Trace Ledger Writer post-hook.
type Writer struct {
	Hasher *hasher.Hasher
}

// New builds a Writer with its own hasher.
func New() *Writer {
	return &Writer{Hasher: hasher.New()}
}

// PostHook adapts Record to the hooks.PostHookFunc signature.
func (w *Writer) PostHook() hooks.PostHookFunc {
	return func(ctx context.Context, hc *hooks.Context, outcome hooks.Outcome) error {
		return w.Record(ctx, hc, outcome)
	}
}

// Record implements spec §4.5: on a successfully-allowed destructive
// invocation with at least one affected file, appends one TraceRecord line
// to the append-only ledger. Preconditions that are not met are a silent
// no-op (spec §7: the ledger only ever records what the gate allowed).
func (w *Writer) Record(ctx context.Context, hc *hooks.Context, outcome hooks.Outcome) error {
	if !outcome.Allowed || outcome.Err != nil {
		return nil
	}

	sess := hc.Session
	if sess == nil || sess.WorkingDirectory == "" {
		return nil
	}

	class := classifier.Classify(hc.ToolName, hc.Payload)
	if !class.IsDestructive() || len(class.AffectedFiles) == 0 {
		return nil
	}

	revision, err := gitutil.Head(ctx, sess.WorkingDirectory)
	if err != nil {
		revision = "UNKNOWN"
	}

	intents, err := intentfile.Load(sess.WorkingDirectory)
	if err != nil {
		intents = map[string]govtypes.Intent{}
	}
	intent := intents[sess.ActiveIntentID]
	// The session's active intent is linked even when the intent file does
	// not list it; a session with no active intent links "UNKNOWN".
	intent.ID = sess.ActiveIntentID
	if intent.ID == "" {
		intent.ID = "UNKNOWN"
	}

	conversationURL := buildConversationURL(sess)
	contributor := buildContributor(sess.Agent)
	related := buildRelated(sess.WorkingDirectory, intent, hc.Payload)

	record := govtypes.TraceRecord{
		ID:        hc.InvocationID,
		Timestamp: nowFunc().UTC().Format(time.RFC3339),
		VCS:       govtypes.VCSInfo{RevisionID: revision},
	}

	for _, f := range class.AffectedFiles {
		ranges, content := w.deriveRanges(sess.WorkingDirectory, class.NormalizedToolName, hc.Payload, f)
		if len(ranges) == 0 {
			continue
		}

		hashed := make([]govtypes.HashedRange, 0, len(ranges))
		for _, r := range ranges {
			rCopy := r
			ch, hashErr := w.Hasher.Hash(f, content, &rCopy, hc.Payload.String("content"))
			if hashErr != nil {
				continue
			}
			// ch.CanonicalContent never reaches the ledger (spec §6 fixes the
			// range shape to {start_line,end_line,content_hash}); scan it here,
			// before it's dropped, so a secret caught in a diff preview still
			// surfaces instead of vanishing silently.
			if scanned := redactscan.Redact(ch.CanonicalContent); scanned != ch.CanonicalContent {
				logging.Warn(ctx, "redacted likely secret in canonical content before discarding",
					"file", f, "start_line", r.StartLine, "end_line", r.EndLine)
			}
			hashed = append(hashed, govtypes.HashedRange{
				StartLine:   r.StartLine,
				EndLine:     r.EndLine,
				ContentHash: ch.Digest,
			})
		}
		if len(hashed) == 0 {
			continue
		}

		record.Files = append(record.Files, govtypes.TraceFile{
			RelativePath: relativize(sess.WorkingDirectory, f),
			Conversations: []govtypes.Conversation{{
				URL:         conversationURL,
				Contributor: contributor,
				Ranges:      hashed,
				Related:     related,
				Meta: govtypes.ConversationMeta{
					MutationClass:      class.MutationClass,
					MutationConfidence: class.MutationConfidence,
					MutationSignals:    class.Signals,
					HookInvocationID:   hc.InvocationID,
				},
			}},
		})
	}

	if len(record.Files) == 0 {
		return nil
	}

	return w.append(sess.WorkingDirectory, record)
}

// buildConversationURL implements spec §6's three-tier conversation URL.
func buildConversationURL(sess *govtypes.Session) string {
	switch {
	case sess.TaskID != "" && sess.InstanceID != "":
		return fmt.Sprintf("roo://task/%s/instance/%s", sess.TaskID, sess.InstanceID)
	case sess.TaskID != "":
		return fmt.Sprintf("roo://task/%s", sess.TaskID)
	default:
		return "roo://task/unknown"
	}
}

func buildContributor(a govtypes.AgentMetadata) govtypes.Contributor {
	return govtypes.Contributor{
		EntityType:      "AI",
		ModelIdentifier: a.ModelIdentifier,
		ModelVersion:    a.ModelVersion,
		AgentRole:       a.AgentRole,
		WorkerID:        a.WorkerID,
		SupervisorID:    a.SupervisorID,
	}
}

// buildRelated assembles a conversation's related links: the active
// intent as a specification link, its intent-map dependencies, and any
// payload-supplied enrichment fields (spec §6), de-duplicated by
// (type, value).
func buildRelated(workdir string, intent govtypes.Intent, payload govtypes.Payload) []govtypes.RelatedLink {
	seen := map[string]bool{}
	var out []govtypes.RelatedLink

	add := func(typ, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := typ + "|" + value
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, govtypes.RelatedLink{Type: typ, Value: value})
	}

	if intent.ID != "" {
		add("specification", intent.ID)
		for _, dep := range intentDependencies(workdir, intent.ID) {
			add("specification", dep)
		}
	}

	for _, v := range payload.StringSlice("related_specifications") {
		add("specification", v)
	}
	for _, v := range payload.StringSlice("intent_ids") {
		add("specification", v)
	}
	for _, v := range payload.StringSlice("requirement_ids") {
		add("requirement", v)
	}
	for _, v := range payload.StringSlice("ticket_ids") {
		add("ticket", v)
	}
	for _, v := range payload.StringSlice("requirement_links") {
		add("requirement", v)
	}
	for _, v := range payload.StringSlice("related_links") {
		add("document", v)
	}

	return out
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// deriveRanges implements spec §4.5's per-tool range derivation, returning
// the modified ranges plus the current on-disk content of f (read once,
// used both here and by the caller's hasher).
func (w *Writer) deriveRanges(workdir, normalized string, payload govtypes.Payload, f string) ([]hasher.Range, []byte) {
	absPath := f
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workdir, f)
	}
	content, err := os.ReadFile(absPath) //nolint:gosec // path derived from session workdir + classifier-extracted file
	if err != nil {
		content = nil
	}

	switch normalized {
	case "write_to_file":
		return []hasher.Range{wholeFileRange(content)}, content

	case "apply_diff", "apply_patch":
		text := payload.String("patch")
		if text == "" {
			text = payload.String("diff")
		}
		ranges := hunkRanges(text)
		if len(ranges) == 0 {
			return []hasher.Range{wholeFileRange(content)}, content
		}
		return ranges, content

	default:
		if needle := payload.String("new_string"); needle != "" {
			if r, ok := locateRange(content, needle); ok {
				return []hasher.Range{r}, content
			}
		}
		return []hasher.Range{wholeFileRange(content)}, content
	}
}

func wholeFileRange(content []byte) hasher.Range {
	n := strings.Count(string(content), "\n") + 1
	if len(content) == 0 {
		n = 1
	}
	return hasher.Range{StartLine: 1, EndLine: n}
}

// hunkRanges parses unified-diff hunk headers into post-image ranges
// (spec §4.5).
func hunkRanges(diffText string) []hasher.Range {
	if diffText == "" {
		return nil
	}
	var ranges []hasher.Range
	for _, line := range strings.Split(diffText, "\n") {
		m := hunkHeaderRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		length := 1
		if m[3] != "" {
			if n, err := strconv.Atoi(m[3]); err == nil {
				length = n
			}
		}
		end := start + length - 1
		if end < start {
			end = start
		}
		ranges = append(ranges, hasher.Range{StartLine: start, EndLine: end})
	}
	return ranges
}

// locateRange finds the 1-indexed line span of needle's first occurrence
// inside content.
func locateRange(content []byte, needle string) (hasher.Range, bool) {
	idx := strings.Index(string(content), needle)
	if idx < 0 {
		return hasher.Range{}, false
	}
	startLine := strings.Count(string(content[:idx]), "\n") + 1
	endLine := startLine + strings.Count(needle, "\n")
	return hasher.Range{StartLine: startLine, EndLine: endLine}, true
}

func relativize(workdir, f string) string {
	path := f
	if filepath.IsAbs(f) {
		if rel, err := filepath.Rel(workdir, f); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// append writes record as one JSON line to the workdir's ledger file, under
// an advisory file lock (spec §5(c)).
func (w *Writer) append(workdir string, record govtypes.TraceRecord) error {
	dir := filepath.Join(workdir, ".orchestration")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	path := filepath.Join(workdir, ledgerRelPath)
	lockPath := path + ".lock"

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling trace record: %w", err)
	}

	return filelock.WithLock(lockPath, func() error {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // fixed ledger path under workdir
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer f.Close() //nolint:errcheck // best-effort close after write

		bw := bufio.NewWriter(f)
		if _, err := bw.WriteString(string(line)); err != nil {
			return fmt.Errorf("writing ledger record: %w", err)
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("writing ledger newline: %w", err)
		}
		return bw.Flush()
	})
}
