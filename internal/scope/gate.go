// Package scope implements the Scope & Lock Gate pre-hook (spec §4.3):
// glob-based path authorization against a session's active intent, plus
// optimistic concurrency control via content-addressed hashes.
package scope

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Heban-7/governed-ai-native-ide/internal/approval"
	"github.com/Heban-7/governed-ai-native-ide/internal/classifier"
	"github.com/Heban-7/governed-ai-native-ide/internal/diffutil"
	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hasher"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
	"github.com/Heban-7/governed-ai-native-ide/internal/intentfile"
	"github.com/Heban-7/governed-ai-native-ide/internal/pathmatch"
)

// mutatingToolNames is DESTRUCTIVE minus execute_command and delete (spec
// §4.3's preconditions).
var mutatingToolNames = map[string]bool{
	"write_to_file":      true,
	"apply_diff":         true,
	"apply_patch":        true,
	"edit":               true,
	"search_and_replace": true,
	"search_replace":     true,
	"edit_file":          true,
}

// Gate is the Scope & Lock Gate pre-hook.
type Gate struct {
	Hasher     *hasher.Hasher
	Expansions govtypes.ExpansionSet
}

// New builds a Gate with its own hasher and expansion set.
func New() *Gate {
	return &Gate{Hasher: hasher.New(), Expansions: NewExpansionSet()}
}

// PreHook adapts Check to the hooks.PreHookFunc signature.
func (g *Gate) PreHook() hooks.PreHookFunc {
	return func(ctx context.Context, hc *hooks.Context) (hooks.PreDecision, error) {
		return g.Check(ctx, hc)
	}
}

// Check implements spec §4.3 end to end.
func (g *Gate) Check(ctx context.Context, hc *hooks.Context) (hooks.PreDecision, error) {
	class := classifier.Classify(hc.ToolName, hc.Payload)
	if !mutatingToolNames[class.NormalizedToolName] {
		return hooks.PreDecision{Allow: true}, nil
	}

	sess := hc.Session
	if sess == nil || sess.WorkingDirectory == "" || !sess.HasActiveIntent() || len(class.AffectedFiles) == 0 {
		return hooks.PreDecision{Allow: true}, nil
	}

	intents, err := intentfile.Load(sess.WorkingDirectory)
	if err != nil {
		// Missing/unparseable intent file is treated as "no declared
		// scope" (spec §7: filesystem/parse errors are treated as
		// absence), which denies below via an empty owned_scope.
		intents = map[string]govtypes.Intent{}
	}
	intent := intents[sess.ActiveIntentID]

	effectiveScope := append(append([]string(nil), intent.OwnedScope...), g.Expansions.Globs(sess.ActiveIntentID)...)

	relFiles := make(map[string]string, len(class.AffectedFiles))
	var unmatched []string
	for _, f := range class.AffectedFiles {
		rel := relativize(sess.WorkingDirectory, f)
		relFiles[f] = rel
		if !pathmatch.MatchAny(effectiveScope, rel) {
			unmatched = append(unmatched, f)
		}
	}

	if len(unmatched) > 0 {
		decision, allowed := g.handleScopeViolation(ctx, hc, intent, effectiveScope, unmatched, relFiles)
		if !allowed {
			return decision, nil
		}
	}

	return g.checkOptimisticLock(hc, class)
}

// handleScopeViolation implements the request-scope-expansion / approval
// flow, or emits SCOPE_VIOLATION (spec §4.3).
func (g *Gate) handleScopeViolation(ctx context.Context, hc *hooks.Context, intent govtypes.Intent, effectiveScope, unmatched []string, relFiles map[string]string) (hooks.PreDecision, bool) {
	additionalGlobs := parseScopeExpansionRequest(hc.Payload)

	if len(additionalGlobs) > 0 {
		summary := fmt.Sprintf(
			"Intent %q requests scope expansion to cover %d additional glob(s): %s (currently out of scope: %s)",
			intent.ID, len(additionalGlobs), strings.Join(additionalGlobs, ", "), strings.Join(unmatched, ", "),
		)
		capability := hc.AskApproval
		if capability == nil {
			capability = approval.AutoReject
		}
		decision, err := capability.Ask(ctx, approval.Request{
			Summary: summary,
			Meta: map[string]any{
				"intent_id":        intent.ID,
				"additional_globs": additionalGlobs,
				"unmatched_files":  unmatched,
			},
		})
		if err == nil && decision == approval.Approve {
			g.Expansions.Approve(intent.ID, additionalGlobs)
			return hooks.PreDecision{Allow: true}, true
		}
	}

	firstUnmatched := unmatched[0]
	toolErr := govtypes.NewToolError(govtypes.CodeScopeViolation,
		fmt.Sprintf("file %q is outside intent %q's owned scope", relFiles[firstUnmatched], intent.ID),
		map[string]any{
			"owned_scope": effectiveScope,
			"file_path":   relFiles[firstUnmatched],
			"request_scope_expansion": map[string]any{
				"additional_globs": []string{},
			},
		})
	hc.PushResult(toolErr.JSON())
	return hooks.PreDecision{Allow: false, Reason: toolErr.JSON(), AlreadyReported: true}, false
}

// checkOptimisticLock implements spec §4.3's lock check.
func (g *Gate) checkOptimisticLock(hc *hooks.Context, class govtypes.Classification) (hooks.PreDecision, error) {
	observedHash := hc.Payload.String("observed_content_hash")
	if observedHash == "" {
		return hooks.PreDecision{Allow: true}, nil
	}

	proposed := hc.Payload.String("content")

	for _, f := range class.AffectedFiles {
		absPath := f
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(hc.Session.WorkingDirectory, f)
		}
		content, err := os.ReadFile(absPath) //nolint:gosec // path derived from session workdir + classifier-extracted file
		if err != nil {
			continue // file does not exist yet: nothing to compare against.
		}

		current, hashErr := g.Hasher.Hash(f, content, nil, "")
		if hashErr != nil {
			continue
		}
		if current.Digest == observedHash {
			continue
		}

		preview := diffutil.Unified(string(content), proposed, 2, 80)
		toolErr := govtypes.NewToolError(govtypes.CodeStaleFile,
			fmt.Sprintf("file %q has changed since it was observed", f),
			map[string]any{
				"observed_content_hash": observedHash,
				"current_content_hash":  current.Digest,
				"current_diff":          preview,
			})
		hc.PushResult(toolErr.JSON())
		return hooks.PreDecision{Allow: false, Reason: toolErr.JSON(), AlreadyReported: true}, nil
	}

	return hooks.PreDecision{Allow: true}, nil
}

// relativize converts an affected-file path (which may already be
// relative, or absolute) into a POSIX-normalized path relative to workdir.
func relativize(workdir, f string) string {
	path := f
	if filepath.IsAbs(f) {
		if rel, err := filepath.Rel(workdir, f); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// parseScopeExpansionRequest extracts additional_globs from either an
// inline request_scope_expansion object or a JSON-encoded string (spec
// §4.3).
func parseScopeExpansionRequest(payload govtypes.Payload) []string {
	if obj := payload.Object("request_scope_expansion"); obj != nil {
		return obj.StringSlice("additional_globs")
	}
	if s := payload.String("request_scope_expansion"); s != "" {
		var parsed struct {
			AdditionalGlobs []string `json:"additional_globs"`
		}
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			return parsed.AdditionalGlobs
		}
	}
	return nil
}
