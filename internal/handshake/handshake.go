// Package handshake implements intent selection (spec §4's "Handshake"
// component, §6's XML handshake payload) and the pre-hook that denies any
// mutating tool call until a session has bound an active intent.
//
// Parsing the intent file and acting on the selection are kept separate —
// Select loads and renders, Bind applies the result to a session — the
// same split the teacher uses for its own hook input handling
// (parseHookInputWithType vs. captureInitialStateFromInput), so each half
// is independently testable.
package handshake

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/Heban-7/governed-ai-native-ide/internal/classifier"
	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
	"github.com/Heban-7/governed-ai-native-ide/internal/intentfile"
)

// mutatingToolNames mirrors the Scope & Lock Gate's mutating set (spec
// §4.3: "same as DESTRUCTIVE minus execute_command and delete").
var mutatingToolNames = map[string]bool{
	"write_to_file":      true,
	"apply_diff":         true,
	"apply_patch":        true,
	"edit":               true,
	"search_and_replace": true,
	"search_replace":     true,
	"edit_file":          true,
}

// Gate is the handshake-enforcement pre-hook: it denies any mutating call
// from a session with no active intent bound (spec §3's session invariant,
// scenario 5 in spec §8).
type Gate struct{}

// New builds a Gate.
func New() *Gate {
	return &Gate{}
}

// PreHook adapts Check to the hooks.PreHookFunc signature.
func (g *Gate) PreHook() hooks.PreHookFunc {
	return func(_ context.Context, hc *hooks.Context) (hooks.PreDecision, error) {
		return g.Check(hc)
	}
}

// Check implements the handshake gate.
func (g *Gate) Check(hc *hooks.Context) (hooks.PreDecision, error) {
	normalized := classifier.Normalize(hc.ToolName)
	if !mutatingToolNames[normalized] {
		return hooks.PreDecision{Allow: true}, nil
	}
	if hc.Session != nil && hc.Session.HasActiveIntent() {
		return hooks.PreDecision{Allow: true}, nil
	}

	toolErr := govtypes.NewToolError(govtypes.CodeNoActiveIntent,
		"no active intent is bound to this session; call the intent-selection tool first", nil)
	hc.PushResult(toolErr.JSON())
	return hooks.PreDecision{Allow: false, Reason: toolErr.JSON(), AlreadyReported: true}, nil
}

// Select loads workdir's active intents and returns the one matching
// intentID along with its rendered <intent_context> handshake payload
// (spec §6).
func Select(workdir, intentID string) (govtypes.Intent, string, error) {
	intents, err := intentfile.Load(workdir)
	if err != nil {
		return govtypes.Intent{}, "", fmt.Errorf("loading active intents: %w", err)
	}
	intent, ok := intents[intentID]
	if !ok {
		return govtypes.Intent{}, "", fmt.Errorf("intent %q not found among active intents", intentID)
	}
	return intent, RenderIntentContext(intent), nil
}

// Bind sets sess's active intent to intentID. It does not validate that
// the intent exists — callers should pair it with Select.
func Bind(sess *govtypes.Session, intentID string) {
	sess.ActiveIntentID = intentID
}

// RenderIntentContext renders the XML-shaped handshake payload spec §6
// describes: <intent_context><id>…</id><owned_scope><glob>…</glob>…
// </owned_scope><constraints><item>…</item>…</constraints>
// <acceptance_criteria><item>…</item>…</acceptance_criteria></intent_context>.
func RenderIntentContext(intent govtypes.Intent) string {
	var b strings.Builder
	b.WriteString("<intent_context>")
	b.WriteString("<id>")
	writeEscaped(&b, intent.ID)
	b.WriteString("</id>")

	b.WriteString("<owned_scope>")
	for _, glob := range intent.OwnedScope {
		b.WriteString("<glob>")
		writeEscaped(&b, glob)
		b.WriteString("</glob>")
	}
	b.WriteString("</owned_scope>")

	b.WriteString("<constraints>")
	for _, c := range intent.Constraints {
		b.WriteString("<item>")
		writeEscaped(&b, c)
		b.WriteString("</item>")
	}
	b.WriteString("</constraints>")

	b.WriteString("<acceptance_criteria>")
	for _, c := range intent.AcceptanceCriteria {
		b.WriteString("<item>")
		writeEscaped(&b, c)
		b.WriteString("</item>")
	}
	b.WriteString("</acceptance_criteria>")

	b.WriteString("</intent_context>")
	return b.String()
}

func writeEscaped(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
