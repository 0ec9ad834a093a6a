// Package classifier implements the Command Classifier (spec §4.2): a
// pure, side-effect-free, synchronous analyzer that turns an opaque tool
// name and payload into a Classification (risk, mutation class, affected
// files, signals).
package classifier

import (
	"strings"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

var toolNameAliases = map[string]string{
	"write_file": "write_to_file",
	"exec_bash":  "execute_command",
}

var safeTools = map[string]bool{
	"read_file":           true,
	"stat":                true,
	"list":                true,
	"list_files":          true,
	"read_command_output": true,
}

var destructiveTools = map[string]bool{
	"write_to_file":      true,
	"delete":             true,
	"execute_command":    true,
	"apply_diff":         true,
	"apply_patch":        true,
	"edit":               true,
	"search_and_replace": true,
	"search_replace":     true,
	"edit_file":          true,
}

// evolutionPhrases are case-insensitively matched against added diff text
// to flag intent-evolution language (spec §4.2).
var evolutionPhrases = []string{
	"new feature", "add endpoint", "introduce", "support ",
	"migration", "breaking", "deprecate",
}

// Normalize applies spec §4.2's normalization table.
func Normalize(toolName string) string {
	if alias, ok := toolNameAliases[toolName]; ok {
		return alias
	}
	return toolName
}

// Classify is the pure entry point: (tool name, payload) -> Classification.
func Classify(toolName string, payload govtypes.Payload) govtypes.Classification {
	normalized := Normalize(toolName)
	risk := classifyRisk(normalized)

	affected := extractAffectedFiles(normalized, payload)

	c := govtypes.Classification{
		NormalizedToolName: normalized,
		Risk:               risk,
		MutationClass:      govtypes.MutationUnknown,
		MutationConfidence: govtypes.ConfidenceLow,
		AffectedFiles:      affected,
		DiffPreview:        diffPreview(payload),
	}

	if risk == govtypes.RiskDestructive {
		class, confidence, signals := classifyMutation(normalized, payload)
		c.MutationClass = class
		c.MutationConfidence = confidence
		c.Signals = signals
	}

	return c
}

// classifyRisk applies spec §4.2's allow-list/deny-list plus prefix
// fallback rules.
func classifyRisk(normalized string) govtypes.Risk {
	if safeTools[normalized] {
		return govtypes.RiskSafe
	}
	if destructiveTools[normalized] {
		return govtypes.RiskDestructive
	}
	switch {
	case strings.HasPrefix(normalized, "read_"), strings.HasPrefix(normalized, "list"):
		return govtypes.RiskSafe
	case strings.HasPrefix(normalized, "write"), strings.HasPrefix(normalized, "delete"):
		return govtypes.RiskDestructive
	default:
		return govtypes.RiskSafe
	}
}

// extractAffectedFiles collects payload.path/file_path and, for
// apply_patch, patch-text markers, de-duplicating preserving first-seen
// order (spec §4.2).
func extractAffectedFiles(normalized string, payload govtypes.Payload) []string {
	seen := map[string]bool{}
	var out []string

	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(payload.String("path"))
	add(payload.String("file_path"))

	if normalized == "apply_patch" {
		for _, marker := range []string{"*** Add File: ", "*** Update File: ", "*** Delete File: "} {
			for _, line := range strings.Split(patchText(payload), "\n") {
				if strings.HasPrefix(line, marker) {
					add(strings.TrimPrefix(line, marker))
				}
			}
		}
	}

	return out
}

// patchText returns whichever of "patch"/"diff" the payload carries.
func patchText(payload govtypes.Payload) string {
	if s := payload.String("patch"); s != "" {
		return s
	}
	return payload.String("diff")
}

// diffPreview returns the first 20 lines of the diff/patch text, if
// present (spec §4.2).
func diffPreview(payload govtypes.Payload) string {
	text := patchText(payload)
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}
	return strings.Join(lines, "\n")
}
