package classifier

import (
	"regexp"
	"strings"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// structuralLineRe matches lines that introduce a structural declaration,
// used as a conservative proxy for "this line changes program shape"
// (spec §4.2).
var structuralLineRe = regexp.MustCompile(
	`(?i)\b(class|interface|type|enum|function|def|public|private|protected|module|namespace|export\s+\w+)\b`,
)

// classifyMutation implements spec §4.2's mutation-class decision table.
// Only called when risk is already DESTRUCTIVE.
func classifyMutation(normalized string, payload govtypes.Payload) (govtypes.MutationClass, govtypes.MutationConfidence, []string) {
	diff := patchText(payload)
	if diff == "" {
		if normalized == "write_to_file" {
			return govtypes.MutationIntentEvolution, govtypes.ConfidenceLow, []string{"full_write_without_diff"}
		}
		return govtypes.MutationUnknown, govtypes.ConfidenceLow, nil
	}

	added, removed := splitDiffLines(diff)
	addedText := strings.Join(added, "\n")
	removedText := strings.Join(removed, "\n")

	addedStructural := countStructuralLines(added)
	removedStructural := countStructuralLines(removed)

	addRemoveBalanced := len(added) > 0 && len(removed) > 0 && absInt(len(added)-len(removed)) <= 10
	structuralBalanced := addedStructural > 0 && removedStructural > 0 &&
		absInt(addedStructural-removedStructural) <= maxInt(2, ceilDiv(4*maxInt(addedStructural, removedStructural), 10))

	evolutionLanguage := containsEvolutionLanguage(addedText)

	var signals []string
	if addRemoveBalanced {
		signals = append(signals, "balanced_diff_shape")
	}
	if structuralBalanced {
		signals = append(signals, "balanced_structural_lines")
	}
	if evolutionLanguage {
		signals = append(signals, "intent_evolution_language")
	}
	if addsNewFile(normalized, diff) {
		signals = append(signals, "adds_new_file")
	}
	if deletesFile(normalized, diff) {
		signals = append(signals, "deletes_file")
	}
	_ = removedText

	if addRemoveBalanced && structuralBalanced {
		confidence := govtypes.ConfidenceHigh
		if evolutionLanguage {
			confidence = govtypes.ConfidenceMedium
		}
		return govtypes.MutationASTRefactor, confidence, signals
	}

	confidence := govtypes.ConfidenceMedium
	if evolutionLanguage {
		confidence = govtypes.ConfidenceHigh
	}
	return govtypes.MutationIntentEvolution, confidence, signals
}

// splitDiffLines partitions unified-diff lines into added ("+..." excluding
// "+++") and removed ("-..." excluding "---") (spec §4.2).
func splitDiffLines(diff string) (added, removed []string) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"):
			continue
		case strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)
		}
	}
	return added, removed
}

func countStructuralLines(lines []string) int {
	n := 0
	for _, l := range lines {
		if structuralLineRe.MatchString(l) {
			n++
		}
	}
	return n
}

func containsEvolutionLanguage(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range evolutionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func addsNewFile(normalized, diff string) bool {
	if normalized == "apply_patch" && strings.Contains(diff, "*** Add File: ") {
		return true
	}
	return strings.Contains(diff, "--- /dev/null")
}

func deletesFile(normalized, diff string) bool {
	if normalized == "apply_patch" && strings.Contains(diff, "*** Delete File: ") {
		return true
	}
	return strings.Contains(diff, "+++ /dev/null")
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ceilDiv returns ceil(numerator/denominator) for the 0.4*max structural threshold
// (spec §4.2: "⌈0.4·max⌉").
func ceilDiv(numerator, denominator int) int {
	if numerator%denominator == 0 {
		return numerator / denominator
	}
	return numerator/denominator + 1
}
