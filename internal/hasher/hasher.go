// Package hasher implements the Content Hasher (spec §4.4): a syntax-aware
// canonical hash of a file region, falling back to a normalized-string hash
// when no structured parser applies or parsing fails.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// Range is a 1-indexed, inclusive line range within a file (spec §4.4).
type Range = govtypes.Range

// Hasher computes content hashes using the parser appropriate to a file's
// extension, per spec §4.4 and SPEC_FULL.md §4.4.
type Hasher struct{}

// New returns a ready-to-use Hasher. There is no configuration: the parser
// is chosen purely from the file's extension.
func New() *Hasher {
	return &Hasher{}
}

// Hash computes the content hash of content at path, optionally scoped to
// rng and hinted by insertedContent (spec §4.4 steps 1-4).
func (h *Hasher) Hash(path string, content []byte, rng *Range, insertedContent string) (govtypes.ContentHash, error) {
	if isGoFile(path) {
		if ch, ok := hashGo(content, rng, insertedContent); ok {
			return ch, nil
		}
		// Fall through to normalized-string on any parse/locate failure.
	}
	return hashNormalizedString(content, insertedContent), nil
}

func isGoFile(path string) bool {
	return strings.HasSuffix(path, ".go")
}

// hashNormalizedString implements spec §4.4 step 4: hash the
// whitespace-normalized inserted content if non-empty, else the whole file.
func hashNormalizedString(content []byte, insertedContent string) govtypes.ContentHash {
	var canonical string
	if strings.TrimSpace(insertedContent) != "" {
		canonical = normalizeWhitespace(insertedContent)
	} else {
		canonical = normalizeWhitespace(string(content))
	}
	return govtypes.ContentHash{
		Digest:           digest(canonical),
		Strategy:         govtypes.StrategyNormalizedString,
		CanonicalContent: canonical,
	}
}

// normalizeWhitespace trims trailing per-line whitespace, converts CRLF to
// LF, and trims the overall result (spec §4.4 step 3).
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// digest computes "sha256:<lowercase hex>" over the UTF-8 bytes of
// canonical content.
func digest(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// normalizedContains reports whether needle appears verbatim inside
// haystack once both are whitespace-normalized (spec §4.4 step 2).
func normalizedContains(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return false
	}
	return strings.Contains(normalizeWhitespace(haystack), normalizeWhitespace(needle))
}
