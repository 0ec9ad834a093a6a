package hasher

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// hashGo implements spec §4.4 for Go source: parse with go/parser, locate
// the smallest enclosing subtree for rng (or the whole file if rng is
// nil), and render it with go/printer, comments stripped. ok is false only
// when the content fails to parse at all, in which case the caller falls
// through to the normalized-string strategy.
func hashGo(content []byte, rng *Range, insertedContent string) (govtypes.ContentHash, bool) {
	fset := token.NewFileSet()
	// Mode 0 (no parser.ParseComments) already excludes comments from the
	// resulting AST, which satisfies "canonical rendering with comments
	// stripped" without a second pass.
	f, err := parser.ParseFile(fset, "", content, 0)
	if err != nil {
		return govtypes.ContentHash{}, false
	}

	if rng == nil {
		return renderNode(f), true
	}

	tf := fset.File(f.Pos())
	startOff, endOff, ok := lineRangeToOffsets(tf, rng)
	if !ok {
		return hashNormalizedString(content, insertedContent), true
	}

	node := smallestEnclosing(f, int(tf.Pos(startOff)), int(tf.Pos(endOff)))
	if node == nil {
		if normalizedContains(string(content), insertedContent) {
			canonical := normalizeWhitespace(insertedContent)
			return govtypes.ContentHash{
				Digest:           digest(canonical),
				Strategy:         govtypes.StrategyNormalizedString,
				CanonicalContent: canonical,
			}, true
		}
		return hashNormalizedString(content, insertedContent), true
	}

	return renderNode(node), true
}

// lineRangeToOffsets converts a 1-indexed inclusive line range into byte
// offsets within the parsed file. ok is false if the range falls outside
// the file's line count.
func lineRangeToOffsets(tf *token.File, rng *Range) (start, end int, ok bool) {
	lineCount := tf.LineCount()
	if rng.StartLine < 1 || rng.StartLine > lineCount {
		return 0, 0, false
	}
	endLine := rng.EndLine
	if endLine < rng.StartLine {
		endLine = rng.StartLine
	}

	start = tf.Offset(tf.LineStart(rng.StartLine))
	if endLine >= lineCount {
		end = tf.Size()
	} else {
		end = tf.Offset(tf.LineStart(endLine+1)) - 1
		if end < start {
			end = tf.Size()
		}
	}
	return start, end, true
}

// smallestEnclosing walks f and returns the smallest-span node whose
// position range fully encloses [start,end] (file positions, i.e. byte
// offsets converted with token.File.Pos), or nil if even the file itself
// does not (e.g. the requested range starts before the package clause).
func smallestEnclosing(f *ast.File, start, end int) ast.Node {
	var best ast.Node
	bestSpan := -1

	ast.Inspect(f, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		nStart := int(n.Pos())
		nEnd := int(n.End())
		if nStart <= start && end <= nEnd {
			span := nEnd - nStart
			if bestSpan == -1 || span < bestSpan {
				best = n
				bestSpan = span
			}
			return true
		}
		return false
	})
	return best
}

// renderNode emits the canonical textual rendering of node (comments
// already excluded from the AST) and applies the whitespace normalization
// pass (spec §4.4 step 3). The node is printed against an empty FileSet,
// so the printer has no source line information and the rendering does
// not depend on the original blank lines or line breaks.
func renderNode(node ast.Node) govtypes.ContentHash {
	var buf bytes.Buffer
	cfg := printer.Config{Mode: printer.RawFormat}
	if err := cfg.Fprint(&buf, token.NewFileSet(), node); err != nil {
		// Unrenderable node (should not happen for a parsed subtree):
		// fall back to an empty canonical body rather than panicking.
		buf.Reset()
	}
	canonical := normalizeWhitespace(buf.String())
	return govtypes.ContentHash{
		Digest:           digest(canonical),
		Strategy:         govtypes.StrategyASTCanonical,
		CanonicalContent: canonical,
	}
}
