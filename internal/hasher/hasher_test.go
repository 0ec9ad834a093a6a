package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

func TestHash_GoFile_CommentAndWhitespaceInvariant(t *testing.T) {
	t.Parallel()
	h := New()

	a := []byte("package p\n\nfunc F() {\n\treturn\n}\n")
	b := []byte("package p\n\n// F does a thing.\nfunc F() {\n\n\treturn   \n\n}\n")

	chA, err := h.Hash("a.go", a, nil, "")
	require.NoError(t, err)
	chB, err := h.Hash("b.go", b, nil, "")
	require.NoError(t, err)

	assert.Equal(t, chA.Digest, chB.Digest, "comment-only and whitespace-only changes must not change the hash")
	assert.Equal(t, govtypes.StrategyASTCanonical, chA.Strategy)
}

func TestHash_Determinism_SameCanonicalContentSameDigest(t *testing.T) {
	t.Parallel()
	h := New()
	content := []byte("package p\n\nfunc F() int { return 1 }\n")

	ch1, err := h.Hash("f.go", content, nil, "")
	require.NoError(t, err)
	ch2, err := h.Hash("f.go", content, nil, "")
	require.NoError(t, err)

	assert.Equal(t, ch1.Digest, ch2.Digest)
	assert.True(t, len(ch1.Digest) > len("sha256:"))
}

func TestHash_DigestHasSha256Prefix(t *testing.T) {
	t.Parallel()
	h := New()
	ch, err := h.Hash("f.go", []byte("package p\n"), nil, "")
	require.NoError(t, err)
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, ch.Digest)
}

func TestHash_UnparseableGoFile_FallsBackToNormalizedString(t *testing.T) {
	t.Parallel()
	h := New()
	ch, err := h.Hash("broken.go", []byte("this is not { valid go"), nil, "")
	require.NoError(t, err)
	assert.Equal(t, govtypes.StrategyNormalizedString, ch.Strategy)
}

func TestHash_NonGoFile_UsesNormalizedStringStrategy(t *testing.T) {
	t.Parallel()
	h := New()
	ch, err := h.Hash("notes.txt", []byte("hello world\n"), nil, "")
	require.NoError(t, err)
	assert.Equal(t, govtypes.StrategyNormalizedString, ch.Strategy)
}

func TestHash_NormalizedString_TrailingWhitespaceAndCRLFIgnored(t *testing.T) {
	t.Parallel()
	h := New()
	a, err := h.Hash("a.txt", []byte("line one   \r\nline two\r\n"), nil, "")
	require.NoError(t, err)
	b, err := h.Hash("b.txt", []byte("line one\nline two"), nil, "")
	require.NoError(t, err)
	assert.Equal(t, a.Digest, b.Digest)
}

func TestHash_EmptyContent_StableDigest(t *testing.T) {
	t.Parallel()
	h := New()
	ch1, err := h.Hash("empty.txt", []byte(""), nil, "")
	require.NoError(t, err)
	ch2, err := h.Hash("empty.txt", []byte(""), nil, "")
	require.NoError(t, err)
	assert.Equal(t, ch1.Digest, ch2.Digest)
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, ch1.Digest)
}

func TestHash_RangeScopedToEnclosingFunction(t *testing.T) {
	t.Parallel()
	h := New()
	content := []byte("package p\n\nfunc A() {\n\treturn\n}\n\nfunc B() {\n\treturn\n}\n")

	ch, err := h.Hash("f.go", content, &Range{StartLine: 3, EndLine: 5}, "")
	require.NoError(t, err)
	assert.Equal(t, govtypes.StrategyASTCanonical, ch.Strategy)
	assert.Contains(t, ch.CanonicalContent, "func A")
	assert.NotContains(t, ch.CanonicalContent, "func B")
}

func TestHash_RangeOutsideAnyDecl_FallsBackToNormalizedString(t *testing.T) {
	t.Parallel()
	h := New()
	// A range covering only the blank line before "package" encloses no
	// AST node at all (not even the File itself), forcing the fallback.
	content := []byte("\npackage p\n")
	ch, err := h.Hash("f.go", content, &Range{StartLine: 1, EndLine: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, govtypes.StrategyNormalizedString, ch.Strategy)
}

func TestHash_RangeOutsideAnyDecl_InsertedContentFoundVerbatim(t *testing.T) {
	t.Parallel()
	h := New()
	content := []byte("\npackage p\n")
	ch, err := h.Hash("f.go", content, &Range{StartLine: 1, EndLine: 1}, "package p")
	require.NoError(t, err)
	assert.Equal(t, govtypes.StrategyNormalizedString, ch.Strategy)
	assert.Equal(t, "package p", ch.CanonicalContent)
}

func TestNormalizeWhitespace_TrimsAndConvertsCRLF(t *testing.T) {
	t.Parallel()
	got := normalizeWhitespace("  a  \r\n  b\t\n\n")
	assert.Equal(t, "a\n  b", got)
}
