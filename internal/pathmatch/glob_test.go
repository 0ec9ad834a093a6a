package pathmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_DoubleStarMatchesZeroSegments(t *testing.T) {
	t.Parallel()
	assert.True(t, Match("src/**/*.go", "src/a.go"), "** must match zero intervening segments")
}

func TestMatch_DoubleStarMatchesMultipleSegments(t *testing.T) {
	t.Parallel()
	assert.True(t, Match("src/**/*.go", "src/sub/dir/a.go"))
}

func TestMatch_DoubleStarAlone_MatchesEverythingUnderPrefix(t *testing.T) {
	t.Parallel()
	assert.True(t, Match("src/**", "src/a.go"))
	assert.True(t, Match("src/**", "src/sub/dir/a.go"))
	assert.False(t, Match("src/**", "other/a.go"))
}

func TestMatch_LoneStarDoesNotCrossSlash(t *testing.T) {
	t.Parallel()
	assert.True(t, Match("*.go", "a.go"))
	assert.False(t, Match("*.go", "dir/a.go"))
}

func TestMatch_QuestionMarkMatchesExactlyOneNonSlashChar(t *testing.T) {
	t.Parallel()
	assert.True(t, Match("a?.go", "ab.go"))
	assert.False(t, Match("a?.go", "a.go"))
	assert.False(t, Match("a?.go", "a/.go"))
}

func TestMatch_RegexMetacharactersEscapedLiterally(t *testing.T) {
	t.Parallel()
	assert.True(t, Match("file(1).txt", "file(1).txt"))
	assert.False(t, Match("file(1).txt", "fileX1X.txt"))
	assert.True(t, Match("a.b+c", "a.b+c"))
	assert.False(t, Match("a.b+c", "aXb+c"), "'.' must be literal, not regex any-char")
}

func TestMatch_AnchoredToFullPath(t *testing.T) {
	t.Parallel()
	assert.False(t, Match("a.go", "dir/a.go"))
	assert.False(t, Match("a.go", "a.go.bak"))
}

func TestMatchAny_TrueIfAnyPatternMatches(t *testing.T) {
	t.Parallel()
	assert.True(t, MatchAny([]string{"docs/**", "src/**"}, "src/a.go"))
}

func TestMatchAny_FalseWhenNoneMatch(t *testing.T) {
	t.Parallel()
	assert.False(t, MatchAny([]string{"docs/**", "test/**"}, "src/a.go"))
}

func TestMatchAny_EmptyPatternList_NeverMatches(t *testing.T) {
	t.Parallel()
	assert.False(t, MatchAny(nil, "src/a.go"))
}

func TestMatch_CompiledPatternCache_RepeatedCallsConsistent(t *testing.T) {
	t.Parallel()
	t.Cleanup(Clear)

	assert.True(t, Match("src/**/*.go", "src/a.go"))
	// Second call hits the compiled-pattern cache; result must be identical.
	assert.True(t, Match("src/**/*.go", "src/a.go"))
	assert.False(t, Match("src/**/*.go", "src/a.txt"))
}

func TestClear_ForcesRecompileWithoutChangingBehavior(t *testing.T) {
	t.Parallel()
	t.Cleanup(Clear)

	assert.True(t, Match("src/*.go", "src/a.go"))
	Clear()
	assert.True(t, Match("src/*.go", "src/a.go"))
}
