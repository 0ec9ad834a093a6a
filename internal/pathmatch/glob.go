// Package pathmatch implements the glob semantics the Scope & Lock Gate
// needs (spec §4.3): POSIX separators, "**" matching zero or more path
// segments (including across "/"), "*" matching any non-"/" run, and every
// other regex metacharacter escaped literally. Patterns are anchored to the
// full relative path.
//
// No third-party glob library is used here: the corpus has no such
// dependency to ground one on (see DESIGN.md), and the spec pins an exact
// escaping rule a generic library would not guarantee verbatim.
package pathmatch

import (
	"regexp"
	"strings"
	"sync"
)

var (
	cacheMu sync.RWMutex
	cache   = map[string]*regexp.Regexp{}
)

// Match reports whether relPath (a POSIX-normalized, repo-relative path)
// matches glob pattern.
func Match(pattern, relPath string) bool {
	re := compile(pattern)
	return re.MatchString(relPath)
}

// MatchAny reports whether relPath matches any of the given patterns.
func MatchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if Match(p, relPath) {
			return true
		}
	}
	return false
}

func compile(pattern string) *regexp.Regexp {
	cacheMu.RLock()
	re, ok := cache[pattern]
	cacheMu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile("^" + translate(pattern) + "$")

	cacheMu.Lock()
	cache[pattern] = re
	cacheMu.Unlock()
	return re
}

// translate converts a glob pattern into the body of an anchored regular
// expression. "**" (optionally followed by "/") matches zero or more path
// segments; a lone "*" matches any run of non-"/" characters; every other
// regex metacharacter is escaped so it is matched literally.
func translate(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				// "**" or "**/" — match zero or more segments.
				j := i + 2
				if j < len(runes) && runes[j] == '/' {
					j++
					b.WriteString(`(?:.*/)?`)
				} else {
					b.WriteString(`.*`)
				}
				i = j - 1
				continue
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}
	return b.String()
}

// Clear empties the compiled-pattern cache. Exposed for test isolation.
func Clear() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[string]*regexp.Regexp{}
}
