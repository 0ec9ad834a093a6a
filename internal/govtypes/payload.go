// Package govtypes holds the shared data model for the governance pipeline:
// intents, sessions, invocations, classifications, content hashes, and trace
// records (spec §3).
package govtypes

import "encoding/json"

// Payload is the opaque structured value a tool invocation carries. It is
// deliberately not a closed schema: the classifier, scope gate, and ledger
// writer must tolerate unknown keys and absent optional fields.
type Payload map[string]any

// NewPayload builds a Payload from raw JSON bytes. Invalid JSON yields an
// empty payload rather than an error, since callers treat missing data as
// absence, not failure (spec §7: "filesystem/parse errors while gathering
// evidence are treated as absence").
func NewPayload(raw []byte) Payload {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Payload{}
	}
	return Payload(m)
}

// String returns the string value at key as stored (not trimmed), or "" if
// absent or not a string.
func (p Payload) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// Bool returns the boolean value at key, or false if absent or not a bool.
func (p Payload) Bool(key string) bool {
	v, ok := p[key].(bool)
	return ok && v
}

// Object returns the nested object at key as a Payload, or nil if absent.
func (p Payload) Object(key string) Payload {
	v, ok := p[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		return Payload(t)
	case Payload:
		return t
	default:
		return nil
	}
}

// StringSlice returns the value at key as a slice of strings. Accepts a
// native JSON array, a single string (treated as CSV), or nothing.
func (p Payload) StringSlice(key string) []string {
	v, ok := p[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitCSV(t)
	default:
		return nil
	}
}

// Has reports whether key is present in the payload at all.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Raw returns the unmodified underlying value at key.
func (p Payload) Raw(key string) any {
	return p[key]
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			seg := trimSpace(s[start:i])
			if seg != "" {
				out = append(out, seg)
			}
			start = i + 1
		}
	}
	return out
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
