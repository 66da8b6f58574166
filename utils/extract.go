package utils

import "strings"

// ExtractJSONObject returns the text between the first '{' and the last '}'
// of s, inclusive. ok is false when s holds no such span.
//
// This is a best-effort heuristic for model replies that wrap JSON in prose;
// it does not check that the span is valid JSON.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
