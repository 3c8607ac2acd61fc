package gateway

import (
	"regexp"
	"strings"
)

// Models often wrap JSON in markdown fences or surrounding prose. The match
// order is fenced block, bare object span, bare array-of-objects span.
var (
	fencedJSONPattern = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	objectSpanPattern = regexp.MustCompile(`\{[\s\S]*\}`)
	arraySpanPattern  = regexp.MustCompile(`\[\s*\{[\s\S]*\}\s*\]`)
)

func extractJSON(text string) (string, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := objectSpanPattern.FindString(text); m != "" {
		return m, true
	}
	if m := arraySpanPattern.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
