// Package strings cleans up free-form string lists such as checkbox values.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and drops blanks and repeats, keeping the
// first occurrence order. A nil or empty input is returned as is.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
