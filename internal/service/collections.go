package service

import (
	"strings"

	"github.com/lib/pq"
)

// uniqueStrings trims values and drops blanks and repeats, preserving first occurrence order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// stringArray always yields a non-nil array so NOT NULL TEXT[] columns receive '{}'.
func stringArray(values []string) pq.StringArray {
	return pq.StringArray(uniqueStrings(values))
}

func copyStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func derefOr[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
