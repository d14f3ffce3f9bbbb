// Package modelkey holds the single normalization rule used to compare
// catalog keys, protected-key aliases, dynamic model names and labels.
package modelkey

import "strings"

// ThinkingMarker marks a reasoning variant of a base model identity.
const ThinkingMarker = "-thinking"

// Normalize returns the comparison form of a model key or label.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// IsThinkingVariant reports whether key names a thinking variant.
func IsThinkingVariant(key string) bool {
	return strings.Contains(Normalize(key), ThinkingMarker)
}

// Equal compares two keys case-insensitively.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
