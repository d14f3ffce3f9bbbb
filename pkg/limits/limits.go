// Package limits resolves a model's maximum output tokens.
//
// Resolution order: the value reported by an account, then the built-in
// default table, then FallbackOutputTokens.
package limits

import "github.com/qisthidev/Antigravity-Manager/pkg/modelkey"

// FallbackOutputTokens is used for models with no reported or default limit.
const FallbackOutputTokens = 131072

var defaultOutputLimits = map[string]int{
	// Gemini 3
	"gemini-3-flash":     65536,
	"gemini-3-pro-image": 65535,
	"gemini-3-pro-high":  65535,
	"gemini-3-pro-low":   65535,

	// Gemini 3.1 Pro
	"gemini-3.1-pro-preview": 65535,
	"gemini-3.1-pro-high":    65535,
	"gemini-3.1-pro-low":     65535,

	// Gemini 2.5
	"gemini-2.5-flash":          65535,
	"gemini-2.5-flash-thinking": 65535,
	"gemini-2.5-flash-lite":     65535,
	"gemini-2.5-pro":            65535,

	// Claude
	"claude-sonnet-4-6":        64000,
	"claude-opus-4-6-thinking": 64000,

	// GPT-OSS
	"gpt-oss-120b-medium": 32768,
}

// Default returns the built-in limit for model, if any.
func Default(model string) (int, bool) {
	v, ok := defaultOutputLimits[modelkey.Normalize(model)]
	return v, ok
}

// OutputTokens resolves the output limit. A nil or non-positive dynamic
// value is treated as absent.
func OutputTokens(model string, dynamic *int) int {
	if dynamic != nil && *dynamic > 0 {
		return *dynamic
	}
	if v, ok := Default(model); ok {
		return v
	}
	return FallbackOutputTokens
}
