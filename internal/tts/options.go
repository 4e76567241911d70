package tts

import "github.com/samber/lo"

// Options carries provider-specific synthesis parameters. Keys a provider
// does not recognize are simply ignored by it.
type Options map[string]any

// MergeOptions overlays request-supplied values on provider defaults.
// Request values win; the merge is shallow and keys unknown to the
// provider pass through untouched.
func MergeOptions(defaults, overrides Options) Options {
	return lo.Assign(defaults, overrides)
}

// String returns the option as a non-empty string, or fallback.
func (o Options) String(key, fallback string) string {
	if v, ok := o[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Float returns the option as a float64, or fallback. JSON numbers decode
// as float64, but int is accepted for options set programmatically.
func (o Options) Float(key string, fallback float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}
