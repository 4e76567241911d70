package tts

import (
	"errors"
	"fmt"
)

// ErrProviderNotFound is returned by Resolve for names that were never
// registered.
var ErrProviderNotFound = errors.New("unknown provider")

// UnavailableError reports a registered provider that cannot serve
// requests. Reason names the missing dependency or credential.
type UnavailableError struct {
	Provider string
	Reason   string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %s", e.Provider, e.Reason)
}

// SynthesisError wraps an adapter-level failure so callers never need
// per-provider error handling.
type SynthesisError struct {
	Provider string
	Cause    error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s synthesis failed: %v", e.Provider, e.Cause)
}

func (e *SynthesisError) Unwrap() error { return e.Cause }
