// Package auth enforces the per-provider bearer credential contract.
// Every provider endpoint carries its own secret; a key valid for one
// endpoint never authenticates another.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredential signals an absent or non-Bearer Authorization
	// header.
	ErrMissingCredential = errors.New("missing authorization header")

	// ErrInvalidCredential signals a presented token that does not match
	// the provider's configured key.
	ErrInvalidCredential = errors.New("invalid api key")
)

// NotConfiguredError reports a provider endpoint with no inbound key
// configured. Authentication fails closed rather than letting requests
// through an unguarded endpoint.
type NotConfiguredError struct {
	EnvVar string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("server configuration error: %s not configured", e.EnvVar)
}

type expectedKey struct {
	envVar string
	hash   [sha256.Size]byte
	set    bool
}

// Guard validates inbound bearer tokens against per-provider secrets.
// Keys are registered once at startup and only their hashes are held;
// every request is authenticated independently.
type Guard struct {
	keys map[string]expectedKey
}

func NewGuard() *Guard {
	return &Guard{keys: make(map[string]expectedKey)}
}

// Register sets the expected key for a provider endpoint. envVar names
// the variable the key is configured through, for fail-closed error
// messages. An empty value registers the endpoint as misconfigured.
func (g *Guard) Register(provider, envVar, value string) {
	k := expectedKey{envVar: envVar}
	if value != "" {
		k.hash = sha256.Sum256([]byte(value))
		k.set = true
	}
	g.keys[provider] = k
}

// Authenticate checks the Authorization header for one provider.
// It returns nil on success, ErrMissingCredential when no bearer token
// is present, ErrInvalidCredential on mismatch, and a NotConfiguredError
// when the endpoint has no key to check against.
func (g *Guard) Authenticate(provider, authorization string) error {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" {
		return ErrMissingCredential
	}

	expected, ok := g.keys[provider]
	if !ok {
		return &NotConfiguredError{EnvVar: "API_KEY_" + strings.ToUpper(provider)}
	}
	if !expected.set {
		return &NotConfiguredError{EnvVar: expected.envVar}
	}

	// Hashing both sides fixes the compared length, so the comparison
	// runs in constant time regardless of what was presented.
	presented := sha256.Sum256([]byte(token))
	if subtle.ConstantTimeCompare(presented[:], expected.hash[:]) != 1 {
		return ErrInvalidCredential
	}
	return nil
}
