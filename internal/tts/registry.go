package tts

import (
	"sort"
	"sync"

	"github.com/zapware/tts-gateway/internal/config"
)

// entry is the startup-resolved record for one provider: its availability,
// its default options and the factory for its adapter. The adapter itself
// is constructed lazily, exactly once, on first successful resolve.
type entry struct {
	name     string
	reason   string // non-empty when the provider cannot serve requests
	defaults Options
	factory  func() Provider

	once    sync.Once
	adapter Provider
}

// Registry maps provider names to adapters. It is populated once at
// startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	entries map[string]*entry
}

// New returns an empty registry. Providers are attached with Register.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// NewRegistry builds the standard provider set from configuration. A
// provider whose runtime dependency or outbound credential is missing is
// registered as unavailable; it never prevents the others from serving.
func NewRegistry(cfg config.TTSConfig) *Registry {
	r := New()

	elCfg := ElevenLabsConfig{
		APIKey:     cfg.ElevenLabs.APIKey,
		BaseURL:    cfg.ElevenLabs.BaseURL,
		SampleRate: cfg.ElevenLabs.SampleRate,
	}
	r.Register("elevenlabs", elevenLabsUnavailableReason(elCfg), Options{
		"voice_id": cfg.ElevenLabs.VoiceID,
		"model_id": cfg.ElevenLabs.ModelID,
	}, func() Provider { return NewElevenLabs(elCfg) })

	oaCfg := OpenAIConfig{APIKey: cfg.OpenAI.APIKey, BaseURL: cfg.OpenAI.BaseURL}
	r.Register("openai", openAIUnavailableReason(oaCfg), Options{
		"voice": cfg.OpenAI.Voice,
		"model": cfg.OpenAI.Model,
	}, func() Provider { return NewOpenAI(oaCfg) })

	r.Register("edge", "", Options{
		"voice": cfg.Edge.Voice,
	}, func() Provider { return NewEdge(EdgeConfig{Voice: cfg.Edge.Voice}) })

	ppCfg := PiperConfig{BinPath: cfg.Piper.BinPath, ModelPath: cfg.Piper.ModelPath}
	r.Register("piper", piperUnavailableReason(ppCfg), Options{},
		func() Provider { return NewPiper(ppCfg) })

	return r
}

// Register adds a provider under name. reason, when non-empty, marks the
// provider unavailable for the life of the process. Registration happens
// only during startup; the registry must not be mutated once serving.
func (r *Registry) Register(name, reason string, defaults Options, factory func() Provider) {
	r.entries[name] = &entry{
		name:     name,
		reason:   reason,
		defaults: defaults,
		factory:  factory,
	}
}

// Resolve returns the adapter for name, constructing it on first use.
// Unknown names yield ErrProviderNotFound; registered-but-degraded names
// yield an UnavailableError carrying the reason.
func (r *Registry) Resolve(name string) (Provider, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, ErrProviderNotFound
	}
	if e.reason != "" {
		return nil, &UnavailableError{Provider: name, Reason: e.reason}
	}
	e.once.Do(func() {
		e.adapter = e.factory()
	})
	return e.adapter, nil
}

// Known reports whether name was registered, available or not.
func (r *Registry) Known(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Defaults returns the provider's default options. The caller owns the
// returned map; the registry's copy is never exposed for mutation.
func (r *Registry) Defaults(name string) Options {
	e, ok := r.entries[name]
	if !ok {
		return Options{}
	}
	out := make(Options, len(e.defaults))
	for k, v := range e.defaults {
		out[k] = v
	}
	return out
}

// Names returns all registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Availability maps each registered provider to its unavailability
// reason, empty when the provider is serving.
func (r *Registry) Availability() map[string]string {
	out := make(map[string]string, len(r.entries))
	for name, e := range r.entries {
		out[name] = e.reason
	}
	return out
}
