package tts

import "context"

// Result holds the audio produced by a single synthesis call.
type Result struct {
	// Audio is either raw PCM frames or, when Container is set, a
	// complete WAV file as returned by the backend.
	Audio         []byte
	SampleRate    int
	Channels      int
	BitsPerSample int
	Container     bool
}

// Provider is the interface for text-to-speech backends. Implementations
// are stateless per call: they hold only read-only configuration and a
// shared client handle, so concurrent invocations are safe.
type Provider interface {
	Synthesize(ctx context.Context, text string, opts Options) (*Result, error)
	Name() string
}
