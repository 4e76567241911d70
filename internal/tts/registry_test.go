package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapware/tts-gateway/internal/config"
)

func TestResolve_UnknownProvider(t *testing.T) {
	r := NewRegistry(config.TTSConfig{})

	_, err := r.Resolve("bark")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestResolve_MissingCredentialDegradesProvider(t *testing.T) {
	r := NewRegistry(config.TTSConfig{}) // no outbound credentials anywhere

	_, err := r.Resolve("elevenlabs")
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "elevenlabs", unavailable.Provider)
	assert.Contains(t, unavailable.Reason, "ELEVENLABS_API_KEY")

	_, err = r.Resolve("openai")
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Reason, "OPENAI_API_KEY")

	_, err = r.Resolve("piper")
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Reason, "PIPER_MODEL_PATH")
}

func TestResolve_UnavailableIsIdempotent(t *testing.T) {
	r := NewRegistry(config.TTSConfig{})

	_, first := r.Resolve("elevenlabs")
	_, second := r.Resolve("elevenlabs")
	assert.Equal(t, first.Error(), second.Error())
}

func TestResolve_OneProviderDownOthersServe(t *testing.T) {
	// edge needs no credential, so it must register and resolve even
	// when every other provider is misconfigured.
	r := NewRegistry(config.TTSConfig{})

	p, err := r.Resolve("edge")
	require.NoError(t, err)
	assert.Equal(t, "edge", p.Name())
}

func TestResolve_AdapterConstructedOnce(t *testing.T) {
	r := New()
	built := 0
	r.Register("stub", "", Options{}, func() Provider {
		built++
		return &stubEcho{}
	})

	first, err := r.Resolve("stub")
	require.NoError(t, err)
	second, err := r.Resolve("stub")
	require.NoError(t, err)

	assert.Same(t, first.(*stubEcho), second.(*stubEcho))
	assert.Equal(t, 1, built)
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	cfg := config.TTSConfig{}
	cfg.Edge.Voice = "en-GB-SoniaNeural"
	r := NewRegistry(cfg)

	defaults := r.Defaults("edge")
	assert.Equal(t, "en-GB-SoniaNeural", defaults["voice"])

	defaults["voice"] = "mutated"
	assert.Equal(t, "en-GB-SoniaNeural", r.Defaults("edge")["voice"], "registry copy must stay untouched")
}

func TestNames(t *testing.T) {
	r := NewRegistry(config.TTSConfig{})
	assert.Equal(t, []string{"edge", "elevenlabs", "openai", "piper"}, r.Names())
}

func TestKnownAndAvailability(t *testing.T) {
	r := NewRegistry(config.TTSConfig{})

	assert.True(t, r.Known("elevenlabs"))
	assert.False(t, r.Known("bark"))

	avail := r.Availability()
	assert.Empty(t, avail["edge"])
	assert.NotEmpty(t, avail["elevenlabs"])
}

type stubEcho struct{}

func (s *stubEcho) Name() string { return "stub" }

func (s *stubEcho) Synthesize(_ context.Context, _ string, _ Options) (*Result, error) {
	return &Result{Audio: []byte{0, 0}, SampleRate: 16000, Channels: 1, BitsPerSample: 16}, nil
}
