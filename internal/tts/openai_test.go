package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapware/tts-gateway/internal/audio"
)

func TestOpenAISynthesize(t *testing.T) {
	wav := audio.WrapPCMAsWAV([]byte{0x01, 0x02, 0x03, 0x04}, 24000, 1, 16)

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(wav)
	}))
	defer srv.Close()

	p := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})

	result, err := p.Synthesize(context.Background(), "hello", Options{
		"voice": "nova",
		"speed": 1.25,
	})
	require.NoError(t, err)

	assert.Equal(t, openAIDefaultModel, gotBody["model"])
	assert.Equal(t, "nova", gotBody["voice"])
	assert.Equal(t, "hello", gotBody["input"])
	assert.Equal(t, "wav", gotBody["response_format"])
	assert.Equal(t, 1.25, gotBody["speed"])

	// The backend already containerized the audio; the adapter must mark
	// it so the encoder does not wrap it again.
	assert.True(t, result.Container)
	assert.Equal(t, wav, result.Audio)
	assert.Equal(t, openAISampleRate, result.SampleRate)
}

func TestOpenAISynthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded"}}`))
	}))
	defer srv.Close()

	p := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})

	_, err := p.Synthesize(context.Background(), "hello", Options{})
	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, "openai", synthErr.Provider)
}

func TestOpenAIUnavailableReason(t *testing.T) {
	assert.Contains(t, openAIUnavailableReason(OpenAIConfig{}), "OPENAI_API_KEY")
	assert.Empty(t, openAIUnavailableReason(OpenAIConfig{APIKey: "k"}))
}
