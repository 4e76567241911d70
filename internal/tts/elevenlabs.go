package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

	// Rachel, ElevenLabs' stock English voice.
	elevenLabsDefaultVoice = "21m00Tcm4TlvDq8ikWAM"
	elevenLabsDefaultModel = "eleven_multilingual_v2"

	elevenLabsDefaultSampleRate = 24000

	elevenLabsDefaultStability       = 0.5
	elevenLabsDefaultSimilarityBoost = 0.75
)

// ElevenLabsConfig holds configuration for the ElevenLabs backend.
type ElevenLabsConfig struct {
	APIKey     string
	BaseURL    string // default: "https://api.elevenlabs.io/v1"
	SampleRate int    // PCM output rate, default 24000
}

// ElevenLabs synthesizes speech through the ElevenLabs hosted API. It
// requests raw PCM output so the gateway controls WAV containerization.
type ElevenLabs struct {
	cfg        ElevenLabsConfig
	httpClient *http.Client
}

// NewElevenLabs creates an ElevenLabs adapter with defaults applied.
func NewElevenLabs(cfg ElevenLabsConfig) *ElevenLabs {
	if cfg.BaseURL == "" {
		cfg.BaseURL = elevenLabsBaseURL
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = elevenLabsDefaultSampleRate
	}
	return &ElevenLabs{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func elevenLabsUnavailableReason(cfg ElevenLabsConfig) string {
	if cfg.APIKey == "" {
		return "ELEVENLABS_API_KEY is not set"
	}
	return ""
}

func (e *ElevenLabs) Name() string { return "elevenlabs" }

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id,omitempty"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize requests PCM audio for text. Honored options: "voice_id"
// and "model_id".
func (e *ElevenLabs) Synthesize(ctx context.Context, text string, opts Options) (*Result, error) {
	voice := opts.String("voice_id", elevenLabsDefaultVoice)
	model := opts.String("model_id", elevenLabsDefaultModel)

	body := elevenLabsRequest{
		Text:    text,
		ModelID: model,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       elevenLabsDefaultStability,
			SimilarityBoost: elevenLabsDefaultSimilarityBoost,
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("marshal request: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=pcm_%d", e.cfg.BaseURL, voice, e.cfg.SampleRate)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.cfg.APIKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("speech request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SynthesisError{Provider: e.Name(), Cause: elevenLabsError(resp)}
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("read audio: %w", err)}
	}

	return &Result{
		Audio:         pcm,
		SampleRate:    e.cfg.SampleRate,
		Channels:      1,
		BitsPerSample: 16,
	}, nil
}

type elevenLabsErrorResponse struct {
	Detail struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"detail"`
}

func elevenLabsError(resp *http.Response) error {
	var errResp elevenLabsErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Detail.Message == "" {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return fmt.Errorf("upstream status %d: %s", resp.StatusCode, errResp.Detail.Message)
}
