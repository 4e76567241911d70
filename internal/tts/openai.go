package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

const (
	openAIDefaultModel = "tts-1"
	openAIDefaultVoice = "alloy"

	// OpenAI's WAV output is fixed at 24 kHz, 16-bit, mono.
	openAISampleRate = 24000
)

// OpenAIConfig holds configuration for the OpenAI speech backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // default: api.openai.com
}

// OpenAI synthesizes speech through OpenAI's audio API. It requests WAV
// output, so results carry a complete container and bypass re-wrapping.
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI creates an OpenAI adapter.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(clientCfg)}
}

func openAIUnavailableReason(cfg OpenAIConfig) string {
	if cfg.APIKey == "" {
		return "OPENAI_API_KEY is not set"
	}
	return ""
}

func (o *OpenAI) Name() string { return "openai" }

// Synthesize converts text to a WAV buffer. Honored options: "voice",
// "model" and "speed".
func (o *OpenAI) Synthesize(ctx context.Context, text string, opts Options) (*Result, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(opts.String("model", openAIDefaultModel)),
		Input:          text,
		Voice:          openai.SpeechVoice(opts.String("voice", openAIDefaultVoice)),
		ResponseFormat: openai.SpeechResponseFormatWav,
	}
	if speed := opts.Float("speed", 0); speed > 0 {
		req.Speed = speed
	}

	stream, err := o.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, &SynthesisError{Provider: o.Name(), Cause: fmt.Errorf("speech request: %w", err)}
	}
	defer stream.Close()

	wav, err := io.ReadAll(stream)
	if err != nil {
		return nil, &SynthesisError{Provider: o.Name(), Cause: fmt.Errorf("read audio: %w", err)}
	}

	return &Result{
		Audio:         wav,
		SampleRate:    openAISampleRate,
		Channels:      1,
		BitsPerSample: 16,
		Container:     true,
	}, nil
}
