package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	TTS    TTSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type TTSConfig struct {
	// SynthesisTimeout bounds a single provider call.
	SynthesisTimeout time.Duration

	ElevenLabs ElevenLabsConfig
	OpenAI     OpenAIConfig
	Edge       EdgeConfig
	Piper      PiperConfig
}

type ElevenLabsConfig struct {
	InboundKey string // bearer key callers must present on /tts/elevenlabs
	APIKey     string
	BaseURL    string
	VoiceID    string
	ModelID    string
	SampleRate int
}

type OpenAIConfig struct {
	InboundKey string
	APIKey     string
	BaseURL    string
	Model      string
	Voice      string
}

type EdgeConfig struct {
	InboundKey string
	Voice      string
}

type PiperConfig struct {
	InboundKey string
	BinPath    string
	ModelPath  string
}

// InboundKey pairs a provider's configured bearer key with the name of the
// environment variable it came from, so misconfiguration errors can point
// the operator at the right variable.
type InboundKey struct {
	EnvVar string
	Value  string
}

// InboundKeys returns the per-provider inbound bearer keys, keyed by
// provider name as it appears in the request path.
func (c TTSConfig) InboundKeys() map[string]InboundKey {
	return map[string]InboundKey{
		"elevenlabs": {EnvVar: "API_KEY_ELEVENLABS", Value: c.ElevenLabs.InboundKey},
		"openai":     {EnvVar: "API_KEY_OPENAI", Value: c.OpenAI.InboundKey},
		"edge":       {EnvVar: "API_KEY_EDGE", Value: c.Edge.InboundKey},
		"piper":      {EnvVar: "API_KEY_PIPER", Value: c.Piper.InboundKey},
	}
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	timeoutSecs, err := getEnvInt("TTS_SYNTHESIS_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_SYNTHESIS_TIMEOUT_SECONDS: %w", err)
	}

	elSampleRate, err := getEnvInt("ELEVENLABS_SAMPLE_RATE", 24000)
	if err != nil {
		return nil, fmt.Errorf("invalid ELEVENLABS_SAMPLE_RATE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		TTS: TTSConfig{
			SynthesisTimeout: time.Duration(timeoutSecs) * time.Second,
			ElevenLabs: ElevenLabsConfig{
				InboundKey: getEnv("API_KEY_ELEVENLABS", ""),
				APIKey:     getEnv("ELEVENLABS_API_KEY", ""),
				BaseURL:    getEnv("ELEVENLABS_BASE_URL", ""),
				VoiceID:    getEnv("ELEVENLABS_VOICE_ID", ""),
				ModelID:    getEnv("ELEVENLABS_MODEL_ID", ""),
				SampleRate: elSampleRate,
			},
			OpenAI: OpenAIConfig{
				InboundKey: getEnv("API_KEY_OPENAI", ""),
				APIKey:     getEnv("OPENAI_API_KEY", ""),
				BaseURL:    getEnv("OPENAI_TTS_BASE_URL", ""),
				Model:      getEnv("OPENAI_TTS_MODEL", ""),
				Voice:      getEnv("OPENAI_TTS_VOICE", ""),
			},
			Edge: EdgeConfig{
				InboundKey: getEnv("API_KEY_EDGE", ""),
				Voice:      getEnv("EDGE_TTS_VOICE", ""),
			},
			Piper: PiperConfig{
				InboundKey: getEnv("API_KEY_PIPER", ""),
				BinPath:    getEnv("PIPER_BIN_PATH", "piper"),
				ModelPath:  getEnv("PIPER_MODEL_PATH", ""),
			},
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
