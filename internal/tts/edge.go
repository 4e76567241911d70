package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/pp-group/edge-tts-go/biz/service/tts/edge"

	"github.com/zapware/tts-gateway/internal/audio"
)

const edgeDefaultVoice = "en-US-AriaNeural"

// EdgeConfig holds configuration for the Microsoft Edge TTS backend.
type EdgeConfig struct {
	Voice string
}

// Edge synthesizes speech through Microsoft's Edge neural voices. The
// service streams MP3, which is decoded and downmixed to mono PCM here
// so the envelope encoder sees the same shape as every other raw-PCM
// provider. No credential is required.
type Edge struct {
	cfg EdgeConfig
}

// NewEdge creates an Edge adapter.
func NewEdge(cfg EdgeConfig) *Edge {
	return &Edge{cfg: cfg}
}

func (e *Edge) Name() string { return "edge" }

// Synthesize converts text to mono PCM. Honored options: "voice".
func (e *Edge) Synthesize(ctx context.Context, text string, opts Options) (*Result, error) {
	voice := opts.String("voice", edgeDefaultVoice)

	comm, err := edge.NewCommunicate(text, edge.WithVoice(voice))
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("create session: %w", err)}
	}

	ch, err := comm.Stream()
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("start stream: %w", err)}
	}

	mp3Data, err := collectAudio(ctx, ch)
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: err}
	}
	if len(mp3Data) == 0 {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("no audio received")}
	}

	decoder, err := mp3.NewDecoder(bytes.NewReader(mp3Data))
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("decode mp3: %w", err)}
	}

	// go-mp3 always yields 16-bit little-endian stereo.
	stereo, err := io.ReadAll(decoder)
	if err != nil {
		return nil, &SynthesisError{Provider: e.Name(), Cause: fmt.Errorf("read pcm: %w", err)}
	}

	return &Result{
		Audio:         audio.DownmixStereo(stereo),
		SampleRate:    decoder.SampleRate(),
		Channels:      1,
		BitsPerSample: 16,
	}, nil
}

// collectAudio drains the stream until it closes. The stream carries no
// deadline of its own, so the receive must also watch ctx: a stalled
// upstream would otherwise hold the caller past its timeout.
func collectAudio(ctx context.Context, ch <-chan map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return buf.Bytes(), nil
			}
			if msgType, ok := msg["type"].(string); ok && msgType == "audio" {
				if data, ok := msg["data"].([]byte); ok {
					buf.Write(data)
				}
			}
		}
	}
}
