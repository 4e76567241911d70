package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// piper emits 22050 Hz mono PCM with --output-raw.
const piperSampleRate = 22050

// PiperConfig holds configuration for the local piper backend.
type PiperConfig struct {
	BinPath   string // default: "piper"
	ModelPath string // required: path to the .onnx voice model
}

// Piper synthesizes speech with the piper binary via subprocess. It is
// the gateway's offline provider; the voice is baked into the model
// file, so no request options apply.
type Piper struct {
	cfg PiperConfig
}

// NewPiper creates a Piper adapter.
func NewPiper(cfg PiperConfig) *Piper {
	if cfg.BinPath == "" {
		cfg.BinPath = "piper"
	}
	return &Piper{cfg: cfg}
}

func piperUnavailableReason(cfg PiperConfig) string {
	if cfg.ModelPath == "" {
		return "PIPER_MODEL_PATH is not set"
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return fmt.Sprintf("piper model not readable at %s", cfg.ModelPath)
	}
	bin := cfg.BinPath
	if bin == "" {
		bin = "piper"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Sprintf("piper binary %q not found in PATH", bin)
	}
	return ""
}

func (p *Piper) Name() string { return "piper" }

// Synthesize pipes text into piper via stdin and collects raw PCM from
// stdout.
func (p *Piper) Synthesize(ctx context.Context, text string, _ Options) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.cfg.BinPath, "--model", p.cfg.ModelPath, "--output-raw")
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, &SynthesisError{Provider: p.Name(), Cause: ctx.Err()}
		}
		return nil, &SynthesisError{Provider: p.Name(), Cause: fmt.Errorf("piper: %w (stderr: %s)", err, stderr.String())}
	}

	if stdout.Len() == 0 {
		return nil, &SynthesisError{Provider: p.Name(), Cause: fmt.Errorf("no audio received")}
	}

	return &Result{
		Audio:         stdout.Bytes(),
		SampleRate:    piperSampleRate,
		Channels:      1,
		BitsPerSample: 16,
	}, nil
}
