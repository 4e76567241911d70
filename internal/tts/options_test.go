package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeOptions_RequestWins(t *testing.T) {
	defaults := Options{"voice_id": "default-voice", "model_id": "default-model"}
	overrides := Options{"voice_id": "custom-voice"}

	merged := MergeOptions(defaults, overrides)

	assert.Equal(t, "custom-voice", merged["voice_id"])
	assert.Equal(t, "default-model", merged["model_id"])
}

func TestMergeOptions_UnknownKeysPassThrough(t *testing.T) {
	merged := MergeOptions(Options{"voice": "aria"}, Options{"emphasis": "strong"})

	assert.Equal(t, "aria", merged["voice"])
	assert.Equal(t, "strong", merged["emphasis"], "keys the provider does not know still reach the adapter")
}

func TestMergeOptions_DoesNotMutateInputs(t *testing.T) {
	defaults := Options{"voice": "aria"}
	MergeOptions(defaults, Options{"voice": "guy"})

	assert.Equal(t, "aria", defaults["voice"])
}

func TestOptionsString(t *testing.T) {
	opts := Options{"voice": "aria", "speed": 1.5, "empty": ""}

	assert.Equal(t, "aria", opts.String("voice", "fallback"))
	assert.Equal(t, "fallback", opts.String("missing", "fallback"))
	assert.Equal(t, "fallback", opts.String("empty", "fallback"))
	assert.Equal(t, "fallback", opts.String("speed", "fallback"), "non-string value falls back")
}

func TestOptionsFloat(t *testing.T) {
	opts := Options{"speed": 1.5, "count": 3, "voice": "aria"}

	assert.Equal(t, 1.5, opts.Float("speed", 0))
	assert.Equal(t, 3.0, opts.Float("count", 0))
	assert.Equal(t, 0.25, opts.Float("voice", 0.25))
	assert.Equal(t, 0.25, opts.Float("missing", 0.25))
}
