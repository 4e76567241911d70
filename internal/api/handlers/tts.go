package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapware/tts-gateway/internal/api/middleware"
	"github.com/zapware/tts-gateway/internal/audio"
	"github.com/zapware/tts-gateway/internal/auth"
	"github.com/zapware/tts-gateway/internal/tts"
)

// TTSHandler dispatches synthesis requests: it validates input, enforces
// the per-provider bearer key, resolves the adapter and shapes the
// uniform response or error envelope. It owns each request end-to-end.
type TTSHandler struct {
	registry *tts.Registry
	guard    *auth.Guard
	timeout  time.Duration
}

func NewTTSHandler(registry *tts.Registry, guard *auth.Guard, timeout time.Duration) *TTSHandler {
	return &TTSHandler{registry: registry, guard: guard, timeout: timeout}
}

type synthesisResponse struct {
	Provider    string  `json:"provider"`
	SampleRate  int     `json:"sample_rate"`
	DurationMs  float64 `json:"duration_ms"`
	AudioBase64 string  `json:"audio_base64"`
}

// Synthesize handles POST /tts/{provider}. The body is `text` plus any
// provider-specific options; everything besides `text` is passed through
// to the adapter on top of the provider's defaults.
func (h *TTSHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")
	reqID := middleware.GetRequestID(r.Context())

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, _ := body["text"].(string)
	if text == "" {
		writeDetail(w, http.StatusBadRequest, "Missing 'text' in request body")
		return
	}
	delete(body, "text")
	overrides := tts.Options(body)

	if err := h.guard.Authenticate(name, r.Header.Get("Authorization")); err != nil {
		h.writeAuthError(w, r, name, err)
		return
	}

	provider, err := h.registry.Resolve(name)
	if err != nil {
		var unavailable *tts.UnavailableError
		switch {
		case errors.As(err, &unavailable):
			slog.Warn("provider unavailable", "request_id", reqID, "provider", name, "reason", unavailable.Reason)
			writeDetail(w, http.StatusServiceUnavailable, unavailable.Reason)
		default:
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("Unknown provider '%s'", name))
		}
		return
	}

	opts := tts.MergeOptions(h.registry.Defaults(name), overrides)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := provider.Synthesize(ctx, text, opts)
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("synthesis timed out", "request_id", reqID, "provider", name, "duration_ms", durationMs)
			writeDetail(w, http.StatusGatewayTimeout, fmt.Sprintf("%s synthesis timed out", name))
			return
		}
		// The cause stays in the log; the caller gets a generic detail.
		slog.Error("synthesis failed", "request_id", reqID, "provider", name, "duration_ms", durationMs, "error", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("%s synthesis failed", name))
		return
	}

	slog.Info("synthesis complete",
		"request_id", reqID,
		"provider", name,
		"sample_rate", result.SampleRate,
		"duration_ms", durationMs,
		"audio_bytes", len(result.Audio),
	)

	writeJSON(w, http.StatusOK, synthesisResponse{
		Provider:    name,
		SampleRate:  result.SampleRate,
		DurationMs:  durationMs,
		AudioBase64: audio.EncodeBase64WAV(result.Audio, result.SampleRate, result.Channels, result.BitsPerSample, result.Container),
	})
}

// writeAuthError maps guard failures to status codes. A missing header
// is 401 regardless of the provider; with a credential present, an
// unknown provider reports 404 before any credential verdict leaks.
func (h *TTSHandler) writeAuthError(w http.ResponseWriter, r *http.Request, name string, err error) {
	reqID := middleware.GetRequestID(r.Context())

	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		writeDetail(w, http.StatusUnauthorized, "Missing Authorization header")
	case !h.registry.Known(name):
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Unknown provider '%s'", name))
	case errors.Is(err, auth.ErrInvalidCredential):
		slog.Warn("invalid api key", "request_id", reqID, "provider", name)
		writeDetail(w, http.StatusForbidden, "Invalid API key")
	default:
		slog.Error("endpoint misconfigured", "request_id", reqID, "provider", name, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}
