package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zapware/tts-gateway/internal/tts"
)

type HealthHandler struct {
	registry *tts.Registry
}

func NewHealthHandler(registry *tts.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Healthz is the liveness probe. Provider degradation never fails it;
// the process is alive as long as it can answer.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "tts-gateway"})
}

// Readyz reports per-provider availability, so operators can see which
// backends are degraded and why. The gateway is ready as long as at
// least one provider can serve; with none left there is nothing to
// route to and the probe fails.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	providers := map[string]string{}
	ready := false
	for name, reason := range h.registry.Availability() {
		if reason == "" {
			providers[name] = "ok"
			ready = true
		} else {
			providers[name] = "unavailable: " + reason
		}
	}

	status, code := "ok", http.StatusOK
	if !ready {
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"providers": providers,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeDetail emits the uniform error envelope shared by every non-200
// response.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
