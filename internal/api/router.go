package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zapware/tts-gateway/internal/api/handlers"
	"github.com/zapware/tts-gateway/internal/api/middleware"
	"github.com/zapware/tts-gateway/internal/auth"
	"github.com/zapware/tts-gateway/internal/config"
	"github.com/zapware/tts-gateway/internal/tts"
)

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	registry *tts.Registry
	guard    *auth.Guard
}

func NewRouter(cfg *config.Config, registry *tts.Registry) *Router {
	guard := auth.NewGuard()
	for name, key := range cfg.TTS.InboundKeys() {
		guard.Register(name, key.EnvVar, key.Value)
	}

	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		registry: registry,
		guard:    guard,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	// Health endpoints (no auth, no throttle; probes must stay cheap)
	health := handlers.NewHealthHandler(rt.registry)
	r.Get("/", health.Healthz)
	r.Get("/health", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Synthesis endpoint, one route for every provider; auth is
	// per-provider inside the handler.
	ttsH := handlers.NewTTSHandler(rt.registry, rt.guard, rt.cfg.TTS.SynthesisTimeout)
	rl := middleware.NewRateLimiter(10, 20)
	r.With(rl.Limit).Post("/tts/{provider}", ttsH.Synthesize)

	return r
}
