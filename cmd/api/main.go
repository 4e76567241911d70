package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapware/tts-gateway/internal/api"
	"github.com/zapware/tts-gateway/internal/config"
	"github.com/zapware/tts-gateway/internal/tts"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// A provider missing its credential or runtime dependency degrades
	// to unavailable; it never stops the gateway from starting.
	registry := tts.NewRegistry(cfg.TTS)
	for name, reason := range registry.Availability() {
		if reason == "" {
			slog.Info("provider registered", "provider", name)
		} else {
			slog.Warn("provider unavailable", "provider", name, "reason", reason)
		}
	}

	router := api.NewRouter(cfg, registry)
	handler := router.Setup()

	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Synthesis calls can legitimately run for the full provider
		// timeout, so the write timeout sits above it.
		WriteTimeout: cfg.TTS.SynthesisTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting TTS gateway", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
