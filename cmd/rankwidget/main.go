package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flugbuch/igcfetch/internal/catalog"
	"github.com/flugbuch/igcfetch/internal/config"
	igchttp "github.com/flugbuch/igcfetch/internal/http"
	"github.com/flugbuch/igcfetch/internal/scoring"
	"github.com/flugbuch/igcfetch/internal/widget"
)

func main() {
	port := env("PORT", "5001")
	logLevel := env("LOG_LEVEL", "info")

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	settings := config.DefaultSettings()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	if base := os.Getenv("BASE_URL"); base != "" {
		settings.BaseURL = base
	}

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := igchttp.NewClient(settings.UserAgent, settings.RequestTimeout())
	ext := scoring.NewExtractor(settings.ToSelectors())
	cat := catalog.NewService(client, ext, catalog.Options{
		BaseURL:          settings.BaseURL,
		ProbeConcurrency: settings.ProbeConcurrency,
		ProbeMaxTasks:    settings.ProbeMaxTasks,
	})

	// Warm the competition cache so the first form render is instant.
	if comps, err := cat.Competitions(ctx); err != nil {
		slog.Warn("competition prefetch failed", "error", err)
	} else {
		slog.Info("competitions loaded", "count", len(comps))
	}

	svc := widget.New(cat, logger)

	// Router.
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	svc.RegisterHTTP(r)

	// HTTP server.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("rank widget starting", "port", port, "base_url", settings.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
