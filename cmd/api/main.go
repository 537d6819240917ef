package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tickernews/internal/app"
	"tickernews/internal/config"
	"tickernews/internal/handler"
	"tickernews/internal/scheduler"
)

const refreshTimeout = 2 * time.Minute

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	app.SetupLogging(os.Stdout, cfg.LogLevel)

	pipeline, err := app.NewAggregator(cfg)
	if err != nil {
		log.Fatalf("error building news pipeline: %v", err)
	}

	store, closeCache := app.NewCache(cfg)
	defer closeCache()

	newsHandler := handler.NewNewsHandler(pipeline, store, cfg.CacheTTL)

	if cfg.RefreshCron != "" {
		s, err := scheduler.New(cfg.RefreshCron, newsHandler, refreshTimeout)
		if err != nil {
			log.Fatalf("invalid REFRESH_CRON %q: %v", cfg.RefreshCron, err)
		}
		s.Start()
		defer s.Stop()
		slog.Info("scheduled news refresh enabled", "spec", cfg.RefreshCron)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.NewRouter(newsHandler),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "sources", len(pipeline.Sources()), "cache", store.Kind())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}
}
