package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	jwttoken "signup/internal/jwt_token"
	"signup/internal/platform/config"
	"signup/internal/platform/httpserver"
	"signup/internal/platform/logger"
	"signup/internal/platform/metrics"
	"signup/internal/progressapi"
	"signup/pkg/platform/audit"
	auditmemory "signup/pkg/platform/audit/store/memory"
)

const purgeInterval = 5 * time.Minute

// main serves the reference progress API until interrupted.
func main() {
	_ = godotenv.Load()
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	m := metrics.New()

	svc, err := progressapi.New(progressapi.NewInMemoryStore(),
		progressapi.WithLogger(log),
		progressapi.WithMetrics(m),
		progressapi.WithSessionTTL(cfg.Server.SessionTTL),
		progressapi.WithTokens(jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "signup-progress", "signup-wizard"), cfg.Server.TokenTTL),
		progressapi.WithDocuments(progressapi.DefaultDocuments(cfg.Server.DocumentsBase)),
		progressapi.WithAuditor(audit.NewPublisher(auditmemory.NewInMemoryStore(), audit.WithLogger(log))),
	)
	if err != nil {
		log.Error("failed to build progress service", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	progressapi.NewHandler(svc, log, m).Register(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go purgeSessions(ctx, svc, log)

	srv := httpserver.New(cfg.Server.Addr, r)
	go func() {
		log.Info("starting progress service", "addr", cfg.Server.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("progress service stopped")
}

func purgeSessions(ctx context.Context, svc *progressapi.Service, log *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := svc.PurgeExpiredSessions(ctx)
			if err != nil {
				log.WarnContext(ctx, "session purge failed", "error", err)
				continue
			}
			if removed > 0 {
				log.DebugContext(ctx, "expired sessions purged", "count", removed)
			}
		}
	}
}
