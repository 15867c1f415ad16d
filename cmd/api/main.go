// @title QMS Event Module API
// @version 1.0
// @description Eventos de calidad (deviations, CAPAs, change controls, audits) + acciones de analytics.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"qms-backend/internal/adapters/enrichment/gemini"
	"qms-backend/internal/domain/analytics"
	"qms-backend/internal/jobs"
	"qms-backend/internal/platform/config"
	"qms-backend/internal/platform/logger"
	"qms-backend/internal/router"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.New(logger.Options{Level: logger.Error}).Error("config error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.FromConfig(cfg.Log)

	repo, closeRepo, err := router.OpenEventsRepo(cfg.Storage)
	if err != nil {
		log.Error("storage error", map[string]any{"driver": cfg.Storage.Driver, "err": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = closeRepo() }()

	gw := gemini.New(gemini.Config{
		APIKey:    cfg.Gemini.APIKey,
		Model:     cfg.Gemini.Model,
		Endpoints: cfg.Gemini.Endpoints,
		Timeout:   cfg.Gemini.Timeout,
	}, log)
	if !cfg.GeminiEnabled() {
		log.Warn("GEMINI_API_KEY not set, enrichment disabled", nil)
	}

	r := router.NewRouter(router.Options{
		Events:      repo,
		Enricher:    gw,
		Logger:      log,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	var digest *jobs.Digest
	if cfg.Jobs.DigestEnabled {
		digest = jobs.NewDigest(analytics.NewEngine(repo), log)
		if err := digest.Start(cfg.Jobs.DigestSpec); err != nil {
			log.Error("digest error", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "storage": cfg.Storage.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if digest != nil {
		digest.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"err": err.Error()})
	}
	log.Info("server stopped", nil)
}
