package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crisiswatch/internal/artifact"
	httpapi "crisiswatch/internal/http"
	"crisiswatch/internal/news"
	newshandler "crisiswatch/internal/news/handler"
	newsmetrics "crisiswatch/internal/news/metrics"
	newsstore "crisiswatch/internal/news/store"
	"crisiswatch/internal/platform/config"
	"crisiswatch/internal/platform/httpserver"
	"crisiswatch/internal/platform/logger"
	platformmetrics "crisiswatch/internal/platform/metrics"
	platformredis "crisiswatch/internal/platform/redis"
	"crisiswatch/internal/scoring"
	scoringhandler "crisiswatch/internal/scoring/handler"
	scoringmetrics "crisiswatch/internal/scoring/metrics"
)

// main wires dependencies and owns the server lifecycle. A missing model is
// not fatal: the service starts anyway and the affected domain returns
// degraded results until the artifact is fixed.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	store := artifact.NewStore(cfg.ModelDir, log)
	artifacts := scoring.Artifacts{}
	if art, err := store.Load("economic"); err != nil {
		log.Warn("economic model unavailable, scoring will degrade", "error", err)
	} else {
		artifacts.Economic = art
	}
	if art, err := store.Load("food"); err != nil {
		log.Warn("food model unavailable, scoring will degrade", "error", err)
	} else {
		artifacts.Food = art
	}

	scoringService := scoring.NewService(artifacts, log, scoringmetrics.New())

	var cache newsstore.Store = newsstore.NewMemory()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		cache = newsstore.NewRedis(redisClient.Client)
		log.Info("news cache backed by redis")
	}

	newsService := news.NewService(
		news.NewFetcher(10*time.Second),
		cache,
		log,
		newsmetrics.New(),
		cfg.NewsCacheTTL,
	)

	health := map[string]httpapi.HealthChecker{
		"economic_model": artifactCheck(artifacts.Economic),
		"food_model":     artifactCheck(artifacts.Food),
	}
	if redisClient != nil {
		health["redis"] = redisClient.Health
	}

	router := httpapi.NewRouter(
		httpapi.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			Health:         health,
			Metrics:        platformmetrics.NewHTTP(),
		},
		scoringhandler.New(scoringService, log),
		newshandler.New(newsService, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting crisiswatch", "addr", cfg.Addr, "model_dir", cfg.ModelDir)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("server stopped")
}

func artifactCheck(art *artifact.Artifact) httpapi.HealthChecker {
	return func(context.Context) error {
		if art == nil {
			return errors.New("not loaded")
		}
		return nil
	}
}
