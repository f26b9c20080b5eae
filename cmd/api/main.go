package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"il-surface/internal/api"
	"il-surface/internal/api/handlers"
	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/logging"
	"il-surface/internal/pipeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.FromEnv(os.Getenv("API_DEBUG") == "true")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	rps, _ := strconv.Atoi(os.Getenv("API_RATE_LIMIT"))

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if cfg, err = config.Load(path); err != nil {
			log.Fatalw("failed to load config", "path", path, "error", err)
		}
		log.Infow("loaded config", "path", path)
	}

	registry, err := pipeline.Registry(cfg)
	if err != nil {
		log.Fatalw("failed to load token registry", "error", err)
	}

	// Without a provider the API still serves requests that carry a price.
	var source data.PriceSource
	if cfg.Oracle.Provider != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Oracle.Timeout)
		oracle, closer, err := data.DialUniswap(ctx, cfg.Oracle.Provider, pipeline.OracleParams(cfg.Oracle), logger)
		cancel()
		if err != nil {
			log.Fatalw("failed to connect to provider", "error", err)
		}
		defer closer()
		source = oracle
		log.Infow("price oracle ready", "version", cfg.Oracle.Version, "fee_tier", cfg.Oracle.FeeTier)
	} else {
		log.Warn("no provider configured (WEB3); quotes require a price in the request")
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.NewHandler(cfg, source, registry, logger)
	router := api.NewRouter(h, logger, api.RouterOptions{RateLimit: rps})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infow("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	waitForShutdown(srv, logger)
}

func waitForShutdown(srv *http.Server, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
