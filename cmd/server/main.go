package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shoplens/backend/config"
	httpDelivery "github.com/shoplens/backend/internal/delivery/http"
	"github.com/shoplens/backend/internal/infrastructure/cache"
	"github.com/shoplens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	// Extractor diagnostics (timeouts, result caps, pattern faults) are
	// debug-level; they only appear outside production.
	if cfg.Server.Environment == "development" || cfg.Extractor.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	}).Info("starting shoplens backend v1.0.0")

	// Build the store registry once; it is immutable for the process lifetime
	registry := usecase.NewDefaultStoreRegistry()
	logrus.WithField("stores", registry.Len()).Info("store registry built")

	memoryCache := cache.NewMemoryCache()
	logrus.WithField("ttl", cfg.Cache.TTL).Info("result cache ready")

	extractor := usecase.NewExtractorService(registry, memoryCache, usecase.ExtractorConfig{
		PatternTimeout: cfg.Extractor.PatternTimeout,
		CacheTTL:       cfg.Cache.TTL,
	})

	logrus.WithFields(logrus.Fields{
		"pattern_timeout": cfg.Extractor.PatternTimeout,
		"batch_max_urls":  cfg.Batch.MaxURLs,
	}).Info("extractor configured")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(extractor, cfg.Batch.MaxURLs, cfg.Batch.Concurrency)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logrus.Infof("server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
