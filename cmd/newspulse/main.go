package main

import (
	"log"

	"github.com/deusflow/newspulse/internal/app"
	"github.com/deusflow/newspulse/internal/cache"
	"github.com/deusflow/newspulse/internal/config"
	"github.com/deusflow/newspulse/internal/logger"
	"github.com/deusflow/newspulse/internal/news"
	"github.com/deusflow/newspulse/internal/rss"
	"github.com/deusflow/newspulse/internal/server"
	"github.com/deusflow/newspulse/internal/source"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	registry, err := source.Load(cfg.FeedsConfigPath)
	if err != nil {
		log.Fatalf("sources: %v", err)
	}
	logger.Info("sources loaded", "path", cfg.FeedsConfigPath, "count", len(registry.Sources()))

	fetcher := rss.NewHTTPFetcher(cfg.PerSourceTimeout, cfg.MaxPerSource, cfg.MaxResponseBytes)
	aggregator := rss.NewAggregator(fetcher, cfg.FetchConcurrency, cfg.OverallTimeout)

	var shared cache.Shared
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("shared cache unavailable, running memory-only", "error", err)
		} else {
			shared = redisCache
			logger.Info("shared cache connected", "addr", cfg.RedisAddr)
		}
	}
	tiers := cache.NewMultiTier(cache.NewMemory(), shared, cfg.CacheTTL)

	svc := app.NewService(
		registry,
		aggregator,
		news.NewCategorizer(nil),
		news.NewScorer(news.DefaultScorerConfig()),
		tiers,
		cfg.DefaultLimit,
	)

	router := server.NewRouter(svc)
	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
