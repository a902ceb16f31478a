package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formosafoodlab/nightmarket-atlas/api/controllers"
	"github.com/formosafoodlab/nightmarket-atlas/api/routes"
	"github.com/formosafoodlab/nightmarket-atlas/internal/cache"
	"github.com/formosafoodlab/nightmarket-atlas/internal/markets"
	"github.com/formosafoodlab/nightmarket-atlas/internal/references"
	"github.com/formosafoodlab/nightmarket-atlas/internal/vendors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/metrics"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/migrate"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis is optional: without it the API serves straight from postgres.
	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, response cache disabled")
	}

	cacheStore := cache.New(redisClient, logg)

	marketSvc, err := markets.NewService(markets.NewRepository(dbClient.DB()), cacheStore, cfg.Cache)
	if err != nil {
		logg.Error(context.Background(), "failed to create market service", err)
		os.Exit(1)
	}
	vendorSvc, err := vendors.NewService(vendors.NewRepository(dbClient.DB()), cacheStore, cfg.Cache)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}
	referenceSvc, err := references.NewService(references.NewRepository(dbClient.DB()), cacheStore, cfg.Cache)
	if err != nil {
		logg.Error(context.Background(), "failed to create reference service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	pingers := map[string]controllers.Pinger{
		"postgres": dbClient,
	}
	if redisClient != nil {
		pingers["redis"] = redisClient
	} else {
		pingers["redis"] = nil
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Metrics:     httpMetrics,
			MetricsPage: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Pingers:     pingers,
			Markets:     marketSvc,
			Vendors:     vendorSvc,
			References:  referenceSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
