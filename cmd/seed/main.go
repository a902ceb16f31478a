package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/formosafoodlab/nightmarket-atlas/internal/seed"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/maps"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	// A Mapbox token lets the seeder geocode markets that ship without
	// coordinates; without one those rows keep their zero point.
	var geocoder seed.Geocoder
	if cfg.Maps.AccessToken != "" {
		mapsClient, err := maps.NewClient(cfg.Maps.AccessToken)
		if err != nil {
			logg.Error(ctx, "failed to build maps client", err)
			os.Exit(1)
		}
		if err := mapsClient.ValidateToken(ctx); err != nil {
			logg.Error(ctx, "mapbox token rejected", err)
			os.Exit(1)
		}
		geocoder = mapsClient
	} else {
		logg.Warn(ctx, "mapbox token not configured, skipping geocoding")
	}

	seeder, err := seed.New(dbClient.DB(), logg, geocoder)
	if err != nil {
		logg.Error(ctx, "failed to build seeder", err)
		os.Exit(1)
	}

	if err := seeder.Run(ctx, seed.DefaultDataset()); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "database seeded")
}
