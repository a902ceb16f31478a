package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/geo"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/maps"
)

// Geocoder resolves a free-text place query to coordinates. The Mapbox
// client satisfies it; the seeder runs fine without one.
type Geocoder interface {
	Geocode(ctx context.Context, query, country string) ([]maps.GeocodeResult, error)
}

// Seeder loads the research dataset into the store. Inserts use
// ON CONFLICT DO NOTHING so re-running never clobbers curated edits.
type Seeder struct {
	db       *gorm.DB
	logg     *logger.Logger
	geocoder Geocoder
}

// New builds a seeder. The geocoder may be nil.
func New(db *gorm.DB, logg *logger.Logger, geocoder Geocoder) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection required")
	}
	return &Seeder{db: db, logg: logg, geocoder: geocoder}, nil
}

// Run loads the dataset. Safe to invoke repeatedly.
func (s *Seeder) Run(ctx context.Context, data Dataset) error {
	for _, marketSeed := range data.Markets {
		market := marketSeed.Market
		if err := s.fillCoordinates(ctx, &market); err != nil {
			return fmt.Errorf("geocode market %s: %w", market.ID, err)
		}

		if err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Omit("Vendors").
			Create(&market).Error; err != nil {
			return fmt.Errorf("seed market %s: %w", market.ID, err)
		}

		for _, vendor := range marketSeed.Vendors {
			if err := s.db.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Omit("Markets").
				Create(&vendor).Error; err != nil {
				return fmt.Errorf("seed vendor %s: %w", vendor.ID, err)
			}

			join := models.MarketVendor{MarketID: market.ID, VendorID: vendor.ID}
			if err := s.db.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&join).Error; err != nil {
				return fmt.Errorf("seed association %s/%s: %w", market.ID, vendor.ID, err)
			}
		}
	}

	for _, reference := range data.References {
		// References get generated UUIDs, so idempotency is by title+year.
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.Reference{}).
			Where("title = ? AND year = ?", reference.Title, reference.Year).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check reference %q: %w", reference.Title, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.WithContext(ctx).Create(&reference).Error; err != nil {
			return fmt.Errorf("seed reference %q: %w", reference.Title, err)
		}
	}

	if s.logg != nil {
		s.logg.Info(ctx, "seed complete")
	}
	return nil
}

// fillCoordinates resolves missing market coordinates through the geocoder
// when one is wired; a dataset entry that already carries a valid point is
// left alone.
func (s *Seeder) fillCoordinates(ctx context.Context, market *models.Market) error {
	point := geo.Point{Lat: market.Latitude, Lng: market.Longitude}
	if point.Valid() || s.geocoder == nil {
		return nil
	}

	results, err := s.geocoder.Geocode(ctx, market.Name+", "+market.Location, "tw")
	if err != nil {
		return err
	}
	if len(results) == 0 {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithMarketID(ctx, market.ID), "geocoder returned no results")
		}
		return nil
	}

	market.Latitude = results[0].Location.Lat
	market.Longitude = results[0].Location.Lng
	return nil
}
