package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/internal/cache"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

const cacheScope = "vendors"

type vendorRepository interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Vendor, int64, error)
	FindByID(ctx context.Context, id string) (*models.Vendor, error)
	CreateInMarket(ctx context.Context, vendor *models.Vendor, marketID string) error
	Update(ctx context.Context, vendor *models.Vendor) error
}

// Service exposes vendor operations.
type Service interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]VendorDTO, pagination.Meta, error)
	GetByID(ctx context.Context, id string) (*VendorDTO, error)
	Create(ctx context.Context, input CreateVendorInput) (*VendorDTO, error)
	Update(ctx context.Context, id string, input UpdateVendorInput) (*VendorDTO, error)
	Delete(ctx context.Context, id string) (*VendorDTO, error)
}

type service struct {
	repo     vendorRepository
	cache    *cache.Store
	cacheCfg config.CacheConfig
}

// NewService builds a vendor service. The cache store may be nil.
func NewService(repo vendorRepository, cacheStore *cache.Store, cacheCfg config.CacheConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, cache: cacheStore, cacheCfg: cacheCfg}, nil
}

type listPage struct {
	Data []VendorDTO     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]VendorDTO, pagination.Meta, error) {
	keyParts := append(cache.PageKey(page.Page, page.Limit),
		"s", filters.Search, "m", filters.MarketID, "sp", filters.Specialty, "a", boolKey(filters.Active))
	key, cacheable := s.cache.Key(ctx, cacheScope, keyParts...)
	if cacheable {
		var cached listPage
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached.Data, cached.Meta, nil
		}
	}

	rows, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	dtos := FromModels(rows)
	meta := pagination.NewMeta(page, total)

	if cacheable {
		s.cache.SetJSON(ctx, key, listPage{Data: dtos, Meta: meta}, s.cacheCfg.ListTTL)
	}

	return dtos, meta, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*VendorDTO, error) {
	key, cacheable := s.cache.Key(ctx, cacheScope, "id", id)
	if cacheable {
		var cached VendorDTO
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	dto := FromModel(vendor)
	if cacheable {
		s.cache.SetJSON(ctx, key, dto, s.cacheCfg.DetailTTL)
	}
	return dto, nil
}

func (s *service) Create(ctx context.Context, input CreateVendorInput) (*VendorDTO, error) {
	vendor := input.ToModel()
	if err := s.repo.CreateInMarket(ctx, vendor, input.MarketID); err != nil {
		switch {
		case errors.Is(err, ErrMarketNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "market not found")
		case db.IsUniqueViolation(err):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor id already exists")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
		}
	}

	s.cache.Bump(ctx, cacheScope)

	// Reload so the response carries the market association.
	created, err := s.repo.FindByID(ctx, vendor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload vendor")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateVendorInput) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	applyVendorUpdate(vendor, input)

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}

	s.cache.Bump(ctx, cacheScope)
	return FromModel(vendor), nil
}

func (s *service) Delete(ctx context.Context, id string) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	vendor.IsActive = false
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate vendor")
	}

	s.cache.Bump(ctx, cacheScope)
	return FromModel(vendor), nil
}

func applyVendorUpdate(vendor *models.Vendor, input UpdateVendorInput) {
	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.ChineseName != nil {
		vendor.ChineseName = *input.ChineseName
	}
	if input.Description != nil {
		vendor.Description = *input.Description
	}
	if input.Latitude != nil {
		vendor.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		vendor.Longitude = *input.Longitude
	}
	if input.Specialties != nil {
		vendor.Specialties = pq.StringArray(append([]string{}, (*input.Specialties)...))
	}
	if input.Images != nil {
		vendor.Images = pq.StringArray(append([]string{}, (*input.Images)...))
	}
	if input.Phone != nil {
		vendor.Phone = cloneStringPtr(input.Phone)
	}
	if input.OpeningHours != nil {
		vendor.OpeningHours = cloneStringPtr(input.OpeningHours)
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}
}

func boolKey(value *bool) string {
	if value == nil {
		return "any"
	}
	if *value {
		return "true"
	}
	return "false"
}
