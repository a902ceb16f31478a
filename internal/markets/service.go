package markets

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

const cacheScope = "markets"

type marketRepository interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Market, int64, error)
	FindByID(ctx context.Context, id string) (*models.Market, error)
	Create(ctx context.Context, market *models.Market) error
	Update(ctx context.Context, market *models.Market) error
}

// Service exposes market operations.
type Service interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]MarketDTO, pagination.Meta, error)
	GetByID(ctx context.Context, id string) (*MarketDTO, error)
	Create(ctx context.Context, input CreateMarketInput) (*MarketDTO, error)
	Update(ctx context.Context, id string, input UpdateMarketInput) (*MarketDTO, error)
	Delete(ctx context.Context, id string) (*MarketDTO, error)
}

type service struct {
	repo     marketRepository
	cache    *cache.Store
	cacheCfg config.CacheConfig
}

// NewService builds a market service. The cache store may be nil.
func NewService(repo marketRepository, cacheStore *cache.Store, cacheCfg config.CacheConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("market repository required")
	}
	return &service{repo: repo, cache: cacheStore, cacheCfg: cacheCfg}, nil
}

type listPage struct {
	Data []MarketDTO     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]MarketDTO, pagination.Meta, error) {
	keyParts := append(cache.PageKey(page.Page, page.Limit), "s", filters.Search, "f", filters.Focus, "a", boolKey(filters.Active))
	key, cacheable := s.cache.Key(ctx, cacheScope, keyParts...)
	if cacheable {
		var cached listPage
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached.Data, cached.Meta, nil
		}
	}

	rows, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list markets")
	}

	dtos := FromModels(rows)
	meta := pagination.NewMeta(page, total)

	if cacheable {
		s.cache.SetJSON(ctx, key, listPage{Data: dtos, Meta: meta}, s.cacheCfg.ListTTL)
	}

	return dtos, meta, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*MarketDTO, error) {
	key, cacheable := s.cache.Key(ctx, cacheScope, "id", id)
	if cacheable {
		var cached MarketDTO
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	market, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "market not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load market")
	}

	dto := FromModel(market)
	if cacheable {
		s.cache.SetJSON(ctx, key, dto, s.cacheCfg.DetailTTL)
	}
	return dto, nil
}

func (s *service) Create(ctx context.Context, input CreateMarketInput) (*MarketDTO, error) {
	market := input.ToModel()
	if err := s.repo.Create(ctx, market); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "market id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create market")
	}

	s.cache.Bump(ctx, cacheScope)
	return FromModel(market), nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateMarketInput) (*MarketDTO, error) {
	market, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "market not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load market")
	}

	applyMarketUpdate(market, input)

	if err := s.repo.Update(ctx, market); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update market")
	}

	s.cache.Bump(ctx, cacheScope)
	return FromModel(market), nil
}

func (s *service) Delete(ctx context.Context, id string) (*MarketDTO, error) {
	market, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "market not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load market")
	}

	// Soft delete: the row survives and stays retrievable by id.
	market.IsActive = false
	if err := s.repo.Update(ctx, market); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate market")
	}

	s.cache.Bump(ctx, cacheScope)
	return FromModel(market), nil
}

func applyMarketUpdate(market *models.Market, input UpdateMarketInput) {
	if input.Name != nil {
		market.Name = *input.Name
	}
	if input.ChineseName != nil {
		market.ChineseName = *input.ChineseName
	}
	if input.Location != nil {
		market.Location = *input.Location
	}
	if input.Latitude != nil {
		market.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		market.Longitude = *input.Longitude
	}
	if input.Established != nil {
		market.Established = *input.Established
	}
	if input.ResearchFocus != nil {
		market.ResearchFocus = *input.ResearchFocus
	}
	if input.Description != nil {
		market.Description = *input.Description
	}
	if input.AnalyticalNote != nil {
		market.AnalyticalNote = *input.AnalyticalNote
	}
	if input.KeyFindings != nil {
		market.KeyFindings = pq.StringArray(append([]string{}, (*input.KeyFindings)...))
	}
	if input.Image != nil {
		market.Image = *input.Image
	}
	if input.IsActive != nil {
		market.IsActive = *input.IsActive
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
