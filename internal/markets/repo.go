package markets

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

// ListFilters narrows a market listing.
type ListFilters struct {
	Search string
	Focus  string
	Active *bool
}

// Repository handles market persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to market operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of markets plus the filtered total.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Market, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Market{})

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR chinese_name LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}
	if filters.Focus != "" {
		query = query.Where("research_focus LIKE ?", "%"+filters.Focus+"%")
	}
	if filters.Active != nil {
		query = query.Where("is_active = ?", *filters.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Market
	if err := query.
		Preload("Vendors").
		Order("name ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// FindByID loads a market with its vendor associations. Soft-deleted rows
// stay retrievable by direct lookup.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Market, error) {
	var market models.Market
	if err := r.db.WithContext(ctx).
		Preload("Vendors").
		Where("id = ?", id).
		First(&market).Error; err != nil {
		return nil, err
	}
	return &market, nil
}

// Create persists a new market row.
func (r *Repository) Create(ctx context.Context, market *models.Market) error {
	if market == nil {
		return fmt.Errorf("market is required")
	}
	return r.db.WithContext(ctx).Create(market).Error
}

// Update saves the provided market.
func (r *Repository) Update(ctx context.Context, market *models.Market) error {
	if market == nil {
		return fmt.Errorf("market is required")
	}
	return r.db.WithContext(ctx).Omit("Vendors").Save(market).Error
}
