package vendors

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

// ErrMarketNotFound marks a create that referenced a nonexistent market.
var ErrMarketNotFound = errors.New("market not found")

// ListFilters narrows a vendor listing.
type ListFilters struct {
	Search    string
	MarketID  string
	Specialty string
	Active    *bool
}

// Repository handles vendor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of vendors plus the filtered total. The market
// filter joins through market_vendors so pagination.total reflects the
// filtered set, not the global vendor count.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Vendor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Vendor{})

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("vendors.name LIKE ? OR vendors.chinese_name LIKE ? OR vendors.description LIKE ?", pattern, pattern, pattern)
	}
	if filters.MarketID != "" {
		query = query.
			Joins("JOIN market_vendors mv ON mv.vendor_id = vendors.id").
			Where("mv.market_id = ?", filters.MarketID)
	}
	if filters.Specialty != "" {
		// Substring match against the serialized array keeps the filter
		// portable across postgres and sqlite. It is deliberately loose:
		// the term can match across word and element boundaries, so
		// "rice" also hits "price" and "rice noodles". The cast makes the
		// comparison legal on the postgres text[] column.
		query = query.Where("CAST(vendors.specialties AS TEXT) LIKE ?", "%"+filters.Specialty+"%")
	}
	if filters.Active != nil {
		query = query.Where("vendors.is_active = ?", *filters.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Vendor
	if err := query.
		Preload("Markets").
		Order("vendors.name ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// FindByID loads a vendor with its market associations.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).
		Preload("Markets").
		Where("id = ?", id).
		First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// CreateInMarket persists the vendor and its join record in one
// transaction. ErrMarketNotFound is returned, with nothing written, when
// the market does not exist.
func (r *Repository) CreateInMarket(ctx context.Context, vendor *models.Vendor, marketID string) error {
	if vendor == nil {
		return fmt.Errorf("vendor is required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var market models.Market
		if err := tx.Select("id").Where("id = ?", marketID).First(&market).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMarketNotFound
			}
			return err
		}

		if err := tx.Omit("Markets").Create(vendor).Error; err != nil {
			return err
		}

		return tx.Create(&models.MarketVendor{
			MarketID: marketID,
			VendorID: vendor.ID,
		}).Error
	})
}

// Update saves the provided vendor.
func (r *Repository) Update(ctx context.Context, vendor *models.Vendor) error {
	if vendor == nil {
		return fmt.Errorf("vendor is required")
	}
	return r.db.WithContext(ctx).Omit("Markets").Save(vendor).Error
}
