package references

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/internal/cache"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

const cacheScope = "references"

// ReferenceDTO is the API shape of a bibliography entry.
type ReferenceDTO struct {
	ID          string    `json:"id"`
	Authors     string    `json:"authors"`
	Year        int       `json:"year"`
	Title       string    `json:"title"`
	Publication string    `json:"publication"`
	DOI         *string   `json:"doi,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Category    string    `json:"category"`
	Annotation  string    `json:"annotation"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListFilters narrows a bibliography listing.
type ListFilters struct {
	Category string
	Search   string
}

// Repository handles bibliography persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of references, newest publications first.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Reference, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Reference{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("authors LIKE ? OR title LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Reference
	if err := query.
		Order("year DESC, authors ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

type referenceRepository interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Reference, int64, error)
}

// Service exposes bibliography reads.
type Service interface {
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]ReferenceDTO, pagination.Meta, error)
}

type service struct {
	repo     referenceRepository
	cache    *cache.Store
	cacheCfg config.CacheConfig
}

// NewService builds a bibliography service. The cache store may be nil.
func NewService(repo referenceRepository, cacheStore *cache.Store, cacheCfg config.CacheConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reference repository required")
	}
	return &service{repo: repo, cache: cacheStore, cacheCfg: cacheCfg}, nil
}

type listPage struct {
	Data []ReferenceDTO  `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]ReferenceDTO, pagination.Meta, error) {
	keyParts := append(cache.PageKey(page.Page, page.Limit), "c", filters.Category, "q", filters.Search)
	key, cacheable := s.cache.Key(ctx, cacheScope, keyParts...)
	if cacheable {
		var cached listPage
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached.Data, cached.Meta, nil
		}
	}

	rows, total, err := s.repo.List(ctx, filters, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list references")
	}

	dtos := make([]ReferenceDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, fromModel(&rows[i]))
	}
	meta := pagination.NewMeta(page, total)

	if cacheable {
		s.cache.SetJSON(ctx, key, listPage{Data: dtos, Meta: meta}, s.cacheCfg.ListTTL)
	}

	return dtos, meta, nil
}

func fromModel(m *models.Reference) ReferenceDTO {
	return ReferenceDTO{
		ID:          m.ID.String(),
		Authors:     m.Authors,
		Year:        m.Year,
		Title:       m.Title,
		Publication: m.Publication,
		DOI:         m.DOI,
		URL:         m.URL,
		Category:    m.Category,
		Annotation:  m.Annotation,
		CreatedAt:   m.CreatedAt,
	}
}
