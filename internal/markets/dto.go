package markets

import (
	"time"

	"github.com/lib/pq"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
)

// MarketDTO is the API shape of a night-market record, vendor summaries
// included.
type MarketDTO struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	ChineseName    string             `json:"chineseName"`
	Location       string             `json:"location"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	Established    string             `json:"established"`
	ResearchFocus  string             `json:"researchFocus"`
	Description    string             `json:"description"`
	AnalyticalNote string             `json:"analyticalNote"`
	KeyFindings    []string           `json:"keyFindings"`
	Image          string             `json:"image"`
	IsActive       bool               `json:"isActive"`
	Vendors        []VendorSummaryDTO `json:"vendors"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// VendorSummaryDTO is the compact vendor embedding inside market responses.
type VendorSummaryDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ChineseName string   `json:"chineseName"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Specialties []string `json:"specialties"`
	Images      []string `json:"images"`
}

// CreateMarketInput carries every field required to register a market. The
// id is a client-chosen slug, so it is part of the payload rather than
// generated server-side.
type CreateMarketInput struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	ChineseName    string   `json:"chineseName" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	Latitude       *float64 `json:"latitude" validate:"required,latitude"`
	Longitude      *float64 `json:"longitude" validate:"required,longitude"`
	Established    string   `json:"established" validate:"required"`
	ResearchFocus  string   `json:"researchFocus" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	AnalyticalNote string   `json:"analyticalNote" validate:"required"`
	KeyFindings    []string `json:"keyFindings" validate:"required,min=1"`
	Image          string   `json:"image" validate:"required"`
}

// UpdateMarketInput applies a partial update; nil fields are left untouched.
type UpdateMarketInput struct {
	Name           *string   `json:"name"`
	ChineseName    *string   `json:"chineseName"`
	Location       *string   `json:"location"`
	Latitude       *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64  `json:"longitude" validate:"omitempty,longitude"`
	Established    *string   `json:"established"`
	ResearchFocus  *string   `json:"researchFocus"`
	Description    *string   `json:"description"`
	AnalyticalNote *string   `json:"analyticalNote"`
	KeyFindings    *[]string `json:"keyFindings"`
	Image          *string   `json:"image"`
	IsActive       *bool     `json:"isActive"`
}

// FromModel maps the persisted market into its API shape.
func FromModel(m *models.Market) *MarketDTO {
	if m == nil {
		return nil
	}

	dto := &MarketDTO{
		ID:             m.ID,
		Name:           m.Name,
		ChineseName:    m.ChineseName,
		Location:       m.Location,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		Established:    m.Established,
		ResearchFocus:  m.ResearchFocus,
		Description:    m.Description,
		AnalyticalNote: m.AnalyticalNote,
		KeyFindings:    append([]string{}, m.KeyFindings...),
		Image:          m.Image,
		IsActive:       m.IsActive,
		Vendors:        make([]VendorSummaryDTO, 0, len(m.Vendors)),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	for _, vendor := range m.Vendors {
		dto.Vendors = append(dto.Vendors, VendorSummaryDTO{
			ID:          vendor.ID,
			Name:        vendor.Name,
			ChineseName: vendor.ChineseName,
			Description: vendor.Description,
			Latitude:    vendor.Latitude,
			Longitude:   vendor.Longitude,
			Specialties: append([]string{}, vendor.Specialties...),
			Images:      append([]string{}, vendor.Images...),
		})
	}

	return dto
}

// FromModels maps a page of markets.
func FromModels(rows []models.Market) []MarketDTO {
	dtos := make([]MarketDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}

// ToModel prepares the GORM model for creation. New markets start active.
func (c CreateMarketInput) ToModel() *models.Market {
	model := &models.Market{
		ID:             c.ID,
		Name:           c.Name,
		ChineseName:    c.ChineseName,
		Location:       c.Location,
		Established:    c.Established,
		ResearchFocus:  c.ResearchFocus,
		Description:    c.Description,
		AnalyticalNote: c.AnalyticalNote,
		KeyFindings:    pq.StringArray(append([]string{}, c.KeyFindings...)),
		Image:          c.Image,
		IsActive:       true,
	}
	if c.Latitude != nil {
		model.Latitude = *c.Latitude
	}
	if c.Longitude != nil {
		model.Longitude = *c.Longitude
	}
	return model
}
