package vendors

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
)

// VendorDTO is the API shape of a vendor record with its market
// associations.
type VendorDTO struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	ChineseName  string             `json:"chineseName"`
	Description  string             `json:"description"`
	Latitude     float64            `json:"latitude"`
	Longitude    float64            `json:"longitude"`
	Specialties  []string           `json:"specialties"`
	Images       []string           `json:"images"`
	Phone        *string            `json:"phone,omitempty"`
	OpeningHours *string            `json:"openingHours,omitempty"`
	IsActive     bool               `json:"isActive"`
	Markets      []MarketSummaryDTO `json:"markets"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// MarketSummaryDTO is the compact market embedding inside vendor responses.
type MarketSummaryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ChineseName string  `json:"chineseName"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CreateVendorInput registers a vendor inside an existing market. The id is
// an optional slug; when omitted one is generated.
type CreateVendorInput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	MarketID     string   `json:"marketId" validate:"required"`
	ChineseName  string   `json:"chineseName"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude" validate:"required,latitude"`
	Longitude    *float64 `json:"longitude" validate:"required,longitude"`
	Specialties  []string `json:"specialties"`
	Images       []string `json:"images"`
	Phone        *string  `json:"phone"`
	OpeningHours *string  `json:"openingHours"`
}

// UpdateVendorInput applies a partial update; nil fields are left untouched.
type UpdateVendorInput struct {
	Name         *string   `json:"name"`
	ChineseName  *string   `json:"chineseName"`
	Description  *string   `json:"description"`
	Latitude     *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64  `json:"longitude" validate:"omitempty,longitude"`
	Specialties  *[]string `json:"specialties"`
	Images       *[]string `json:"images"`
	Phone        *string   `json:"phone"`
	OpeningHours *string   `json:"openingHours"`
	IsActive     *bool     `json:"isActive"`
}

// FromModel maps the persisted vendor into its API shape.
func FromModel(v *models.Vendor) *VendorDTO {
	if v == nil {
		return nil
	}

	dto := &VendorDTO{
		ID:           v.ID,
		Name:         v.Name,
		ChineseName:  v.ChineseName,
		Description:  v.Description,
		Latitude:     v.Latitude,
		Longitude:    v.Longitude,
		Specialties:  append([]string{}, v.Specialties...),
		Images:       append([]string{}, v.Images...),
		Phone:        cloneStringPtr(v.Phone),
		OpeningHours: cloneStringPtr(v.OpeningHours),
		IsActive:     v.IsActive,
		Markets:      make([]MarketSummaryDTO, 0, len(v.Markets)),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}

	for _, market := range v.Markets {
		dto.Markets = append(dto.Markets, MarketSummaryDTO{
			ID:          market.ID,
			Name:        market.Name,
			ChineseName: market.ChineseName,
			Location:    market.Location,
			Latitude:    market.Latitude,
			Longitude:   market.Longitude,
		})
	}

	return dto
}

// FromModels maps a page of vendors.
func FromModels(rows []models.Vendor) []VendorDTO {
	dtos := make([]VendorDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}

// ToModel prepares the GORM model for creation. New vendors start active.
func (c CreateVendorInput) ToModel() *models.Vendor {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	model := &models.Vendor{
		ID:           id,
		Name:         c.Name,
		ChineseName:  c.ChineseName,
		Description:  c.Description,
		Specialties:  pq.StringArray(append([]string{}, c.Specialties...)),
		Images:       pq.StringArray(append([]string{}, c.Images...)),
		Phone:        cloneStringPtr(c.Phone),
		OpeningHours: cloneStringPtr(c.OpeningHours),
		IsActive:     true,
	}
	if c.Latitude != nil {
		model.Latitude = *c.Latitude
	}
	if c.Longitude != nil {
		model.Longitude = *c.Longitude
	}
	return model
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
