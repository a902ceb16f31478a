package models

import (
	"time"

	"github.com/lib/pq"
)

// Vendor represents a stall or business operating inside one or more markets.
type Vendor struct {
	ID           string         `gorm:"primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	ChineseName  string         `gorm:"column:chinese_name"`
	Description  string         `gorm:"column:description"`
	Latitude     float64        `gorm:"column:latitude;not null"`
	Longitude    float64        `gorm:"column:longitude;not null"`
	Specialties  pq.StringArray `gorm:"column:specialties;type:text[]"`
	Images       pq.StringArray `gorm:"column:images;type:text[]"`
	Phone        *string        `gorm:"column:phone"`
	OpeningHours *string        `gorm:"column:opening_hours"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	Markets      []Market       `gorm:"many2many:market_vendors;joinForeignKey:VendorID;joinReferences:MarketID"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
