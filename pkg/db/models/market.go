package models

import (
	"time"

	"github.com/lib/pq"
)

// Market represents a night-market site under study. The ID is a stable
// human-readable slug (e.g. "shilin-night-market") chosen by the research
// team, which is why creation accepts it from the client.
type Market struct {
	ID             string         `gorm:"primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	ChineseName    string         `gorm:"column:chinese_name;not null"`
	Location       string         `gorm:"column:location;not null"`
	Latitude       float64        `gorm:"column:latitude;not null"`
	Longitude      float64        `gorm:"column:longitude;not null"`
	Established    string         `gorm:"column:established;not null"`
	ResearchFocus  string         `gorm:"column:research_focus;not null"`
	Description    string         `gorm:"column:description;not null"`
	AnalyticalNote string         `gorm:"column:analytical_note;not null"`
	KeyFindings    pq.StringArray `gorm:"column:key_findings;type:text[]"`
	Image          string         `gorm:"column:image;not null"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	Vendors        []Vendor       `gorm:"many2many:market_vendors;joinForeignKey:MarketID;joinReferences:VendorID"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
