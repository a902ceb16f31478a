package models

import (
	"time"

	"github.com/google/uuid"
)

// Reference is a bibliography entry backing the research pages.
type Reference struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Authors     string    `gorm:"column:authors;not null"`
	Year        int       `gorm:"column:year;not null"`
	Title       string    `gorm:"column:title;not null"`
	Publication string    `gorm:"column:publication"`
	DOI         *string   `gorm:"column:doi"`
	URL         *string   `gorm:"column:url"`
	Category    string    `gorm:"column:category;not null"`
	Annotation  string    `gorm:"column:annotation"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName avoids the reserved word "references".
func (Reference) TableName() string {
	return "bibliography_references"
}
