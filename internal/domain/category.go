package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is soft-disabled via IsActive, never removed.
type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:100" json:"name"`
	Slug         string    `gorm:"uniqueIndex;size:120" json:"slug"`
	IconURL      string    `gorm:"size:255" json:"icon_url"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int       `gorm:"type:int;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return nil
}
