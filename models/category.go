package models

import "time"

// Category groups programs and publisher sites for discovery
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex:uk_categories_slug" json:"slug"`
	Icon      *string   `gorm:"size:50" json:"icon,omitempty"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for Category
func (Category) TableName() string { return "categories" }

// CategoryFilter provides filter fields for repository queries
type CategoryFilter struct {
	ID   *uint
	Slug *string
	Name *string
}
