package models

import (
	"time"

	"github.com/adwave/asp-platform/utils"
)

// Click is one recorded visit through a tracking link.
// ClickID is globally unique; rows are created once and never mutated.
type Click struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	ClickID       string           `gorm:"size:64;not null;uniqueIndex:uk_clicks_click_id" json:"click_id"`
	PartnershipID uint             `gorm:"not null;index:idx_clicks_partnership_id" json:"partnership_id"`
	CreativeID    *string          `gorm:"size:64" json:"creative_id,omitempty"`
	SubID1        *string          `gorm:"size:128" json:"sub_id1,omitempty"`
	SubID2        *string          `gorm:"size:128" json:"sub_id2,omitempty"`
	SubID3        *string          `gorm:"size:128" json:"sub_id3,omitempty"`
	IPAddress     string           `gorm:"size:64;not null" json:"ip_address"`
	UserAgent     string           `gorm:"type:text;not null" json:"user_agent"`
	RefererURL    string           `gorm:"type:text;not null;default:''" json:"referer_url"`
	LandingURL    string           `gorm:"type:text;not null" json:"landing_url"`
	DeviceType    utils.DeviceType `gorm:"size:10;not null;default:'other'" json:"device_type"`

	ClickedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_clicks_clicked_at" json:"clicked_at"`

	// Relationships
	Partnership Partnership `gorm:"foreignKey:PartnershipID;constraint:OnDelete:CASCADE" json:"partnership,omitempty"`
}

// TableName returns the table name for Click
func (Click) TableName() string { return "clicks" }

// ClickFilter provides filter fields for repository queries
type ClickFilter struct {
	ID            *uint
	ClickID       *string
	PartnershipID *uint
	PublisherID   *uint // joins partnerships
	AdvertiserID  *uint // joins partnerships and programs
	ProgramID     *uint // joins partnerships
	DeviceType    *utils.DeviceType
	ClickedAfter  *time.Time
	ClickedBefore *time.Time
}
