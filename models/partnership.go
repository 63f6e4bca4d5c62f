package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PartnershipStatus represents the review status of a partnership
type PartnershipStatus string

const (
	PartnershipStatusPending  PartnershipStatus = "pending"
	PartnershipStatusApproved PartnershipStatus = "approved"
	PartnershipStatusRejected PartnershipStatus = "rejected"
)

// String returns the string representation of the status
func (s PartnershipStatus) String() string { return string(s) }

// Valid checks if the status is valid
func (s PartnershipStatus) Valid() bool {
	switch s {
	case PartnershipStatusPending, PartnershipStatusApproved, PartnershipStatusRejected:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PartnershipStatus
func (s *PartnershipStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PartnershipStatus(v)
	case []byte:
		*s = PartnershipStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PartnershipStatus", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for PartnershipStatus
func (s PartnershipStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid PartnershipStatus: %s", s)
	}
	return string(s), nil
}

// Partnership is an approved relationship between one publisher and one program
// for one site. AffiliateCode is globally unique and immutable once issued; only
// approved partnerships may record clicks.
type Partnership struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ProgramID     uint              `gorm:"not null;index:idx_partnerships_program_id;uniqueIndex:uk_partnerships_program_publisher" json:"program_id"`
	PublisherID   uint              `gorm:"not null;index:idx_partnerships_publisher_id;uniqueIndex:uk_partnerships_program_publisher" json:"publisher_id"`
	SiteID        *uint             `gorm:"index:idx_partnerships_site_id" json:"site_id,omitempty"`
	AffiliateCode string            `gorm:"size:32;not null;uniqueIndex:uk_partnerships_affiliate_code" json:"affiliate_code"`
	TrackingURL   string            `gorm:"type:text;not null" json:"tracking_url"`
	Status        PartnershipStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Message       *string           `gorm:"type:text" json:"message,omitempty"`
	ReviewedAt    *time.Time        `json:"reviewed_at,omitempty"`

	TotalClicks      int64           `gorm:"not null;default:0" json:"total_clicks"`
	TotalConversions int64           `gorm:"not null;default:0" json:"total_conversions"`
	TotalEarnings    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_earnings"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_partnerships_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relationships
	Program   Program        `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"program,omitempty"`
	Publisher Publisher      `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"publisher,omitempty"`
	Site      *PublisherSite `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Clicks    []Click        `gorm:"foreignKey:PartnershipID" json:"clicks,omitempty"`
}

// TableName returns the table name for Partnership
func (Partnership) TableName() string { return "partnerships" }

// PartnershipFilter provides filter fields for repository queries
type PartnershipFilter struct {
	ID            *uint
	ProgramID     *uint
	PublisherID   *uint
	AffiliateCode *string
	Status        *PartnershipStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
