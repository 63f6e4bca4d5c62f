package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CommissionType determines how a program pays publishers
type CommissionType string

const (
	CommissionTypeCPA    CommissionType = "cpa"
	CommissionTypeCPC    CommissionType = "cpc"
	CommissionTypeHybrid CommissionType = "hybrid"
)

// String returns the string representation of the commission type
func (t CommissionType) String() string { return string(t) }

// Valid checks if the commission type is valid
func (t CommissionType) Valid() bool {
	switch t {
	case CommissionTypeCPA, CommissionTypeCPC, CommissionTypeHybrid:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CommissionType
func (t *CommissionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CommissionType(v)
	case []byte:
		*t = CommissionType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CommissionType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for CommissionType
func (t CommissionType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid CommissionType: %s", t)
	}
	return string(t), nil
}

// ProgramStatus represents the status of a program
type ProgramStatus string

const (
	ProgramStatusDraft      ProgramStatus = "draft"
	ProgramStatusActive     ProgramStatus = "active"
	ProgramStatusPaused     ProgramStatus = "paused"
	ProgramStatusTerminated ProgramStatus = "terminated"
)

// String returns the string representation of the status
func (s ProgramStatus) String() string { return string(s) }

// Valid checks if the status is valid
func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramStatusDraft, ProgramStatusActive, ProgramStatusPaused, ProgramStatusTerminated:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ProgramStatus
func (s *ProgramStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ProgramStatus(v)
	case []byte:
		*s = ProgramStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ProgramStatus", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for ProgramStatus
func (s ProgramStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ProgramStatus: %s", s)
	}
	return string(s), nil
}

// Program is an advertiser's offer definition
// ProgramCode is the unique token used by conversion reports
// Monetary columns use numeric to avoid floating-point drift in commission math
// Rollup counters are mutated only through the atomic repository increments
type Program struct {
	ID                   uint             `gorm:"primaryKey" json:"id"`
	AdvertiserID         uint             `gorm:"not null;index:idx_programs_advertiser_id" json:"advertiser_id"`
	ProgramName          string           `gorm:"size:255;not null" json:"program_name"`
	ProgramCode          string           `gorm:"size:32;not null;uniqueIndex:uk_programs_program_code" json:"program_code"`
	Description          *string          `gorm:"type:text" json:"description,omitempty"`
	PromotionText        *string          `gorm:"type:text" json:"promotion_text,omitempty"`
	CategoryID           *uint            `gorm:"index:idx_programs_category_id" json:"category_id,omitempty"`
	LandingPageURL       string           `gorm:"type:text;not null" json:"landing_page_url"`
	CommissionType       CommissionType   `gorm:"size:10;not null" json:"commission_type"`
	CommissionAmount     *decimal.Decimal `gorm:"type:numeric(12,2)" json:"commission_amount,omitempty"`
	CommissionRate       *decimal.Decimal `gorm:"type:numeric(5,2)" json:"commission_rate,omitempty"`
	CookieDurationDays   int              `gorm:"not null;default:30" json:"cookie_duration_days"`
	ConversionConditions *string          `gorm:"type:text" json:"conversion_conditions,omitempty"`
	DeniedConditions     *string          `gorm:"type:text" json:"denied_conditions,omitempty"`
	AutoApprovePublishers bool            `gorm:"not null;default:false" json:"auto_approve_publishers"`
	Status               ProgramStatus    `gorm:"size:20;not null;default:'draft'" json:"status"`
	Visibility           string           `gorm:"size:20;not null;default:'public'" json:"visibility"`
	TotalClicks          int64            `gorm:"not null;default:0" json:"total_clicks"`
	TotalConversions     int64            `gorm:"not null;default:0" json:"total_conversions"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_programs_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relationships
	Advertiser   Advertiser    `gorm:"foreignKey:AdvertiserID;constraint:OnDelete:CASCADE" json:"advertiser,omitempty"`
	Category     *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Partnerships []Partnership `gorm:"foreignKey:ProgramID" json:"partnerships,omitempty"`
}

// TableName returns the table name for Program
func (Program) TableName() string { return "programs" }

// ProgramFilter provides filter fields for repository queries
type ProgramFilter struct {
	ID            *uint
	AdvertiserID  *uint
	ProgramCode   *string
	CategoryID    *uint
	Status        *ProgramStatus
	Visibility    *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
