package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ConversionStatus represents the review status of a conversion
type ConversionStatus string

const (
	ConversionStatusPending  ConversionStatus = "pending"
	ConversionStatusApproved ConversionStatus = "approved"
	ConversionStatusRejected ConversionStatus = "rejected"
)

// String returns the string representation of the status
func (s ConversionStatus) String() string { return string(s) }

// Valid checks if the status is valid
func (s ConversionStatus) Valid() bool {
	switch s {
	case ConversionStatusPending, ConversionStatusApproved, ConversionStatusRejected:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ConversionStatus
func (s *ConversionStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ConversionStatus(v)
	case []byte:
		*s = ConversionStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ConversionStatus", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for ConversionStatus
func (s ConversionStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ConversionStatus: %s", s)
	}
	return string(s), nil
}

// ConversionItems is the arbitrary item payload reported with a conversion
type ConversionItems json.RawMessage

// Value implements the driver.Valuer interface for ConversionItems
func (i ConversionItems) Value() (driver.Value, error) {
	if len(i) == 0 {
		return nil, nil
	}
	return []byte(i), nil
}

// Scan implements the sql.Scanner interface for ConversionItems
func (i *ConversionItems) Scan(value any) error {
	if value == nil {
		*i = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*i = ConversionItems(append([]byte(nil), v...))
	case string:
		*i = ConversionItems(v)
	default:
		return fmt.Errorf("cannot scan %T into ConversionItems", value)
	}
	return nil
}

// MarshalJSON renders the raw payload as-is
func (i ConversionItems) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("null"), nil
	}
	return []byte(i), nil
}

// UnmarshalJSON stores the raw payload as-is
func (i *ConversionItems) UnmarshalJSON(data []byte) error {
	*i = ConversionItems(append([]byte(nil), data...))
	return nil
}

// Conversion is one reported commercial outcome attributed to a click.
// It always references a pre-existing click; the commission amount is computed
// once at creation and never recomputed here.
type Conversion struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	ConversionID     string           `gorm:"size:64;not null;uniqueIndex:uk_conversions_conversion_id" json:"conversion_id"`
	ClickID          uint             `gorm:"not null;index:idx_conversions_click_id" json:"click_id"`
	// DedupKey carries the click id when at most one conversion per click may be
	// booked, NULL otherwise. The unique index rejects the loser of two
	// concurrent postbacks for the same click.
	DedupKey         *string          `gorm:"size:64;uniqueIndex:uk_conversions_dedup_key" json:"-"`
	PartnershipID    uint             `gorm:"not null;index:idx_conversions_partnership_id" json:"partnership_id"`
	ProgramID        uint             `gorm:"not null;index:idx_conversions_program_id" json:"program_id"`
	OrderID          *string          `gorm:"size:128" json:"order_id,omitempty"`
	ConversionType   string           `gorm:"size:30;not null;default:'sale'" json:"conversion_type"`
	SaleAmount       decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"sale_amount"`
	CommissionAmount decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"commission_amount"`
	Items            ConversionItems  `gorm:"type:jsonb" json:"items,omitempty"`
	Status           ConversionStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	IPAddress        string           `gorm:"size:64;not null;default:''" json:"ip_address"`
	UserAgent        string           `gorm:"type:text;not null;default:''" json:"user_agent"`

	ConvertedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_conversions_converted_at" json:"converted_at"`

	// Relationships
	Click       Click       `gorm:"foreignKey:ClickID" json:"click,omitempty"`
	Partnership Partnership `gorm:"foreignKey:PartnershipID" json:"partnership,omitempty"`
	Program     Program     `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

// TableName returns the table name for Conversion
func (Conversion) TableName() string { return "conversions" }

// ConversionFilter provides filter fields for repository queries
type ConversionFilter struct {
	ID              *uint
	ConversionID    *string
	ClickID         *uint
	PartnershipID   *uint
	ProgramID       *uint
	PublisherID     *uint // joins partnerships
	AdvertiserID    *uint // joins programs
	Status          *ConversionStatus
	ConvertedAfter  *time.Time
	ConvertedBefore *time.Time
}
