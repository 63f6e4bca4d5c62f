package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// User account type constants
const (
	UserTypePublisher  = "publisher"
	UserTypeAdvertiser = "advertiser"
	UserTypeAdmin      = "admin"
)

// UserStatus represents the lifecycle status of a user account
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

// String returns the string representation of the status
func (s UserStatus) String() string { return string(s) }

// Valid checks if the status is valid
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusBanned:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for UserStatus
func (s *UserStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = UserStatus(v)
	case []byte:
		*s = UserStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into UserStatus", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for UserStatus
func (s UserStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid UserStatus: %s", s)
	}
	return string(s), nil
}

// User is a login identity; the role-specific profile lives on Advertiser or Publisher
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash    string     `gorm:"size:255;not null" json:"-"`
	UserType        string     `gorm:"size:20;not null;index:idx_users_user_type" json:"user_type"`
	Status          UserStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relationships
	Advertiser *Advertiser `gorm:"foreignKey:UserID" json:"advertiser,omitempty"`
	Publisher  *Publisher  `gorm:"foreignKey:UserID" json:"publisher,omitempty"`
}

// TableName returns the table name for User
func (User) TableName() string { return "users" }

// UserFilter provides filter fields for repository queries
type UserFilter struct {
	ID            *uint
	Email         *string
	UserType      *string
	Status        *UserStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
