package models

import "time"

// Advertiser is the merchant profile that owns Programs
type Advertiser struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;uniqueIndex:uk_advertisers_user_id" json:"user_id"`
	CompanyName        string     `gorm:"size:255;not null" json:"company_name"`
	CompanyNameKana    *string    `gorm:"size:255" json:"company_name_kana,omitempty"`
	RepresentativeName *string    `gorm:"size:255" json:"representative_name,omitempty"`
	PostalCode         *string    `gorm:"size:10" json:"postal_code,omitempty"`
	Address            *string    `gorm:"type:text" json:"address,omitempty"`
	Phone              *string    `gorm:"size:20" json:"phone,omitempty"`
	WebsiteURL         *string    `gorm:"type:text" json:"website_url,omitempty"`
	LogoURL            *string    `gorm:"type:text" json:"logo_url,omitempty"`
	BusinessType       *string    `gorm:"size:50" json:"business_type,omitempty"`
	Status             string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Programs []Program `gorm:"foreignKey:AdvertiserID" json:"programs,omitempty"`
}

// TableName returns the table name for Advertiser
func (Advertiser) TableName() string { return "advertisers" }

// AdvertiserFilter provides filter fields for repository queries
type AdvertiserFilter struct {
	ID            *uint
	UserID        *uint
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
