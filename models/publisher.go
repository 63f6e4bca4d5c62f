package models

import "time"

// Publisher is the affiliate profile that owns Partnerships and sites
type Publisher struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;uniqueIndex:uk_publishers_user_id" json:"user_id"`
	PublisherType string     `gorm:"size:20;not null;default:'individual'" json:"publisher_type"`
	FirstName     *string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName      *string    `gorm:"size:100" json:"last_name,omitempty"`
	CompanyName   *string    `gorm:"size:255" json:"company_name,omitempty"`
	PostalCode    *string    `gorm:"size:10" json:"postal_code,omitempty"`
	Address       *string    `gorm:"type:text" json:"address,omitempty"`
	Phone         *string    `gorm:"size:20" json:"phone,omitempty"`
	Rank          string     `gorm:"size:20;not null;default:'regular'" json:"rank"`
	Status        string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relationships
	User         User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Sites        []PublisherSite `gorm:"foreignKey:PublisherID" json:"sites,omitempty"`
	Partnerships []Partnership   `gorm:"foreignKey:PublisherID" json:"partnerships,omitempty"`
}

// TableName returns the table name for Publisher
func (Publisher) TableName() string { return "publishers" }

// PublisherFilter provides filter fields for repository queries
type PublisherFilter struct {
	ID            *uint
	UserID        *uint
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// PublisherSite is one media property (blog, app, mail magazine) a publisher promotes on
type PublisherSite struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PublisherID uint       `gorm:"not null;index:idx_publisher_sites_publisher_id" json:"publisher_id"`
	SiteName    string     `gorm:"size:255;not null" json:"site_name"`
	SiteURL     string     `gorm:"type:text;not null" json:"site_url"`
	SiteType    string     `gorm:"size:30;not null;default:'blog'" json:"site_type"`
	CategoryID  *uint      `gorm:"index:idx_publisher_sites_category_id" json:"category_id,omitempty"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	MonthlyPV   *int64     `gorm:"column:monthly_pv" json:"monthly_pv,omitempty"`
	MonthlyUU   *int64     `gorm:"column:monthly_uu" json:"monthly_uu,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relationships
	Publisher Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"publisher,omitempty"`
}

// TableName returns the table name for PublisherSite
func (PublisherSite) TableName() string { return "publisher_sites" }

// PublisherSiteFilter provides filter fields for repository queries
type PublisherSiteFilter struct {
	ID          *uint
	PublisherID *uint
	Status      *string
}
