package dto

import "github.com/shopspring/decimal"

// ApplyPartnershipRequest represents a publisher's application to a program
type ApplyPartnershipRequest struct {
	ProgramID uint    `json:"program_id" validate:"required" example:"42"`
	SiteID    *uint   `json:"site_id,omitempty" example:"7"`
	Message   *string `json:"message,omitempty" validate:"omitempty,max=2000" example:"I run a fashion review blog with 80k monthly readers."`
}

// ReviewPartnershipRequest represents an advertiser's decision on an application
type ReviewPartnershipRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject" example:"approve"`
}

// PartnershipDTO represents a partnership in API responses
type PartnershipDTO struct {
	ID               uint            `json:"id" example:"101"`
	ProgramID        uint            `json:"program_id" example:"42"`
	PublisherID      uint            `json:"publisher_id" example:"9"`
	AffiliateCode    string          `json:"affiliate_code" example:"AFFK3J9X2M1"`
	TrackingURL      string          `json:"tracking_url" example:"https://track.adwave.example/track/click/AFFK3J9X2M1"`
	Status           string          `json:"status" example:"approved"`
	TotalClicks      int64           `json:"total_clicks" example:"0"`
	TotalConversions int64           `json:"total_conversions" example:"0"`
	TotalEarnings    decimal.Decimal `json:"total_earnings" example:"0"`
	ReviewedAt       *string         `json:"reviewed_at,omitempty" example:"2026-01-16T09:00:00Z"`
	CreatedAt        string          `json:"created_at" example:"2026-01-15T10:30:00Z"`
}
