package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProgramRequest represents the request payload for creating an affiliate program
type CreateProgramRequest struct {
	ProgramName           string           `json:"program_name" validate:"required,min=3,max=255" example:"Summer Fashion Sale"`
	Description           *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	PromotionText         *string          `json:"promotion_text,omitempty" validate:"omitempty,max=5000"`
	CategoryID            *uint            `json:"category_id,omitempty" example:"3"`
	LandingPageURL        string           `json:"landing_page_url" validate:"required,url,max=2048" example:"https://shop.example.com/summer"`
	CommissionType        string           `json:"commission_type" validate:"required,oneof=cpa cpc hybrid" example:"cpa"`
	CommissionAmount      *decimal.Decimal `json:"commission_amount,omitempty" example:"500"`
	CommissionRate        *decimal.Decimal `json:"commission_rate,omitempty" example:"5.00"`
	CookieDurationDays    *int             `json:"cookie_duration_days,omitempty" validate:"omitempty,min=1,max=365" example:"30"`
	ConversionConditions  *string          `json:"conversion_conditions,omitempty" validate:"omitempty,max=5000"`
	DeniedConditions      *string          `json:"denied_conditions,omitempty" validate:"omitempty,max=5000"`
	AutoApprovePublishers bool             `json:"auto_approve_publishers" example:"false"`
	Visibility            string           `json:"visibility,omitempty" validate:"omitempty,oneof=public private" example:"public"`
}

// ProgramDTO represents a program in API responses
type ProgramDTO struct {
	ID                    uint             `json:"id" example:"42"`
	ProgramName           string           `json:"program_name" example:"Summer Fashion Sale"`
	ProgramCode           string           `json:"program_code" example:"PRG4T7QZ1"`
	LandingPageURL        string           `json:"landing_page_url" example:"https://shop.example.com/summer"`
	CommissionType        string           `json:"commission_type" example:"cpa"`
	CommissionAmount      *decimal.Decimal `json:"commission_amount,omitempty" example:"500"`
	CommissionRate        *decimal.Decimal `json:"commission_rate,omitempty" example:"5.00"`
	CookieDurationDays    int              `json:"cookie_duration_days" example:"30"`
	AutoApprovePublishers bool             `json:"auto_approve_publishers" example:"false"`
	Status                string           `json:"status" example:"draft"`
	Visibility            string           `json:"visibility" example:"public"`
	CreatedAt             string           `json:"created_at" example:"2026-01-15T10:30:00Z"`
}
