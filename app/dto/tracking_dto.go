package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ReportConversionRequest represents the advertiser-side conversion postback payload
type ReportConversionRequest struct {
	ProgramCode    string           `json:"program_code" validate:"required,min=9,max=32" example:"PRG4T7QZ1"`
	ClickID        string           `json:"click_id" validate:"omitempty,max=64" example:"clk_1755000000000_k3j9x2m1q"`
	OrderID        *string          `json:"order_id,omitempty" validate:"omitempty,max=128" example:"ORD-20260815-001"`
	ConversionType string           `json:"conversion_type,omitempty" validate:"omitempty,oneof=sale lead signup" example:"sale"`
	SaleAmount     *decimal.Decimal `json:"sale_amount,omitempty" example:"12800"`
	Items          json.RawMessage  `json:"items,omitempty"`
}

// ReportConversionResponse represents the successful conversion response payload
type ReportConversionResponse struct {
	ConversionID     string          `json:"conversion_id" example:"cv_550e8400-e29b-41d4-a716-446655440000"`
	Status           string          `json:"status" example:"pending"`
	CommissionAmount decimal.Decimal `json:"commission_amount" example:"640"`
}

// Common error codes for tracking operations
const (
	ErrorProgramNotFound     = "PROGRAM_NOT_FOUND"
	ErrorNoAttributableClick = "NO_ATTRIBUTABLE_CLICK"
	ErrorDuplicateConversion = "DUPLICATE_CONVERSION"
)
