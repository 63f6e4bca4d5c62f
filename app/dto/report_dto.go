package dto

import "github.com/shopspring/decimal"

// SummaryReportRequest carries the optional reporting window as query parameters
type SummaryReportRequest struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02" example:"2026-01-01"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02" example:"2026-01-31"`
}

// SummaryReportDTO aggregates tracking performance for the requesting principal
type SummaryReportDTO struct {
	TotalClicks         int64           `json:"total_clicks" example:"15230"`
	TotalConversions    int64           `json:"total_conversions" example:"412"`
	ApprovedConversions int64           `json:"approved_conversions" example:"301"`
	SaleTotal           decimal.Decimal `json:"sale_total" example:"5273600"`
	CommissionTotal     decimal.Decimal `json:"commission_total" example:"263680"`
	// ConversionRate is conversions per click as a percentage.
	ConversionRate decimal.Decimal `json:"conversion_rate" example:"2.71"`
	// EPC is commission earned per click.
	EPC  decimal.Decimal `json:"epc" example:"17.31"`
	From *string         `json:"from,omitempty" example:"2026-01-01"`
	To   *string         `json:"to,omitempty" example:"2026-01-31"`
}
