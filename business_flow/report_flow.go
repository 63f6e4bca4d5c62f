package businessflow

import (
	"context"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/shopspring/decimal"
)

// ReportFlow produces tracking performance summaries scoped to the principal
type ReportFlow interface {
	Summary(ctx context.Context, principal *Principal, from, to *time.Time) (*dto.SummaryReportDTO, error)
}

// ReportFlowImpl implements the report business flow
type ReportFlowImpl struct {
	clickRepo      repository.ClickRepository
	conversionRepo repository.ConversionRepository
}

// NewReportFlow creates a new report flow instance
func NewReportFlow(clickRepo repository.ClickRepository, conversionRepo repository.ConversionRepository) ReportFlow {
	return &ReportFlowImpl{clickRepo: clickRepo, conversionRepo: conversionRepo}
}

func (f *ReportFlowImpl) Summary(ctx context.Context, principal *Principal, from, to *time.Time) (*dto.SummaryReportDTO, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrStartDateAfterEndDate
	}

	clickFilter := models.ClickFilter{ClickedAfter: from, ClickedBefore: to}
	conversionFilter := models.ConversionFilter{ConvertedAfter: from, ConvertedBefore: to}

	// Publishers and advertisers see only their own traffic; admins see everything.
	switch {
	case principal.IsPublisher():
		clickFilter.PublisherID = principal.PublisherID
		conversionFilter.PublisherID = principal.PublisherID
	case principal.IsAdvertiser():
		clickFilter.AdvertiserID = principal.AdvertiserID
		conversionFilter.AdvertiserID = principal.AdvertiserID
	case principal.IsAdmin():
	default:
		return nil, ErrAccessDenied
	}

	clicks, err := f.clickRepo.Count(ctx, clickFilter)
	if err != nil {
		return nil, NewBusinessError("REPORT_CLICKS_FAILED", "Failed to count clicks", err)
	}

	totals, err := f.conversionRepo.Totals(ctx, conversionFilter)
	if err != nil {
		return nil, NewBusinessError("REPORT_CONVERSIONS_FAILED", "Failed to aggregate conversions", err)
	}

	report := &dto.SummaryReportDTO{
		TotalClicks:         clicks,
		TotalConversions:    totals.Count,
		ApprovedConversions: totals.ApprovedCount,
		SaleTotal:           totals.SaleTotal,
		CommissionTotal:     totals.CommissionTotal,
		ConversionRate:      decimal.Zero,
		EPC:                 decimal.Zero,
	}
	if clicks > 0 {
		clickCount := decimal.NewFromInt(clicks)
		report.ConversionRate = decimal.NewFromInt(totals.Count).
			Mul(decimal.NewFromInt(100)).
			DivRound(clickCount, 2)
		report.EPC = totals.CommissionTotal.DivRound(clickCount, 2)
	}
	return report, nil
}
