package businessflow

import (
	"context"
	"errors"
	"strings"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/config"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/adwave/asp-platform/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConversionFlow matches advertiser postbacks to recorded clicks and books commissions.
// Attribution requires the explicit click id; there is no cookie or session fallback.
type ConversionFlow interface {
	ReportConversion(ctx context.Context, request *dto.ReportConversionRequest, metadata *ClientMetadata) (*dto.ReportConversionResponse, error)
}

// ConversionFlowImpl implements the conversion business flow
type ConversionFlowImpl struct {
	programRepo     repository.ProgramRepository
	clickRepo       repository.ClickRepository
	conversionRepo  repository.ConversionRepository
	partnershipRepo repository.PartnershipRepository
	db              *gorm.DB
	trackingConfig  config.TrackingConfig
}

// NewConversionFlow creates a new conversion flow instance
func NewConversionFlow(
	programRepo repository.ProgramRepository,
	clickRepo repository.ClickRepository,
	conversionRepo repository.ConversionRepository,
	partnershipRepo repository.PartnershipRepository,
	db *gorm.DB,
	trackingConfig config.TrackingConfig,
) ConversionFlow {
	return &ConversionFlowImpl{
		programRepo:     programRepo,
		clickRepo:       clickRepo,
		conversionRepo:  conversionRepo,
		partnershipRepo: partnershipRepo,
		db:              db,
		trackingConfig:  trackingConfig,
	}
}

func (f *ConversionFlowImpl) ReportConversion(ctx context.Context, request *dto.ReportConversionRequest, metadata *ClientMetadata) (*dto.ReportConversionResponse, error) {
	program, err := f.programRepo.ByProgramCode(ctx, strings.TrimSpace(request.ProgramCode))
	if err != nil {
		return nil, NewBusinessError("PROGRAM_LOOKUP_FAILED", "Failed to lookup program", err)
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	clickID := strings.TrimSpace(request.ClickID)
	if clickID == "" {
		return nil, ErrNoAttributableClick
	}
	click, err := f.clickRepo.ByClickIDWithPartnership(ctx, clickID)
	if err != nil {
		return nil, NewBusinessError("CLICK_LOOKUP_FAILED", "Failed to lookup click", err)
	}
	// A click on another program's partnership never attributes here.
	if click == nil || click.Partnership.ProgramID != program.ID {
		return nil, ErrNoAttributableClick
	}

	// Fast rejection only; the unique index on the dedup key is the authority
	// when two postbacks for the same click race past this check.
	if !f.trackingConfig.AllowMultipleConversionsPerClick {
		exists, err := f.conversionRepo.ExistsForClick(ctx, click.ID)
		if err != nil {
			return nil, NewBusinessError("CONVERSION_DEDUP_FAILED", "Failed to check for existing conversion", err)
		}
		if exists {
			return nil, ErrDuplicateConversion
		}
	}

	saleAmount := decimal.Zero
	if request.SaleAmount != nil {
		saleAmount = *request.SaleAmount
	}
	if saleAmount.IsNegative() {
		return nil, ErrSaleAmountInvalid
	}

	// Commission is computed once here and never recomputed.
	commission := CalculateCommission(program, saleAmount)

	conversionType := request.ConversionType
	if conversionType == "" {
		conversionType = utils.ConversionTypeSale
	}

	conversion := &models.Conversion{
		ConversionID:     "cv_" + uuid.New().String(),
		ClickID:          click.ID,
		PartnershipID:    click.PartnershipID,
		ProgramID:        program.ID,
		OrderID:          request.OrderID,
		ConversionType:   conversionType,
		SaleAmount:       saleAmount,
		CommissionAmount: commission,
		Items:            models.ConversionItems(request.Items),
		Status:           models.ConversionStatusPending,
		IPAddress:        metadata.IPAddress,
		UserAgent:        metadata.UserAgent,
		ConvertedAt:      utils.UTCNow(),
	}
	if !f.trackingConfig.AllowMultipleConversionsPerClick {
		conversion.DedupKey = utils.ToPtr(click.ClickID)
	}

	// The conversion row and both rollups commit or roll back together.
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.conversionRepo.Save(txCtx, conversion); err != nil {
			return err
		}
		if err := f.partnershipRepo.IncrementConversionStats(txCtx, click.PartnershipID, 1, commission); err != nil {
			return err
		}
		return f.programRepo.IncrementConversions(txCtx, program.ID, 1)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateConversion
		}
		return nil, NewBusinessError("CONVERSION_RECORD_FAILED", "Failed to record conversion", err)
	}

	return &dto.ReportConversionResponse{
		ConversionID:     conversion.ConversionID,
		Status:           conversion.Status.String(),
		CommissionAmount: commission,
	}, nil
}
