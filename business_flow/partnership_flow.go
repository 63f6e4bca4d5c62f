package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/config"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/adwave/asp-platform/utils"
	"gorm.io/gorm"
)

// PartnershipFlow handles publisher applications and advertiser reviews
type PartnershipFlow interface {
	Apply(ctx context.Context, principal *Principal, request *dto.ApplyPartnershipRequest, metadata *ClientMetadata) (*dto.PartnershipDTO, error)
	Review(ctx context.Context, principal *Principal, partnershipID uint, request *dto.ReviewPartnershipRequest, metadata *ClientMetadata) (*dto.PartnershipDTO, error)
}

// PartnershipFlowImpl implements the partnership business flow
type PartnershipFlowImpl struct {
	partnershipRepo repository.PartnershipRepository
	programRepo     repository.ProgramRepository
	siteRepo        repository.PublisherSiteRepository
	db              *gorm.DB
	trackingConfig  config.TrackingConfig
}

// NewPartnershipFlow creates a new partnership flow instance
func NewPartnershipFlow(
	partnershipRepo repository.PartnershipRepository,
	programRepo repository.ProgramRepository,
	siteRepo repository.PublisherSiteRepository,
	db *gorm.DB,
	trackingConfig config.TrackingConfig,
) PartnershipFlow {
	return &PartnershipFlowImpl{
		partnershipRepo: partnershipRepo,
		programRepo:     programRepo,
		siteRepo:        siteRepo,
		db:              db,
		trackingConfig:  trackingConfig,
	}
}

// Apply creates a partnership application. The affiliate code is issued at
// application time and never changes afterwards.
func (f *PartnershipFlowImpl) Apply(ctx context.Context, principal *Principal, request *dto.ApplyPartnershipRequest, metadata *ClientMetadata) (*dto.PartnershipDTO, error) {
	if !principal.IsPublisher() {
		return nil, ErrAccessDenied
	}

	program, err := f.programRepo.ByID(ctx, request.ProgramID)
	if err != nil {
		return nil, NewBusinessError("PROGRAM_LOOKUP_FAILED", "Failed to lookup program", err)
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}
	if program.Status != models.ProgramStatusActive {
		return nil, ErrProgramNotActive
	}

	if request.SiteID != nil {
		site, err := f.siteRepo.ByID(ctx, *request.SiteID)
		if err != nil {
			return nil, NewBusinessError("SITE_LOOKUP_FAILED", "Failed to lookup publisher site", err)
		}
		if site == nil || site.PublisherID != *principal.PublisherID {
			return nil, ErrPublisherSiteNotFound
		}
	}

	existing, err := f.partnershipRepo.ByProgramAndPublisher(ctx, program.ID, *principal.PublisherID)
	if err != nil {
		return nil, NewBusinessError("PARTNERSHIP_LOOKUP_FAILED", "Failed to lookup partnership", err)
	}
	if existing != nil {
		return nil, ErrPartnershipAlreadyExists
	}

	code, err := f.uniqueAffiliateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := utils.UTCNow()
	partnership := &models.Partnership{
		ProgramID:     program.ID,
		PublisherID:   *principal.PublisherID,
		SiteID:        request.SiteID,
		AffiliateCode: code,
		TrackingURL:   fmt.Sprintf("%s/track/click/%s", f.trackingConfig.TrackingDomain, code),
		Status:        models.PartnershipStatusPending,
		Message:       request.Message,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if program.AutoApprovePublishers {
		partnership.Status = models.PartnershipStatusApproved
		partnership.ReviewedAt = &now
	}

	if err := f.partnershipRepo.Save(ctx, partnership); err != nil {
		return nil, NewBusinessError("PARTNERSHIP_CREATE_FAILED", "Failed to create partnership", err)
	}

	return toPartnershipDTO(partnership), nil
}

// Review approves or rejects a pending application. Only the advertiser owning
// the program may review it.
func (f *PartnershipFlowImpl) Review(ctx context.Context, principal *Principal, partnershipID uint, request *dto.ReviewPartnershipRequest, metadata *ClientMetadata) (*dto.PartnershipDTO, error) {
	if !principal.IsAdvertiser() && !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	partnership, err := f.partnershipRepo.ByID(ctx, partnershipID)
	if err != nil {
		return nil, NewBusinessError("PARTNERSHIP_LOOKUP_FAILED", "Failed to lookup partnership", err)
	}
	if partnership == nil {
		return nil, ErrPartnershipNotFound
	}

	if !principal.IsAdmin() {
		program, err := f.programRepo.ByID(ctx, partnership.ProgramID)
		if err != nil {
			return nil, NewBusinessError("PROGRAM_LOOKUP_FAILED", "Failed to lookup program", err)
		}
		if program == nil || program.AdvertiserID != *principal.AdvertiserID {
			return nil, ErrAccessDenied
		}
	}

	if partnership.Status != models.PartnershipStatusPending {
		return nil, ErrPartnershipNotPending
	}

	status := models.PartnershipStatusRejected
	if request.Action == "approve" {
		status = models.PartnershipStatusApproved
	}
	now := utils.UTCNow()
	if err := f.partnershipRepo.UpdateStatus(ctx, partnership.ID, status, now); err != nil {
		return nil, NewBusinessError("PARTNERSHIP_REVIEW_FAILED", "Failed to review partnership", err)
	}

	partnership.Status = status
	partnership.ReviewedAt = &now
	return toPartnershipDTO(partnership), nil
}

func (f *PartnershipFlowImpl) uniqueAffiliateCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenAttempts; i++ {
		code := utils.GenerateAffiliateCode()
		exists, err := f.partnershipRepo.Exists(ctx, models.PartnershipFilter{AffiliateCode: &code})
		if err != nil {
			return "", NewBusinessError("AFFILIATE_CODE_CHECK_FAILED", "Failed to check affiliate code", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", NewBusinessError("AFFILIATE_CODE_EXHAUSTED", "Failed to generate a unique affiliate code", nil)
}

func toPartnershipDTO(partnership *models.Partnership) *dto.PartnershipDTO {
	out := &dto.PartnershipDTO{
		ID:               partnership.ID,
		ProgramID:        partnership.ProgramID,
		PublisherID:      partnership.PublisherID,
		AffiliateCode:    partnership.AffiliateCode,
		TrackingURL:      partnership.TrackingURL,
		Status:           partnership.Status.String(),
		TotalClicks:      partnership.TotalClicks,
		TotalConversions: partnership.TotalConversions,
		TotalEarnings:    partnership.TotalEarnings,
		CreatedAt:        partnership.CreatedAt.Format(time.RFC3339),
	}
	if partnership.ReviewedAt != nil {
		reviewed := partnership.ReviewedAt.Format(time.RFC3339)
		out.ReviewedAt = &reviewed
	}
	return out
}
