package businessflow

import (
	"context"
	"net/url"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/adwave/asp-platform/utils"
	"gorm.io/gorm"
)

const codeGenAttempts = 5

// ProgramFlow handles advertiser program management
type ProgramFlow interface {
	CreateProgram(ctx context.Context, principal *Principal, request *dto.CreateProgramRequest, metadata *ClientMetadata) (*dto.ProgramDTO, error)
}

// ProgramFlowImpl implements the program business flow
type ProgramFlowImpl struct {
	programRepo repository.ProgramRepository
	db          *gorm.DB
}

// NewProgramFlow creates a new program flow instance
func NewProgramFlow(programRepo repository.ProgramRepository, db *gorm.DB) ProgramFlow {
	return &ProgramFlowImpl{programRepo: programRepo, db: db}
}

func (f *ProgramFlowImpl) CreateProgram(ctx context.Context, principal *Principal, request *dto.CreateProgramRequest, metadata *ClientMetadata) (*dto.ProgramDTO, error) {
	if !principal.IsAdvertiser() {
		return nil, ErrAccessDenied
	}
	if err := f.validateCreateRequest(request); err != nil {
		return nil, NewBusinessError("PROGRAM_VALIDATION_FAILED", "Program validation failed", err)
	}

	code, err := f.uniqueProgramCode(ctx)
	if err != nil {
		return nil, err
	}

	cookieDays := utils.DefaultCookieDurationDays
	if request.CookieDurationDays != nil {
		cookieDays = *request.CookieDurationDays
	}
	visibility := request.Visibility
	if visibility == "" {
		visibility = "public"
	}

	program := &models.Program{
		AdvertiserID:          *principal.AdvertiserID,
		ProgramName:           request.ProgramName,
		ProgramCode:           code,
		Description:           request.Description,
		PromotionText:         request.PromotionText,
		CategoryID:            request.CategoryID,
		LandingPageURL:        request.LandingPageURL,
		CommissionType:        models.CommissionType(request.CommissionType),
		CommissionAmount:      request.CommissionAmount,
		CommissionRate:        request.CommissionRate,
		CookieDurationDays:    cookieDays,
		ConversionConditions:  request.ConversionConditions,
		DeniedConditions:      request.DeniedConditions,
		AutoApprovePublishers: request.AutoApprovePublishers,
		Status:                models.ProgramStatusActive,
		Visibility:            visibility,
		CreatedAt:             utils.UTCNow(),
		UpdatedAt:             utils.UTCNow(),
	}

	if err := f.programRepo.Save(ctx, program); err != nil {
		return nil, NewBusinessError("PROGRAM_CREATE_FAILED", "Failed to create program", err)
	}

	return toProgramDTO(program), nil
}

func (f *ProgramFlowImpl) validateCreateRequest(request *dto.CreateProgramRequest) error {
	if request.ProgramName == "" {
		return ErrProgramNameRequired
	}
	if request.LandingPageURL == "" {
		return ErrLandingPageURLRequired
	}
	if u, err := url.Parse(request.LandingPageURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrLandingPageURLInvalid
	}
	if !models.CommissionType(request.CommissionType).Valid() {
		return ErrCommissionTypeInvalid
	}
	if request.CommissionAmount == nil && request.CommissionRate == nil {
		return ErrCommissionTermsMissing
	}
	if request.CookieDurationDays != nil && (*request.CookieDurationDays < 1 || *request.CookieDurationDays > 365) {
		return ErrCookieDurationInvalid
	}
	return nil
}

// uniqueProgramCode generates a code not yet taken. The unique index is the
// final arbiter; the pre-check only keeps retries off the insert path.
func (f *ProgramFlowImpl) uniqueProgramCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenAttempts; i++ {
		code := utils.GenerateProgramCode()
		exists, err := f.programRepo.Exists(ctx, models.ProgramFilter{ProgramCode: &code})
		if err != nil {
			return "", NewBusinessError("PROGRAM_CODE_CHECK_FAILED", "Failed to check program code", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", NewBusinessError("PROGRAM_CODE_EXHAUSTED", "Failed to generate a unique program code", nil)
}

func toProgramDTO(program *models.Program) *dto.ProgramDTO {
	return &dto.ProgramDTO{
		ID:                    program.ID,
		ProgramName:           program.ProgramName,
		ProgramCode:           program.ProgramCode,
		LandingPageURL:        program.LandingPageURL,
		CommissionType:        program.CommissionType.String(),
		CommissionAmount:      program.CommissionAmount,
		CommissionRate:        program.CommissionRate,
		CookieDurationDays:    program.CookieDurationDays,
		AutoApprovePublishers: program.AutoApprovePublishers,
		Status:                program.Status.String(),
		Visibility:            program.Visibility,
		CreatedAt:             program.CreatedAt.Format(time.RFC3339),
	}
}
