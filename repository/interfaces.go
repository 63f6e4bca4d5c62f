// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/adwave/asp-platform/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for platform accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateStatus(ctx context.Context, userID uint, status models.UserStatus) error
}

// AdvertiserRepository defines operations for advertiser profiles
type AdvertiserRepository interface {
	Repository[models.Advertiser, models.AdvertiserFilter]
	ByUserID(ctx context.Context, userID uint) (*models.Advertiser, error)
}

// PublisherRepository defines operations for publisher profiles
type PublisherRepository interface {
	Repository[models.Publisher, models.PublisherFilter]
	ByUserID(ctx context.Context, userID uint) (*models.Publisher, error)
}

// PublisherSiteRepository defines operations for registered publisher sites
type PublisherSiteRepository interface {
	Repository[models.PublisherSite, models.PublisherSiteFilter]
	ListByPublisher(ctx context.Context, publisherID uint) ([]*models.PublisherSite, error)
}

// CategoryRepository defines operations for program categories
type CategoryRepository interface {
	Repository[models.Category, models.CategoryFilter]
	BySlug(ctx context.Context, slug string) (*models.Category, error)
}

// ProgramRepository defines operations for advertiser programs
type ProgramRepository interface {
	Repository[models.Program, models.ProgramFilter]
	ByProgramCode(ctx context.Context, code string) (*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	UpdateStatus(ctx context.Context, programID uint, status models.ProgramStatus) error
	// IncrementClicks bumps the rollup counter with a relative UPDATE so
	// concurrent writers never lose increments.
	IncrementClicks(ctx context.Context, programID uint, delta int64) error
	IncrementConversions(ctx context.Context, programID uint, delta int64) error
}

// PartnershipRepository defines operations for publisher-program partnerships
type PartnershipRepository interface {
	Repository[models.Partnership, models.PartnershipFilter]
	ByAffiliateCode(ctx context.Context, code string) (*models.Partnership, error)
	ByProgramAndPublisher(ctx context.Context, programID, publisherID uint) (*models.Partnership, error)
	UpdateStatus(ctx context.Context, partnershipID uint, status models.PartnershipStatus, reviewedAt time.Time) error
	IncrementClicks(ctx context.Context, partnershipID uint, delta int64) error
	// IncrementConversionStats bumps the conversion counter and adds the
	// commission amount to total earnings in one UPDATE.
	IncrementConversionStats(ctx context.Context, partnershipID uint, delta int64, earnings decimal.Decimal) error
}

// ClickRepository defines operations for recorded clicks
type ClickRepository interface {
	Repository[models.Click, models.ClickFilter]
	ByClickID(ctx context.Context, clickID string) (*models.Click, error)
	// ByClickIDWithPartnership loads the click plus its partnership and the
	// partnership's program in one query for the conversion path.
	ByClickIDWithPartnership(ctx context.Context, clickID string) (*models.Click, error)
}

// ConversionTotals is an aggregate over a set of conversions
type ConversionTotals struct {
	Count           int64
	ApprovedCount   int64
	SaleTotal       decimal.Decimal
	CommissionTotal decimal.Decimal
}

// ConversionRepository defines operations for attributed conversions
type ConversionRepository interface {
	Repository[models.Conversion, models.ConversionFilter]
	ByConversionID(ctx context.Context, conversionID string) (*models.Conversion, error)
	ExistsForClick(ctx context.Context, clickID uint) (bool, error)
	UpdateStatus(ctx context.Context, conversionID uint, status models.ConversionStatus) error
	Totals(ctx context.Context, filter models.ConversionFilter) (*ConversionTotals, error)
	// ListWithRelations preloads click, partnership, and program rows for
	// report and export rendering.
	ListWithRelations(ctx context.Context, filter models.ConversionFilter, orderBy string, limit, offset int) ([]*models.Conversion, error)
}
