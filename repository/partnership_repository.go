package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adwave/asp-platform/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PartnershipRepositoryImpl implements PartnershipRepository
type PartnershipRepositoryImpl struct {
	*BaseRepository[models.Partnership, models.PartnershipFilter]
}

func NewPartnershipRepository(db *gorm.DB) PartnershipRepository {
	return &PartnershipRepositoryImpl{BaseRepository: NewBaseRepository[models.Partnership, models.PartnershipFilter](db)}
}

func (r *PartnershipRepositoryImpl) applyFilter(db *gorm.DB, f models.PartnershipFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.ProgramID != nil {
		db = db.Where("program_id = ?", *f.ProgramID)
	}
	if f.PublisherID != nil {
		db = db.Where("publisher_id = ?", *f.PublisherID)
	}
	if f.AffiliateCode != nil {
		db = db.Where("affiliate_code = ?", *f.AffiliateCode)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *PartnershipRepositoryImpl) ByFilter(ctx context.Context, filter models.PartnershipFilter, orderBy string, limit, offset int) ([]*models.Partnership, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Partnership{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Partnership
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PartnershipRepositoryImpl) Count(ctx context.Context, filter models.PartnershipFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Partnership{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PartnershipRepositoryImpl) Exists(ctx context.Context, filter models.PartnershipFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// ByAffiliateCode preloads the program because the click path always needs
// program status, landing URL, and cookie duration right after the lookup.
func (r *PartnershipRepositoryImpl) ByAffiliateCode(ctx context.Context, code string) (*models.Partnership, error) {
	db := r.getDB(ctx)
	var row models.Partnership
	err := db.Preload("Program").
		Where("affiliate_code = ?", code).
		Last(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *PartnershipRepositoryImpl) ByProgramAndPublisher(ctx context.Context, programID, publisherID uint) (*models.Partnership, error) {
	filter := models.PartnershipFilter{ProgramID: &programID, PublisherID: &publisherID}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *PartnershipRepositoryImpl) UpdateStatus(ctx context.Context, partnershipID uint, status models.PartnershipStatus, reviewedAt time.Time) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Partnership{}).
		Where("id = ?", partnershipID).
		Updates(map[string]any{
			"status":      status,
			"reviewed_at": reviewedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update partnership status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("partnership %d not found", partnershipID)
	}
	return nil
}

// IncrementClicks uses a relative UPDATE, never read-modify-write.
func (r *PartnershipRepositoryImpl) IncrementClicks(ctx context.Context, partnershipID uint, delta int64) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Partnership{}).
		Where("id = ?", partnershipID).
		UpdateColumn("total_clicks", gorm.Expr("total_clicks + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment partnership clicks: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("partnership %d not found", partnershipID)
	}
	return nil
}

// IncrementConversionStats bumps the conversion counter and earnings together.
func (r *PartnershipRepositoryImpl) IncrementConversionStats(ctx context.Context, partnershipID uint, delta int64, earnings decimal.Decimal) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Partnership{}).
		Where("id = ?", partnershipID).
		UpdateColumns(map[string]any{
			"total_conversions": gorm.Expr("total_conversions + ?", delta),
			"total_earnings":    gorm.Expr("total_earnings + ?", earnings),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to increment partnership conversion stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("partnership %d not found", partnershipID)
	}
	return nil
}
