package repository

import (
	"context"
	"fmt"

	"github.com/adwave/asp-platform/models"
	"gorm.io/gorm"
)

// ProgramRepositoryImpl implements ProgramRepository
type ProgramRepositoryImpl struct {
	*BaseRepository[models.Program, models.ProgramFilter]
}

func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &ProgramRepositoryImpl{BaseRepository: NewBaseRepository[models.Program, models.ProgramFilter](db)}
}

func (r *ProgramRepositoryImpl) applyFilter(db *gorm.DB, f models.ProgramFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.AdvertiserID != nil {
		db = db.Where("advertiser_id = ?", *f.AdvertiserID)
	}
	if f.ProgramCode != nil {
		db = db.Where("program_code = ?", *f.ProgramCode)
	}
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Visibility != nil {
		db = db.Where("visibility = ?", *f.Visibility)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *ProgramRepositoryImpl) ByFilter(ctx context.Context, filter models.ProgramFilter, orderBy string, limit, offset int) ([]*models.Program, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Program{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Program
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProgramRepositoryImpl) Count(ctx context.Context, filter models.ProgramFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Program{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProgramRepositoryImpl) Exists(ctx context.Context, filter models.ProgramFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *ProgramRepositoryImpl) ByProgramCode(ctx context.Context, code string) (*models.Program, error) {
	filter := models.ProgramFilter{ProgramCode: &code}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *ProgramRepositoryImpl) Update(ctx context.Context, program *models.Program) error {
	db := r.getDB(ctx)
	if err := db.Save(program).Error; err != nil {
		return fmt.Errorf("failed to update program %d: %w", program.ID, err)
	}
	return nil
}

func (r *ProgramRepositoryImpl) UpdateStatus(ctx context.Context, programID uint, status models.ProgramStatus) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Program{}).
		Where("id = ?", programID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update program status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("program %d not found", programID)
	}
	return nil
}

// IncrementClicks uses a relative UPDATE, never read-modify-write.
func (r *ProgramRepositoryImpl) IncrementClicks(ctx context.Context, programID uint, delta int64) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Program{}).
		Where("id = ?", programID).
		UpdateColumn("total_clicks", gorm.Expr("total_clicks + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment program clicks: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("program %d not found", programID)
	}
	return nil
}

func (r *ProgramRepositoryImpl) IncrementConversions(ctx context.Context, programID uint, delta int64) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Program{}).
		Where("id = ?", programID).
		UpdateColumn("total_conversions", gorm.Expr("total_conversions + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment program conversions: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("program %d not found", programID)
	}
	return nil
}
