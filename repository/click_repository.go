package repository

import (
	"context"
	"errors"

	"github.com/adwave/asp-platform/models"
	"gorm.io/gorm"
)

// ClickRepositoryImpl implements ClickRepository
type ClickRepositoryImpl struct {
	*BaseRepository[models.Click, models.ClickFilter]
}

func NewClickRepository(db *gorm.DB) ClickRepository {
	return &ClickRepositoryImpl{BaseRepository: NewBaseRepository[models.Click, models.ClickFilter](db)}
}

func (r *ClickRepositoryImpl) applyFilter(db *gorm.DB, f models.ClickFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("clicks.id = ?", *f.ID)
	}
	if f.ClickID != nil {
		db = db.Where("clicks.click_id = ?", *f.ClickID)
	}
	if f.PartnershipID != nil {
		db = db.Where("clicks.partnership_id = ?", *f.PartnershipID)
	}
	if f.PublisherID != nil {
		db = db.Joins("JOIN partnerships ON partnerships.id = clicks.partnership_id").
			Where("partnerships.publisher_id = ?", *f.PublisherID)
	}
	if f.AdvertiserID != nil {
		db = db.Joins("JOIN partnerships ON partnerships.id = clicks.partnership_id").
			Joins("JOIN programs ON programs.id = partnerships.program_id").
			Where("programs.advertiser_id = ?", *f.AdvertiserID)
	}
	if f.ProgramID != nil {
		db = db.Joins("JOIN partnerships ON partnerships.id = clicks.partnership_id").
			Where("partnerships.program_id = ?", *f.ProgramID)
	}
	if f.DeviceType != nil {
		db = db.Where("clicks.device_type = ?", *f.DeviceType)
	}
	if f.ClickedAfter != nil {
		db = db.Where("clicks.clicked_at >= ?", *f.ClickedAfter)
	}
	if f.ClickedBefore != nil {
		db = db.Where("clicks.clicked_at < ?", *f.ClickedBefore)
	}
	return db
}

func (r *ClickRepositoryImpl) ByFilter(ctx context.Context, filter models.ClickFilter, orderBy string, limit, offset int) ([]*models.Click, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Click{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Click
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClickRepositoryImpl) Count(ctx context.Context, filter models.ClickFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Click{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ClickRepositoryImpl) Exists(ctx context.Context, filter models.ClickFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *ClickRepositoryImpl) ByClickID(ctx context.Context, clickID string) (*models.Click, error) {
	filter := models.ClickFilter{ClickID: &clickID}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *ClickRepositoryImpl) ByClickIDWithPartnership(ctx context.Context, clickID string) (*models.Click, error) {
	db := r.getDB(ctx)
	var row models.Click
	err := db.Preload("Partnership").
		Preload("Partnership.Program").
		Where("click_id = ?", clickID).
		Last(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
