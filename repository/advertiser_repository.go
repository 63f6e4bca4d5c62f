package repository

import (
	"context"

	"github.com/adwave/asp-platform/models"
	"gorm.io/gorm"
)

// AdvertiserRepositoryImpl implements AdvertiserRepository
type AdvertiserRepositoryImpl struct {
	*BaseRepository[models.Advertiser, models.AdvertiserFilter]
}

func NewAdvertiserRepository(db *gorm.DB) AdvertiserRepository {
	return &AdvertiserRepositoryImpl{BaseRepository: NewBaseRepository[models.Advertiser, models.AdvertiserFilter](db)}
}

func (r *AdvertiserRepositoryImpl) applyFilter(db *gorm.DB, f models.AdvertiserFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
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

func (r *AdvertiserRepositoryImpl) ByFilter(ctx context.Context, filter models.AdvertiserFilter, orderBy string, limit, offset int) ([]*models.Advertiser, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Advertiser{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Advertiser
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AdvertiserRepositoryImpl) Count(ctx context.Context, filter models.AdvertiserFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Advertiser{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AdvertiserRepositoryImpl) Exists(ctx context.Context, filter models.AdvertiserFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *AdvertiserRepositoryImpl) ByUserID(ctx context.Context, userID uint) (*models.Advertiser, error) {
	filter := models.AdvertiserFilter{UserID: &userID}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
