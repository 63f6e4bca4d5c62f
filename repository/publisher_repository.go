package repository

import (
	"context"

	"github.com/adwave/asp-platform/models"
	"gorm.io/gorm"
)

// PublisherRepositoryImpl implements PublisherRepository
type PublisherRepositoryImpl struct {
	*BaseRepository[models.Publisher, models.PublisherFilter]
}

func NewPublisherRepository(db *gorm.DB) PublisherRepository {
	return &PublisherRepositoryImpl{BaseRepository: NewBaseRepository[models.Publisher, models.PublisherFilter](db)}
}

func (r *PublisherRepositoryImpl) applyFilter(db *gorm.DB, f models.PublisherFilter) *gorm.DB {
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

func (r *PublisherRepositoryImpl) ByFilter(ctx context.Context, filter models.PublisherFilter, orderBy string, limit, offset int) ([]*models.Publisher, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Publisher{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Publisher
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PublisherRepositoryImpl) Count(ctx context.Context, filter models.PublisherFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Publisher{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PublisherRepositoryImpl) Exists(ctx context.Context, filter models.PublisherFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *PublisherRepositoryImpl) ByUserID(ctx context.Context, userID uint) (*models.Publisher, error) {
	filter := models.PublisherFilter{UserID: &userID}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
