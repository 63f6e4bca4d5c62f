package repository

import (
	"context"

	"github.com/adwave/asp-platform/models"
	"gorm.io/gorm"
)

// PublisherSiteRepositoryImpl implements PublisherSiteRepository
type PublisherSiteRepositoryImpl struct {
	*BaseRepository[models.PublisherSite, models.PublisherSiteFilter]
}

func NewPublisherSiteRepository(db *gorm.DB) PublisherSiteRepository {
	return &PublisherSiteRepositoryImpl{BaseRepository: NewBaseRepository[models.PublisherSite, models.PublisherSiteFilter](db)}
}

func (r *PublisherSiteRepositoryImpl) applyFilter(db *gorm.DB, f models.PublisherSiteFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.PublisherID != nil {
		db = db.Where("publisher_id = ?", *f.PublisherID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	return db
}

func (r *PublisherSiteRepositoryImpl) ByFilter(ctx context.Context, filter models.PublisherSiteFilter, orderBy string, limit, offset int) ([]*models.PublisherSite, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PublisherSite{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.PublisherSite
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PublisherSiteRepositoryImpl) Count(ctx context.Context, filter models.PublisherSiteFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PublisherSite{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PublisherSiteRepositoryImpl) Exists(ctx context.Context, filter models.PublisherSiteFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *PublisherSiteRepositoryImpl) ListByPublisher(ctx context.Context, publisherID uint) ([]*models.PublisherSite, error) {
	filter := models.PublisherSiteFilter{PublisherID: &publisherID}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}
