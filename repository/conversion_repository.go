package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adwave/asp-platform/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConversionRepositoryImpl implements ConversionRepository
type ConversionRepositoryImpl struct {
	*BaseRepository[models.Conversion, models.ConversionFilter]
}

func NewConversionRepository(db *gorm.DB) ConversionRepository {
	return &ConversionRepositoryImpl{BaseRepository: NewBaseRepository[models.Conversion, models.ConversionFilter](db)}
}

func (r *ConversionRepositoryImpl) applyFilter(db *gorm.DB, f models.ConversionFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("conversions.id = ?", *f.ID)
	}
	if f.ConversionID != nil {
		db = db.Where("conversions.conversion_id = ?", *f.ConversionID)
	}
	if f.ClickID != nil {
		db = db.Where("conversions.click_id = ?", *f.ClickID)
	}
	if f.PartnershipID != nil {
		db = db.Where("conversions.partnership_id = ?", *f.PartnershipID)
	}
	if f.ProgramID != nil {
		db = db.Where("conversions.program_id = ?", *f.ProgramID)
	}
	if f.PublisherID != nil {
		db = db.Joins("JOIN partnerships ON partnerships.id = conversions.partnership_id").
			Where("partnerships.publisher_id = ?", *f.PublisherID)
	}
	if f.AdvertiserID != nil {
		db = db.Joins("JOIN programs ON programs.id = conversions.program_id").
			Where("programs.advertiser_id = ?", *f.AdvertiserID)
	}
	if f.Status != nil {
		db = db.Where("conversions.status = ?", *f.Status)
	}
	if f.ConvertedAfter != nil {
		db = db.Where("conversions.converted_at >= ?", *f.ConvertedAfter)
	}
	if f.ConvertedBefore != nil {
		db = db.Where("conversions.converted_at < ?", *f.ConvertedBefore)
	}
	return db
}

func (r *ConversionRepositoryImpl) ByFilter(ctx context.Context, filter models.ConversionFilter, orderBy string, limit, offset int) ([]*models.Conversion, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Conversion{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Conversion
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ConversionRepositoryImpl) Count(ctx context.Context, filter models.ConversionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Conversion{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversionRepositoryImpl) Exists(ctx context.Context, filter models.ConversionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *ConversionRepositoryImpl) ByConversionID(ctx context.Context, conversionID string) (*models.Conversion, error) {
	filter := models.ConversionFilter{ConversionID: &conversionID}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *ConversionRepositoryImpl) ExistsForClick(ctx context.Context, clickID uint) (bool, error) {
	filter := models.ConversionFilter{ClickID: &clickID}
	return r.Exists(ctx, filter)
}

func (r *ConversionRepositoryImpl) UpdateStatus(ctx context.Context, conversionID uint, status models.ConversionStatus) error {
	db := r.getDB(ctx)
	result := db.Model(&models.Conversion{}).
		Where("id = ?", conversionID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update conversion status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("conversion %d not found", conversionID)
	}
	return nil
}

func (r *ConversionRepositoryImpl) Totals(ctx context.Context, filter models.ConversionFilter) (*ConversionTotals, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Conversion{}), filter)

	var row struct {
		Count           int64
		ApprovedCount   int64
		SaleTotal       sql.NullString
		CommissionTotal sql.NullString
	}
	err := query.Select(
		"COUNT(*) AS count, " +
			"COUNT(*) FILTER (WHERE conversions.status = 'approved') AS approved_count, " +
			"COALESCE(SUM(conversions.sale_amount), 0) AS sale_total, " +
			"COALESCE(SUM(conversions.commission_amount), 0) AS commission_total").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate conversions: %w", err)
	}

	totals := &ConversionTotals{
		Count:           row.Count,
		ApprovedCount:   row.ApprovedCount,
		SaleTotal:       decimal.Zero,
		CommissionTotal: decimal.Zero,
	}
	if row.SaleTotal.Valid {
		d, err := decimal.NewFromString(row.SaleTotal.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sale total: %w", err)
		}
		totals.SaleTotal = d
	}
	if row.CommissionTotal.Valid {
		d, err := decimal.NewFromString(row.CommissionTotal.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse commission total: %w", err)
		}
		totals.CommissionTotal = d
	}
	return totals, nil
}

func (r *ConversionRepositoryImpl) ListWithRelations(ctx context.Context, filter models.ConversionFilter, orderBy string, limit, offset int) ([]*models.Conversion, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Conversion{}), filter).
		Preload("Click").
		Preload("Partnership").
		Preload("Partnership.Publisher").
		Preload("Program")
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Conversion
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
