package applications

import (
	"context"

	"gorm.io/gorm"

	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	"github.com/leadflowhq/leadflow-backend/pkg/pagination"
)

// Repository exposes lead persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an applications repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lead and returns the persisted model.
func (r *Repository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// FindByID loads a lead by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns one page of leads matching the filter, newest first,
// together with the total row count for that filter.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Application, int64, error) {
	// New session so the count and page queries do not share state.
	base := r.filtered(ctx, filter).Session(&gorm.Session{})

	var total int64
	if err := base.Model(&models.Application{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Application
	err := base.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus persists a status transition and returns the updated lead.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status enums.ApplicationStatus) (*models.Application, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// CountByStatus aggregates lead counts per status within the filter's
// date window. Statuses with no rows are absent from the map.
func (r *Repository) CountByStatus(ctx context.Context, filter ListFilter) (map[enums.ApplicationStatus]int64, error) {
	type row struct {
		Status enums.ApplicationStatus
		Count  int64
	}

	var rows []row
	err := r.filtered(ctx, filter).
		Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.ApplicationStatus]int64, len(rows))
	for _, entry := range rows {
		counts[entry.Status] = entry.Count
	}
	return counts, nil
}

func (r *Repository) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	return query
}
