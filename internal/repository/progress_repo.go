package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// ProgressRepository defines data access for progress updates.
type ProgressRepository interface {
	Create(ctx context.Context, update *model.ProgressUpdate) error
	ExistsInRange(ctx context.Context, patientID uuid.UUID, updateType string, from, to time.Time) (bool, error)
	LastMonthlyInRange(ctx context.Context, patientID uuid.UUID, from, to time.Time) (*model.ProgressUpdate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProgressUpdate, error)
	List(ctx context.Context, filter CareRecordFilter, updateType string, offset, limit int) ([]model.ProgressUpdate, int64, error)
	Update(ctx context.Context, update *model.ProgressUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(ctx context.Context, update *model.ProgressUpdate) error {
	if err := dbFrom(ctx, r.db).Create(update).Error; err != nil {
		return apperr.Internal("failed to create progress update", err)
	}
	return nil
}

func (r *progressRepository) ExistsInRange(ctx context.Context, patientID uuid.UUID, updateType string, from, to time.Time) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.ProgressUpdate{}).
		Where("patient_id = ? AND type = ? AND date_taken BETWEEN ? AND ?",
			patientID, updateType, model.DayOf(from), model.DayOf(to)).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check for existing progress update", err)
	}
	return count > 0, nil
}

func (r *progressRepository) LastMonthlyInRange(ctx context.Context, patientID uuid.UUID, from, to time.Time) (*model.ProgressUpdate, error) {
	var update model.ProgressUpdate
	err := dbFrom(ctx, r.db).
		Where("patient_id = ? AND type = ? AND date_taken BETWEEN ? AND ?",
			patientID, model.ProgressTypeMonthly, model.DayOf(from), model.DayOf(to)).
		Order("date_taken DESC").
		First(&update).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("failed to fetch previous monthly update", err)
	}
	return &update, nil
}

func (r *progressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ProgressUpdate, error) {
	var update model.ProgressUpdate
	err := dbFrom(ctx, r.db).Preload("Patient").Preload("CareGiver").First(&update, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Progress update")
		}
		return nil, apperr.Internal("failed to fetch progress update", err)
	}
	return &update, nil
}

func (r *progressRepository) List(ctx context.Context, filter CareRecordFilter, updateType string, offset, limit int) ([]model.ProgressUpdate, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.ProgressUpdate{})
	q = applyCareRecordFilter(q, filter, "care_giver_id")
	if updateType != "" {
		q = q.Where("type = ?", updateType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count progress updates", err)
	}

	var updates []model.ProgressUpdate
	err := q.Preload("Patient").Preload("CareGiver").
		Order("date_taken").Offset(offset).Limit(limit).Find(&updates).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list progress updates", err)
	}
	return updates, total, nil
}

func (r *progressRepository) Update(ctx context.Context, update *model.ProgressUpdate) error {
	if err := dbFrom(ctx, r.db).Save(update).Error; err != nil {
		return apperr.Internal("failed to update progress update", err)
	}
	return nil
}

func (r *progressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.ProgressUpdate{})
	if res.Error != nil {
		return apperr.Internal("failed to delete progress update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Progress update")
	}
	return nil
}
