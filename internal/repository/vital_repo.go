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

// VitalRepository defines data access for Vital entities.
type VitalRepository interface {
	Create(ctx context.Context, vital *model.Vital) error
	ExistsOnDay(ctx context.Context, patientID uuid.UUID, day time.Time) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vital, error)
	List(ctx context.Context, filter CareRecordFilter, offset, limit int) ([]model.Vital, int64, error)
	Update(ctx context.Context, vital *model.Vital) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vitalRepository struct {
	db *gorm.DB
}

func NewVitalRepository(db *gorm.DB) VitalRepository {
	return &vitalRepository{db: db}
}

func (r *vitalRepository) Create(ctx context.Context, vital *model.Vital) error {
	if err := dbFrom(ctx, r.db).Create(vital).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("A vital entry already exists for this resident on the selected date")
		}
		return apperr.Internal("failed to create vital", err)
	}
	return nil
}

func (r *vitalRepository) ExistsOnDay(ctx context.Context, patientID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Vital{}).
		Where("patient_id = ? AND day = ?", patientID, model.DayOf(day)).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check for existing vital", err)
	}
	return count > 0, nil
}

func (r *vitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vital, error) {
	var vital model.Vital
	err := dbFrom(ctx, r.db).Preload("Patient").Preload("CareGiver").First(&vital, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vital")
		}
		return nil, apperr.Internal("failed to fetch vital", err)
	}
	return &vital, nil
}

func (r *vitalRepository) List(ctx context.Context, filter CareRecordFilter, offset, limit int) ([]model.Vital, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Vital{})
	q = applyCareRecordFilter(q, filter, "care_giver_id")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count vitals", err)
	}

	var vitals []model.Vital
	err := q.Preload("Patient").Preload("CareGiver").
		Order("date_taken").Offset(offset).Limit(limit).Find(&vitals).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list vitals", err)
	}
	return vitals, total, nil
}

func (r *vitalRepository) Update(ctx context.Context, vital *model.Vital) error {
	if err := dbFrom(ctx, r.db).Save(vital).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("A vital entry already exists for this resident on the selected date")
		}
		return apperr.Internal("failed to update vital", err)
	}
	return nil
}

func (r *vitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Vital{})
	if res.Error != nil {
		return apperr.Internal("failed to delete vital", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Vital")
	}
	return nil
}
