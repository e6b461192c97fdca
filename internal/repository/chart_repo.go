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

// CareRecordFilter narrows chart/vital/progress listings.
type CareRecordFilter struct {
	PatientID   *uuid.UUID
	CareGiverID *uuid.UUID
	Status      string
}

// ChartRepository defines data access for Chart entities.
type ChartRepository interface {
	Create(ctx context.Context, chart *model.Chart) error
	ExistsOnDay(ctx context.Context, patientID uuid.UUID, day time.Time) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Chart, error)
	List(ctx context.Context, filter CareRecordFilter, offset, limit int) ([]model.Chart, int64, error)
	Update(ctx context.Context, chart *model.Chart) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type chartRepository struct {
	db *gorm.DB
}

func NewChartRepository(db *gorm.DB) ChartRepository {
	return &chartRepository{db: db}
}

func (r *chartRepository) Create(ctx context.Context, chart *model.Chart) error {
	if err := dbFrom(ctx, r.db).Create(chart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("A chart entry for this resident already exists on this date")
		}
		return apperr.Internal("failed to create chart", err)
	}
	return nil
}

func (r *chartRepository) ExistsOnDay(ctx context.Context, patientID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Chart{}).
		Where("patient_id = ? AND day = ?", patientID, model.DayOf(day)).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check for existing chart", err)
	}
	return count > 0, nil
}

func (r *chartRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Chart, error) {
	var chart model.Chart
	err := dbFrom(ctx, r.db).Preload("Patient").Preload("CareGiver").First(&chart, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Chart")
		}
		return nil, apperr.Internal("failed to fetch chart", err)
	}
	return &chart, nil
}

func (r *chartRepository) List(ctx context.Context, filter CareRecordFilter, offset, limit int) ([]model.Chart, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Chart{})
	q = applyCareRecordFilter(q, filter, "care_giver_id")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count charts", err)
	}

	var charts []model.Chart
	err := q.Preload("Patient").Preload("CareGiver").
		Order("date_taken").Offset(offset).Limit(limit).Find(&charts).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list charts", err)
	}
	return charts, total, nil
}

func (r *chartRepository) Update(ctx context.Context, chart *model.Chart) error {
	if err := dbFrom(ctx, r.db).Save(chart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("A chart entry for this resident already exists on this date")
		}
		return apperr.Internal("failed to update chart", err)
	}
	return nil
}

func (r *chartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Chart{})
	if res.Error != nil {
		return apperr.Internal("failed to delete chart", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Chart")
	}
	return nil
}

// applyCareRecordFilter adds the shared patient/actor/status predicates.
func applyCareRecordFilter(q *gorm.DB, filter CareRecordFilter, actorColumn string) *gorm.DB {
	if filter.PatientID != nil {
		q = q.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.CareGiverID != nil {
		q = q.Where(actorColumn+" = ?", *filter.CareGiverID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}
