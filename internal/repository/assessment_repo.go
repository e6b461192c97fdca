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

// AssessmentRepository defines data access for Assessment schedules.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	List(ctx context.Context, residentID *uuid.UUID, offset, limit int) ([]model.Assessment, int64, error)
	// DueBetween returns assessments whose next assessment or NCP date
	// falls inside [from, to].
	DueBetween(ctx context.Context, from, to time.Time) ([]model.Assessment, error)
	Update(ctx context.Context, assessment *model.Assessment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	if err := dbFrom(ctx, r.db).Create(assessment).Error; err != nil {
		return apperr.Internal("failed to create assessment", err)
	}
	return nil
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := dbFrom(ctx, r.db).Preload("Resident").First(&assessment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Assessment")
		}
		return nil, apperr.Internal("failed to fetch assessment", err)
	}
	return &assessment, nil
}

func (r *assessmentRepository) List(ctx context.Context, residentID *uuid.UUID, offset, limit int) ([]model.Assessment, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Assessment{})
	if residentID != nil {
		q = q.Where("resident_id = ?", *residentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count assessments", err)
	}

	var assessments []model.Assessment
	if err := q.Preload("Resident").Order("created_at DESC").Offset(offset).Limit(limit).Find(&assessments).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list assessments", err)
	}
	return assessments, total, nil
}

func (r *assessmentRepository) DueBetween(ctx context.Context, from, to time.Time) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := dbFrom(ctx, r.db).
		Preload("Resident").
		Where("(assessment_next_date BETWEEN ? AND ?) OR (ncp_next_date BETWEEN ? AND ?)", from, to, from, to).
		Find(&assessments).Error
	if err != nil {
		return nil, apperr.Internal("failed to query due assessments", err)
	}
	return assessments, nil
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	if err := dbFrom(ctx, r.db).Save(assessment).Error; err != nil {
		return apperr.Internal("failed to update assessment", err)
	}
	return nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Assessment{})
	if res.Error != nil {
		return apperr.Internal("failed to delete assessment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Assessment")
	}
	return nil
}
