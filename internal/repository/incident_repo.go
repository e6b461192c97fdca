package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// IncidentRepository defines data access for Incident reports.
type IncidentRepository interface {
	Create(ctx context.Context, incident *model.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Incident, int64, error)
	Update(ctx context.Context, incident *model.Incident) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(ctx context.Context, incident *model.Incident) error {
	if err := dbFrom(ctx, r.db).Create(incident).Error; err != nil {
		return apperr.Internal("failed to create incident", err)
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var incident model.Incident
	if err := dbFrom(ctx, r.db).Preload("Staff").First(&incident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Incident")
		}
		return nil, apperr.Internal("failed to fetch incident", err)
	}
	return &incident, nil
}

func (r *incidentRepository) List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Incident, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Incident{})
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count incidents", err)
	}

	var incidents []model.Incident
	if err := q.Preload("Staff").Order("created_at DESC").Offset(offset).Limit(limit).Find(&incidents).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list incidents", err)
	}
	return incidents, total, nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *model.Incident) error {
	if err := dbFrom(ctx, r.db).Save(incident).Error; err != nil {
		return apperr.Internal("failed to update incident", err)
	}
	return nil
}

func (r *incidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Incident{})
	if res.Error != nil {
		return apperr.Internal("failed to delete incident", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Incident")
	}
	return nil
}
