package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// PatientRepository defines data access for Patient entities.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context, branchID *uuid.UUID, offset, limit int) ([]model.Patient, int64, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if err := dbFrom(ctx, r.db).Create(patient).Error; err != nil {
		return apperr.Internal("failed to create patient", err)
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	err := dbFrom(ctx, r.db).Preload("Branch").Preload("Branch.Facility").First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Patient")
		}
		return nil, apperr.Internal("failed to fetch patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, branchID *uuid.UUID, offset, limit int) ([]model.Patient, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Patient{})
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count patients", err)
	}

	var patients []model.Patient
	err := q.Preload("Branch").Order("created_at").Offset(offset).Limit(limit).Find(&patients).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list patients", err)
	}
	return patients, total, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	if err := dbFrom(ctx, r.db).Save(patient).Error; err != nil {
		return apperr.Internal("failed to update patient", err)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Patient{})
	if res.Error != nil {
		return apperr.Internal("failed to delete patient", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Patient")
	}
	return nil
}
