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

// MedicationRepository defines data access for Medication entities.
type MedicationRepository interface {
	Create(ctx context.Context, medication *model.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	List(ctx context.Context, patientID *uuid.UUID, status string, offset, limit int) ([]model.Medication, int64, error)
	Update(ctx context.Context, medication *model.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	if err := dbFrom(ctx, r.db).Create(medication).Error; err != nil {
		return apperr.Internal("failed to create medication", err)
	}
	return nil
}

func (r *medicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	var medication model.Medication
	err := dbFrom(ctx, r.db).Preload("Patient").First(&medication, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Medication")
		}
		return nil, apperr.Internal("failed to fetch medication", err)
	}
	return &medication, nil
}

func (r *medicationRepository) List(ctx context.Context, patientID *uuid.UUID, status string, offset, limit int) ([]model.Medication, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Medication{})
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count medications", err)
	}

	var medications []model.Medication
	err := q.Preload("Patient").Order("created_at").Offset(offset).Limit(limit).Find(&medications).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list medications", err)
	}
	return medications, total, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	if err := dbFrom(ctx, r.db).Save(medication).Error; err != nil {
		return apperr.Internal("failed to update medication", err)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Medication{})
	if res.Error != nil {
		return apperr.Internal("failed to delete medication", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Medication")
	}
	return nil
}

// AdministrationRepository defines data access for medication
// administration records.
type AdministrationRepository interface {
	Create(ctx context.Context, admin *model.MedicationAdministration) error
	ExistsOnDay(ctx context.Context, patientID, medicationID uuid.UUID, day time.Time) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.MedicationAdministration, error)
	List(ctx context.Context, filter CareRecordFilter, offset, limit int) ([]model.MedicationAdministration, int64, error)
	Update(ctx context.Context, admin *model.MedicationAdministration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type administrationRepository struct {
	db *gorm.DB
}

func NewAdministrationRepository(db *gorm.DB) AdministrationRepository {
	return &administrationRepository{db: db}
}

func (r *administrationRepository) Create(ctx context.Context, admin *model.MedicationAdministration) error {
	if err := dbFrom(ctx, r.db).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("This medication was already administered to this resident on the selected date")
		}
		return apperr.Internal("failed to create medication administration", err)
	}
	return nil
}

func (r *administrationRepository) ExistsOnDay(ctx context.Context, patientID, medicationID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.MedicationAdministration{}).
		Where("patient_id = ? AND medication_id = ? AND administered_on = ?", patientID, medicationID, model.DayOf(day)).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check for existing administration", err)
	}
	return count > 0, nil
}

func (r *administrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MedicationAdministration, error) {
	var admin model.MedicationAdministration
	err := dbFrom(ctx, r.db).
		Preload("Patient").Preload("Medication").Preload("CareGiver").
		First(&admin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Medication administration")
		}
		return nil, apperr.Internal("failed to fetch medication administration", err)
	}
	return &admin, nil
}

func (r *administrationRepository) List(ctx context.Context, filter CareRecordFilter, offset, limit int) ([]model.MedicationAdministration, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.MedicationAdministration{})
	q = applyCareRecordFilter(q, filter, "care_giver_id")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count administrations", err)
	}

	var admins []model.MedicationAdministration
	err := q.Preload("Patient").Preload("Medication").Preload("CareGiver").
		Order("administered_on").Offset(offset).Limit(limit).Find(&admins).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list administrations", err)
	}
	return admins, total, nil
}

func (r *administrationRepository) Update(ctx context.Context, admin *model.MedicationAdministration) error {
	if err := dbFrom(ctx, r.db).Save(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("This medication was already administered to this resident on the selected date")
		}
		return apperr.Internal("failed to update medication administration", err)
	}
	return nil
}

func (r *administrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.MedicationAdministration{})
	if res.Error != nil {
		return apperr.Internal("failed to delete medication administration", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Medication administration")
	}
	return nil
}
