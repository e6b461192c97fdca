package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// AppointmentRepository defines data access for provider appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, patientID *uuid.UUID, appointmentType string, offset, limit int) ([]model.Appointment, int64, error)
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if err := dbFrom(ctx, r.db).Create(appointment).Error; err != nil {
		return apperr.Internal("failed to create appointment", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := dbFrom(ctx, r.db).Preload("Patient").First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Appointment")
		}
		return nil, apperr.Internal("failed to fetch appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, patientID *uuid.UUID, appointmentType string, offset, limit int) ([]model.Appointment, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Appointment{})
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	if appointmentType != "" {
		q = q.Where("type = ?", appointmentType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count appointments", err)
	}

	var appointments []model.Appointment
	if err := q.Preload("Patient").Order("date_taken DESC").Offset(offset).Limit(limit).Find(&appointments).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list appointments", err)
	}
	return appointments, total, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	if err := dbFrom(ctx, r.db).Save(appointment).Error; err != nil {
		return apperr.Internal("failed to update appointment", err)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Appointment{})
	if res.Error != nil {
		return apperr.Internal("failed to delete appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Appointment")
	}
	return nil
}
