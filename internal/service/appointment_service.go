package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateAppointmentRequest struct {
	PatientID           string `json:"patientId" binding:"required"`
	DateTaken           string `json:"dateTaken" binding:"required"`
	Details             string `json:"details"`
	Type                string `json:"type" binding:"required"`
	NextAppointmentDate string `json:"nextAppointmentDate"`
}

type UpdateAppointmentRequest struct {
	DateTaken           string `json:"dateTaken"`
	Details             string `json:"details"`
	Type                string `json:"type"`
	NextAppointmentDate string `json:"nextAppointmentDate"`
}

// AppointmentService covers external provider appointments for residents.
type AppointmentService interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context, patientID *uuid.UUID, appointmentType string, offset, limit int) ([]model.Appointment, int64, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req UpdateAppointmentRequest) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
}

func NewAppointmentService(appointments repository.AppointmentRepository, patients repository.PatientRepository) AppointmentService {
	return &appointmentService{appointments: appointments, patients: patients}
}

func (s *appointmentService) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*model.Appointment, error) {
	patientID, err := parseID("patientId", req.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	if !model.ValidAppointmentType(req.Type) {
		return nil, apperr.FieldErrors(map[string]string{"type": "must be a known provider type"})
	}

	dateTaken, err := parseDate("dateTaken", req.DateTaken)
	if err != nil {
		return nil, err
	}
	nextDate, err := parseOptionalDate("nextAppointmentDate", req.NextAppointmentDate)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		PatientID:           patientID,
		DateTaken:           model.DayOf(dateTaken),
		Type:                req.Type,
		NextAppointmentDate: nextDate,
	}
	if req.Details != "" {
		appointment.Details = &req.Details
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *appointmentService) ListAppointments(ctx context.Context, patientID *uuid.UUID, appointmentType string, offset, limit int) ([]model.Appointment, int64, error) {
	return s.appointments.List(ctx, patientID, appointmentType, offset, limit)
}

func (s *appointmentService) UpdateAppointment(ctx context.Context, id uuid.UUID, req UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DateTaken != "" {
		d, err := parseDate("dateTaken", req.DateTaken)
		if err != nil {
			return nil, err
		}
		appointment.DateTaken = model.DayOf(d)
	}
	if req.Type != "" {
		if !model.ValidAppointmentType(req.Type) {
			return nil, apperr.FieldErrors(map[string]string{"type": "must be a known provider type"})
		}
		appointment.Type = req.Type
	}
	if req.Details != "" {
		appointment.Details = &req.Details
	}
	if req.NextAppointmentDate != "" {
		d, err := parseDate("nextAppointmentDate", req.NextAppointmentDate)
		if err != nil {
			return nil, err
		}
		appointment.NextAppointmentDate = &d
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}
