package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// DTOs for request validation
type CreateIncidentRequest struct {
	Details  string `json:"details" binding:"required"`
	FilePath string `json:"filePath"`
}

type UpdateIncidentRequest struct {
	Details string `json:"details"`
	Status  string `json:"status" binding:"omitempty,oneof=pending approved updated"`
}

// IncidentService covers staff incident reports.
type IncidentService interface {
	CreateIncident(ctx context.Context, staff *model.User, req CreateIncidentRequest) (*model.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	ListIncidents(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Incident, int64, error)
	UpdateIncident(ctx context.Context, id uuid.UUID, req UpdateIncidentRequest) (*model.Incident, error)
	DeleteIncident(ctx context.Context, id uuid.UUID) error
}

type incidentService struct {
	incidents repository.IncidentRepository
	notifier  mailer.Notifier
}

func NewIncidentService(incidents repository.IncidentRepository, notifier mailer.Notifier) IncidentService {
	return &incidentService{incidents: incidents, notifier: notifier}
}

func (s *incidentService) CreateIncident(ctx context.Context, staff *model.User, req CreateIncidentRequest) (*model.Incident, error) {
	var filePath *string
	if req.FilePath != "" {
		filePath = &req.FilePath
	}
	incident := &model.Incident{
		StaffID:  &staff.ID,
		Details:  req.Details,
		FilePath: filePath,
		Status:   model.IncidentStatusPending,
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	return s.incidents.GetByID(ctx, id)
}

func (s *incidentService) ListIncidents(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Incident, int64, error) {
	return s.incidents.List(ctx, repository.StaffRequestFilter{StaffID: staffID, Status: status}, offset, limit)
}

// UpdateIncident edits the report or moves it through its workflow. The
// filer is emailed when the report is approved.
func (s *incidentService) UpdateIncident(ctx context.Context, id uuid.UUID, req UpdateIncidentRequest) (*model.Incident, error) {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Details != "" {
		incident.Details = req.Details
		incident.Status = model.IncidentStatusUpdated
	}
	if req.Status != "" {
		incident.Status = req.Status
	}

	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, err
	}

	if req.Status == model.IncidentStatusApproved && incident.Staff != nil {
		subject, body := mailer.RequestResolved(incident.Staff.FullName(), "incident", incident.Status, "")
		sendMail(s.notifier, incident.Staff.Username, incident.Staff.FullName(), subject, body)
	}
	return incident, nil
}

func (s *incidentService) DeleteIncident(ctx context.Context, id uuid.UUID) error {
	return s.incidents.Delete(ctx, id)
}
