package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
)

// DTOs for request validation
type CreateUtilityRequest struct {
	Item    string `json:"item" binding:"required"`
	Details string `json:"details" binding:"required"`
}

type ResolveUtilityRequest struct {
	Status string `json:"status" binding:"required,oneof=review addressed"`
}

// UtilityService covers maintenance and utilities requests.
type UtilityService interface {
	CreateUtility(ctx context.Context, staff *model.User, req CreateUtilityRequest) (*model.Utility, error)
	GetUtility(ctx context.Context, id uuid.UUID) (*model.Utility, error)
	ListUtilities(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Utility, int64, error)
	ResolveUtility(ctx context.Context, id uuid.UUID, req ResolveUtilityRequest) (*model.Utility, error)
	DeleteUtility(ctx context.Context, id uuid.UUID) error
}

type utilityService struct {
	utilities repository.UtilityRepository
	notifier  mailer.Notifier
}

func NewUtilityService(utilities repository.UtilityRepository, notifier mailer.Notifier) UtilityService {
	return &utilityService{utilities: utilities, notifier: notifier}
}

func (s *utilityService) CreateUtility(ctx context.Context, staff *model.User, req CreateUtilityRequest) (*model.Utility, error) {
	utility := &model.Utility{
		StaffID: &staff.ID,
		Item:    req.Item,
		Details: req.Details,
		Status:  model.UtilityStatusPending,
	}
	if err := s.utilities.Create(ctx, utility); err != nil {
		return nil, err
	}
	return utility, nil
}

func (s *utilityService) GetUtility(ctx context.Context, id uuid.UUID) (*model.Utility, error) {
	return s.utilities.GetByID(ctx, id)
}

func (s *utilityService) ListUtilities(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Utility, int64, error) {
	return s.utilities.List(ctx, repository.StaffRequestFilter{StaffID: staffID, Status: status}, offset, limit)
}

// ResolveUtility moves a request to review or addressed and emails the
// requester once it is addressed.
func (s *utilityService) ResolveUtility(ctx context.Context, id uuid.UUID, req ResolveUtilityRequest) (*model.Utility, error) {
	utility, err := s.utilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	utility.Status = req.Status
	if err := s.utilities.Update(ctx, utility); err != nil {
		return nil, err
	}

	if req.Status == model.UtilityStatusAddressed && utility.Staff != nil {
		subject, body := mailer.RequestResolved(utility.Staff.FullName(), "utility", utility.Status, "")
		sendMail(s.notifier, utility.Staff.Username, utility.Staff.FullName(), subject, body)
	}
	return utility, nil
}

func (s *utilityService) DeleteUtility(ctx context.Context, id uuid.UUID) error {
	return s.utilities.Delete(ctx, id)
}
