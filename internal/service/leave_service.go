package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateLeaveRequest struct {
	ReasonForLeave string `json:"reasonForLeave" binding:"required"`
	StartDate      string `json:"startDate" binding:"required"`
	EndDate        string `json:"endDate" binding:"required"`
}

type ResolveLeaveRequest struct {
	Status        string `json:"status" binding:"required,oneof=approved declined"`
	DeclineReason string `json:"declineReason"`
}

// LeaveService covers staff leave requests and their resolution.
type LeaveService interface {
	CreateLeave(ctx context.Context, staff *model.User, req CreateLeaveRequest) (*model.Leave, error)
	GetLeave(ctx context.Context, id uuid.UUID) (*model.Leave, error)
	ListLeaves(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Leave, int64, error)
	ResolveLeave(ctx context.Context, id uuid.UUID, req ResolveLeaveRequest) (*model.Leave, error)
	DeleteLeave(ctx context.Context, id uuid.UUID) error
}

type leaveService struct {
	leaves   repository.LeaveRepository
	notifier mailer.Notifier
}

func NewLeaveService(leaves repository.LeaveRepository, notifier mailer.Notifier) LeaveService {
	return &leaveService{leaves: leaves, notifier: notifier}
}

func (s *leaveService) CreateLeave(ctx context.Context, staff *model.User, req CreateLeaveRequest) (*model.Leave, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperr.FieldErrors(map[string]string{"endDate": "must not be before startDate"})
	}

	leave := &model.Leave{
		StaffID:        &staff.ID,
		ReasonForLeave: req.ReasonForLeave,
		StartDate:      start,
		EndDate:        end,
		Status:         model.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) GetLeave(ctx context.Context, id uuid.UUID) (*model.Leave, error) {
	return s.leaves.GetByID(ctx, id)
}

func (s *leaveService) ListLeaves(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Leave, int64, error) {
	return s.leaves.List(ctx, repository.StaffRequestFilter{StaffID: staffID, Status: status}, offset, limit)
}

// ResolveLeave approves or declines a request and emails the outcome to
// the requesting staff member.
func (s *leaveService) ResolveLeave(ctx context.Context, id uuid.UUID, req ResolveLeaveRequest) (*model.Leave, error) {
	if req.Status == model.LeaveStatusDeclined && req.DeclineReason == "" {
		return nil, apperr.FieldErrors(map[string]string{"declineReason": "required when declining"})
	}

	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	leave.Status = req.Status
	if req.Status == model.LeaveStatusDeclined {
		leave.DeclineReason = &req.DeclineReason
	} else {
		leave.DeclineReason = nil
	}

	if err := s.leaves.Update(ctx, leave); err != nil {
		return nil, err
	}

	if leave.Staff != nil {
		subject, body := mailer.RequestResolved(leave.Staff.FullName(), "leave", leave.Status, req.DeclineReason)
		sendMail(s.notifier, leave.Staff.Username, leave.Staff.FullName(), subject, body)
	}
	return leave, nil
}

func (s *leaveService) DeleteLeave(ctx context.Context, id uuid.UUID) error {
	return s.leaves.Delete(ctx, id)
}
