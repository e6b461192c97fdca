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
type CreateGroceryRequest struct {
	Items    []model.GroceryItem `json:"items" binding:"required,min=1,dive"`
	BranchID string              `json:"branchId"`
}

type ResolveGroceryRequest struct {
	Status   string `json:"status" binding:"required,oneof=approved declined updated delivered"`
	Feedback string `json:"feedback"`
}

// GroceryService covers branch supply orders.
type GroceryService interface {
	CreateGrocery(ctx context.Context, staff *model.User, req CreateGroceryRequest) (*model.Grocery, error)
	GetGrocery(ctx context.Context, id uuid.UUID) (*model.Grocery, error)
	ListGroceries(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Grocery, int64, error)
	ResolveGrocery(ctx context.Context, id uuid.UUID, req ResolveGroceryRequest) (*model.Grocery, error)
	DeleteGrocery(ctx context.Context, id uuid.UUID) error
}

type groceryService struct {
	groceries repository.GroceryRepository
	notifier  mailer.Notifier
}

func NewGroceryService(groceries repository.GroceryRepository, notifier mailer.Notifier) GroceryService {
	return &groceryService{groceries: groceries, notifier: notifier}
}

func (s *groceryService) CreateGrocery(ctx context.Context, staff *model.User, req CreateGroceryRequest) (*model.Grocery, error) {
	branchID, err := parseOptionalID("branchId", req.BranchID)
	if err != nil {
		return nil, err
	}
	if branchID == nil {
		// Default the order to the requester's own branch.
		branchID = staff.BranchID
	}

	grocery := &model.Grocery{
		StaffID:  &staff.ID,
		BranchID: branchID,
		Items:    req.Items,
		Status:   model.GroceryStatusPending,
	}
	if err := s.groceries.Create(ctx, grocery); err != nil {
		return nil, err
	}
	return grocery, nil
}

func (s *groceryService) GetGrocery(ctx context.Context, id uuid.UUID) (*model.Grocery, error) {
	return s.groceries.GetByID(ctx, id)
}

func (s *groceryService) ListGroceries(ctx context.Context, staffID *uuid.UUID, status string, offset, limit int) ([]model.Grocery, int64, error) {
	return s.groceries.List(ctx, repository.StaffRequestFilter{StaffID: staffID, Status: status}, offset, limit)
}

// ResolveGrocery moves an order through its workflow and emails the
// requester the outcome.
func (s *groceryService) ResolveGrocery(ctx context.Context, id uuid.UUID, req ResolveGroceryRequest) (*model.Grocery, error) {
	if req.Status == model.GroceryStatusDeclined && req.Feedback == "" {
		return nil, apperr.FieldErrors(map[string]string{"feedback": "required when declining"})
	}

	grocery, err := s.groceries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grocery.Status = req.Status
	if req.Feedback != "" {
		grocery.Feedback = &req.Feedback
	}

	if err := s.groceries.Update(ctx, grocery); err != nil {
		return nil, err
	}

	if grocery.Staff != nil {
		subject, body := mailer.RequestResolved(grocery.Staff.FullName(), "grocery", grocery.Status, req.Feedback)
		sendMail(s.notifier, grocery.Staff.Username, grocery.Staff.FullName(), subject, body)
	}
	return grocery, nil
}

func (s *groceryService) DeleteGrocery(ctx context.Context, id uuid.UUID) error {
	return s.groceries.Delete(ctx, id)
}
