package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/model"
	"carehub/internal/repository"
)

// DTOs for request validation
type CreateFacilityRequest struct {
	FacilityName    string `json:"facilityName" binding:"required"`
	FacilityAddress string `json:"facilityAddress" binding:"required"`
}

type UpdateFacilityRequest struct {
	FacilityName    string `json:"facilityName"`
	FacilityAddress string `json:"facilityAddress"`
}

type CreateBranchRequest struct {
	FacilityID    string `json:"facilityId" binding:"required"`
	BranchName    string `json:"branchName" binding:"required"`
	BranchAddress string `json:"branchAddress" binding:"required"`
}

type UpdateBranchRequest struct {
	BranchName    string `json:"branchName"`
	BranchAddress string `json:"branchAddress"`
}

// FacilityService covers facility and branch management.
type FacilityService interface {
	CreateFacility(ctx context.Context, req CreateFacilityRequest) (*model.Facility, error)
	GetFacility(ctx context.Context, id uuid.UUID) (*model.Facility, error)
	ListFacilities(ctx context.Context, offset, limit int) ([]model.Facility, int64, error)
	UpdateFacility(ctx context.Context, id uuid.UUID, req UpdateFacilityRequest) (*model.Facility, error)
	DeleteFacility(ctx context.Context, id uuid.UUID) error

	CreateBranch(ctx context.Context, req CreateBranchRequest) (*model.Branch, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	ListBranches(ctx context.Context, facilityID *uuid.UUID, offset, limit int) ([]model.Branch, int64, error)
	UpdateBranch(ctx context.Context, id uuid.UUID, req UpdateBranchRequest) (*model.Branch, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error
}

type facilityService struct {
	facilities repository.FacilityRepository
	branches   repository.BranchRepository
}

func NewFacilityService(facilities repository.FacilityRepository, branches repository.BranchRepository) FacilityService {
	return &facilityService{facilities: facilities, branches: branches}
}

func (s *facilityService) CreateFacility(ctx context.Context, req CreateFacilityRequest) (*model.Facility, error) {
	facility := &model.Facility{
		FacilityName:    req.FacilityName,
		FacilityAddress: req.FacilityAddress,
	}
	if err := s.facilities.Create(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

func (s *facilityService) GetFacility(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	return s.facilities.GetByID(ctx, id)
}

func (s *facilityService) ListFacilities(ctx context.Context, offset, limit int) ([]model.Facility, int64, error) {
	return s.facilities.List(ctx, offset, limit)
}

func (s *facilityService) UpdateFacility(ctx context.Context, id uuid.UUID, req UpdateFacilityRequest) (*model.Facility, error) {
	facility, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FacilityName != "" {
		facility.FacilityName = req.FacilityName
	}
	if req.FacilityAddress != "" {
		facility.FacilityAddress = req.FacilityAddress
	}
	if err := s.facilities.Update(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

func (s *facilityService) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	return s.facilities.Delete(ctx, id)
}

func (s *facilityService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*model.Branch, error) {
	facilityID, err := parseID("facilityId", req.FacilityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.facilities.GetByID(ctx, facilityID); err != nil {
		return nil, err
	}
	branch := &model.Branch{
		FacilityID:    facilityID,
		BranchName:    req.BranchName,
		BranchAddress: req.BranchAddress,
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *facilityService) GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	return s.branches.GetByID(ctx, id)
}

func (s *facilityService) ListBranches(ctx context.Context, facilityID *uuid.UUID, offset, limit int) ([]model.Branch, int64, error) {
	return s.branches.List(ctx, facilityID, offset, limit)
}

func (s *facilityService) UpdateBranch(ctx context.Context, id uuid.UUID, req UpdateBranchRequest) (*model.Branch, error) {
	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.BranchName != "" {
		branch.BranchName = req.BranchName
	}
	if req.BranchAddress != "" {
		branch.BranchAddress = req.BranchAddress
	}
	if err := s.branches.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *facilityService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	return s.branches.Delete(ctx, id)
}
