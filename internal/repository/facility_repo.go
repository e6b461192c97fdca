package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// FacilityRepository defines data access for Facility entities.
type FacilityRepository interface {
	Create(ctx context.Context, facility *model.Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Facility, error)
	List(ctx context.Context, offset, limit int) ([]model.Facility, int64, error)
	Update(ctx context.Context, facility *model.Facility) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type facilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	if err := dbFrom(ctx, r.db).Create(facility).Error; err != nil {
		return apperr.Internal("failed to create facility", err)
	}
	return nil
}

func (r *facilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	var facility model.Facility
	if err := dbFrom(ctx, r.db).First(&facility, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Facility")
		}
		return nil, apperr.Internal("failed to fetch facility", err)
	}
	return &facility, nil
}

func (r *facilityRepository) List(ctx context.Context, offset, limit int) ([]model.Facility, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Facility{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count facilities", err)
	}

	var facilities []model.Facility
	if err := q.Order("created_at").Offset(offset).Limit(limit).Find(&facilities).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list facilities", err)
	}
	return facilities, total, nil
}

func (r *facilityRepository) Update(ctx context.Context, facility *model.Facility) error {
	if err := dbFrom(ctx, r.db).Save(facility).Error; err != nil {
		return apperr.Internal("failed to update facility", err)
	}
	return nil
}

func (r *facilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Facility{})
	if res.Error != nil {
		return apperr.Internal("failed to delete facility", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Facility")
	}
	return nil
}

// BranchRepository defines data access for Branch entities.
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	List(ctx context.Context, facilityID *uuid.UUID, offset, limit int) ([]model.Branch, int64, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *model.Branch) error {
	if err := dbFrom(ctx, r.db).Create(branch).Error; err != nil {
		return apperr.Internal("failed to create branch", err)
	}
	return nil
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	if err := dbFrom(ctx, r.db).Preload("Facility").First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Branch")
		}
		return nil, apperr.Internal("failed to fetch branch", err)
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context, facilityID *uuid.UUID, offset, limit int) ([]model.Branch, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Branch{})
	if facilityID != nil {
		q = q.Where("facility_id = ?", *facilityID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count branches", err)
	}

	var branches []model.Branch
	if err := q.Preload("Facility").Order("created_at").Offset(offset).Limit(limit).Find(&branches).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list branches", err)
	}
	return branches, total, nil
}

func (r *branchRepository) Update(ctx context.Context, branch *model.Branch) error {
	if err := dbFrom(ctx, r.db).Save(branch).Error; err != nil {
		return apperr.Internal("failed to update branch", err)
	}
	return nil
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Branch{})
	if res.Error != nil {
		return apperr.Internal("failed to delete branch", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Branch")
	}
	return nil
}
