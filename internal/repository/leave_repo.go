package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// StaffRequestFilter narrows leave/incident/grocery/utility listings.
type StaffRequestFilter struct {
	StaffID *uuid.UUID
	Status  string
}

// LeaveRepository defines data access for Leave entities.
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Leave, error)
	List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Leave, int64, error)
	Update(ctx context.Context, leave *model.Leave) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	if err := dbFrom(ctx, r.db).Create(leave).Error; err != nil {
		return apperr.Internal("failed to create leave", err)
	}
	return nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Leave, error) {
	var leave model.Leave
	if err := dbFrom(ctx, r.db).Preload("Staff").First(&leave, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Leave")
		}
		return nil, apperr.Internal("failed to fetch leave", err)
	}
	return &leave, nil
}

func (r *leaveRepository) List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Leave, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Leave{})
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count leaves", err)
	}

	var leaves []model.Leave
	if err := q.Preload("Staff").Order("start_date").Offset(offset).Limit(limit).Find(&leaves).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list leaves", err)
	}
	return leaves, total, nil
}

func (r *leaveRepository) Update(ctx context.Context, leave *model.Leave) error {
	if err := dbFrom(ctx, r.db).Save(leave).Error; err != nil {
		return apperr.Internal("failed to update leave", err)
	}
	return nil
}

func (r *leaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Leave{})
	if res.Error != nil {
		return apperr.Internal("failed to delete leave", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Leave")
	}
	return nil
}
