package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// UtilityRepository defines data access for Utility (maintenance) requests.
type UtilityRepository interface {
	Create(ctx context.Context, utility *model.Utility) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Utility, error)
	List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Utility, int64, error)
	Update(ctx context.Context, utility *model.Utility) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type utilityRepository struct {
	db *gorm.DB
}

func NewUtilityRepository(db *gorm.DB) UtilityRepository {
	return &utilityRepository{db: db}
}

func (r *utilityRepository) Create(ctx context.Context, utility *model.Utility) error {
	if err := dbFrom(ctx, r.db).Create(utility).Error; err != nil {
		return apperr.Internal("failed to create utility request", err)
	}
	return nil
}

func (r *utilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Utility, error) {
	var utility model.Utility
	if err := dbFrom(ctx, r.db).Preload("Staff").First(&utility, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utility request")
		}
		return nil, apperr.Internal("failed to fetch utility request", err)
	}
	return &utility, nil
}

func (r *utilityRepository) List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Utility, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Utility{})
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count utility requests", err)
	}

	var utilities []model.Utility
	if err := q.Preload("Staff").Order("created_at DESC").Offset(offset).Limit(limit).Find(&utilities).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list utility requests", err)
	}
	return utilities, total, nil
}

func (r *utilityRepository) Update(ctx context.Context, utility *model.Utility) error {
	if err := dbFrom(ctx, r.db).Save(utility).Error; err != nil {
		return apperr.Internal("failed to update utility request", err)
	}
	return nil
}

func (r *utilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Utility{})
	if res.Error != nil {
		return apperr.Internal("failed to delete utility request", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Utility request")
	}
	return nil
}
