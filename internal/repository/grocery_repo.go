package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// GroceryRepository defines data access for Grocery requests.
type GroceryRepository interface {
	Create(ctx context.Context, grocery *model.Grocery) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Grocery, error)
	List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Grocery, int64, error)
	Update(ctx context.Context, grocery *model.Grocery) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type groceryRepository struct {
	db *gorm.DB
}

func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepository{db: db}
}

func (r *groceryRepository) Create(ctx context.Context, grocery *model.Grocery) error {
	if err := dbFrom(ctx, r.db).Create(grocery).Error; err != nil {
		return apperr.Internal("failed to create grocery request", err)
	}
	return nil
}

func (r *groceryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Grocery, error) {
	var grocery model.Grocery
	if err := dbFrom(ctx, r.db).Preload("Staff").First(&grocery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Grocery request")
		}
		return nil, apperr.Internal("failed to fetch grocery request", err)
	}
	return &grocery, nil
}

func (r *groceryRepository) List(ctx context.Context, filter StaffRequestFilter, offset, limit int) ([]model.Grocery, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Grocery{})
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count grocery requests", err)
	}

	var groceries []model.Grocery
	if err := q.Preload("Staff").Order("created_at DESC").Offset(offset).Limit(limit).Find(&groceries).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list grocery requests", err)
	}
	return groceries, total, nil
}

func (r *groceryRepository) Update(ctx context.Context, grocery *model.Grocery) error {
	if err := dbFrom(ctx, r.db).Save(grocery).Error; err != nil {
		return apperr.Internal("failed to update grocery request", err)
	}
	return nil
}

func (r *groceryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Grocery{})
	if res.Error != nil {
		return apperr.Internal("failed to delete grocery request", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Grocery request")
	}
	return nil
}
