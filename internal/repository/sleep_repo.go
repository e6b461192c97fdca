package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// SleepRepository defines data access for hourly sleep-check entries.
type SleepRepository interface {
	Create(ctx context.Context, sleep *model.Sleep) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Sleep, error)
	List(ctx context.Context, residentID *uuid.UUID, day *time.Time, offset, limit int) ([]model.Sleep, int64, error)
	Update(ctx context.Context, sleep *model.Sleep) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sleepRepository struct {
	db *gorm.DB
}

func NewSleepRepository(db *gorm.DB) SleepRepository {
	return &sleepRepository{db: db}
}

func (r *sleepRepository) Create(ctx context.Context, sleep *model.Sleep) error {
	if err := dbFrom(ctx, r.db).Create(sleep).Error; err != nil {
		return apperr.Internal("failed to create sleep entry", err)
	}
	return nil
}

func (r *sleepRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sleep, error) {
	var sleep model.Sleep
	if err := dbFrom(ctx, r.db).Preload("Resident").First(&sleep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sleep entry")
		}
		return nil, apperr.Internal("failed to fetch sleep entry", err)
	}
	return &sleep, nil
}

func (r *sleepRepository) List(ctx context.Context, residentID *uuid.UUID, day *time.Time, offset, limit int) ([]model.Sleep, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.Sleep{})
	if residentID != nil {
		q = q.Where("resident_id = ?", *residentID)
	}
	if day != nil {
		q = q.Where("date_taken = ?", model.DayOf(*day))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count sleep entries", err)
	}

	var sleeps []model.Sleep
	if err := q.Preload("Resident").Order("date_taken DESC, marked_for ASC").Offset(offset).Limit(limit).Find(&sleeps).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list sleep entries", err)
	}
	return sleeps, total, nil
}

func (r *sleepRepository) Update(ctx context.Context, sleep *model.Sleep) error {
	if err := dbFrom(ctx, r.db).Save(sleep).Error; err != nil {
		return apperr.Internal("failed to update sleep entry", err)
	}
	return nil
}

func (r *sleepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.Sleep{})
	if res.Error != nil {
		return apperr.Internal("failed to delete sleep entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Sleep entry")
	}
	return nil
}
