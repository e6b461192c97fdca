package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/pkg/apperr"
)

// UserFilter narrows user listings.
type UserFilter struct {
	Role     string
	Status   string
	BranchID *uuid.UUID
}

// UserRepository defines data access for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]model.User, int64, error)
	ListActiveSuperusers(ctx context.Context) ([]model.User, error)
	ListWithBirthdayOn(ctx context.Context, month, day int) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := dbFrom(ctx, r.db).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("A user with that username, email or phone number already exists")
		}
		return apperr.Internal("failed to create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := dbFrom(ctx, r.db).Preload("Branch").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := dbFrom(ctx, r.db).Preload("Branch").First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, offset, limit int) ([]model.User, int64, error) {
	q := dbFrom(ctx, r.db).Model(&model.User{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BranchID != nil {
		q = q.Where("branch_id = ?", *filter.BranchID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count users", err)
	}

	var users []model.User
	err := q.Preload("Branch").Order("created_at").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list users", err)
	}
	return users, total, nil
}

func (r *userRepository) ListActiveSuperusers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := dbFrom(ctx, r.db).
		Where("role = ? AND status = ?", model.RoleSuperuser, model.UserStatusActive).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal("failed to list superusers", err)
	}
	return users, nil
}

func (r *userRepository) ListWithBirthdayOn(ctx context.Context, month, day int) ([]model.User, error) {
	var users []model.User
	err := dbFrom(ctx, r.db).
		Where("date_of_birth IS NOT NULL").
		Where("EXTRACT(MONTH FROM date_of_birth) = ? AND EXTRACT(DAY FROM date_of_birth) = ?", month, day).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal("failed to list birthdays", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if err := dbFrom(ctx, r.db).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("A user with that username, email or phone number already exists")
		}
		return apperr.Internal("failed to update user", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return apperr.Internal("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
