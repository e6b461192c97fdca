package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carehub/internal/auth"
	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateUserRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	MiddleNames string `json:"middleNames"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Sex         string `json:"sex" binding:"required,oneof=male female other"`
	DateOfBirth string `json:"dateOfBirth"`
	Role        string `json:"role" binding:"required"`
	BranchID    string `json:"branchId"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"firstName"`
	MiddleNames string `json:"middleNames"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Sex         string `json:"sex" binding:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"dateOfBirth"`
	Role        string `json:"role"`
	BranchID    string `json:"branchId"`
}

type ListUsersQuery struct {
	Role     string
	Status   string
	BranchID *uuid.UUID
}

// UserResponse returns user data without the password hash.
type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	Username    string        `json:"username"`
	FirstName   string        `json:"firstName"`
	MiddleNames *string       `json:"middleNames"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Sex         string        `json:"sex"`
	DateOfBirth *string       `json:"dateOfBirth"`
	Role        string        `json:"role"`
	Status      string        `json:"status"`
	BranchID    *uuid.UUID    `json:"branchId"`
	Branch      *model.Branch `json:"branch,omitempty"`
	LastLogin   *time.Time    `json:"lastLogin"`
	CreatedAt   time.Time     `json:"createdAt"`
	ModifiedAt  time.Time     `json:"modifiedAt"`
}

// UserService defines business logic for staff accounts.
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	ListUsers(ctx context.Context, query ListUsersQuery, offset, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users    repository.UserRepository
	branches repository.BranchRepository
	guard    *auth.BootstrapGuard
	notifier mailer.Notifier
}

func NewUserService(users repository.UserRepository, branches repository.BranchRepository, guard *auth.BootstrapGuard, notifier mailer.Notifier) UserService {
	return &userService{users: users, branches: branches, guard: guard, notifier: notifier}
}

func mapUserResponse(user *model.User) *UserResponse {
	var dob *string
	if user.DateOfBirth != nil {
		s := user.DateOfBirth.Format(dateLayout)
		dob = &s
	}
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		MiddleNames: user.MiddleNames,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Sex:         user.Sex,
		DateOfBirth: dob,
		Role:        user.Role,
		Status:      user.Status,
		BranchID:    user.BranchID,
		Branch:      user.Branch,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
		ModifiedAt:  user.ModifiedAt,
	}
}

// CreateUser registers a staff account. The email doubles as the login
// username; the account starts with a generated password delivered by
// email, which the user is expected to change.
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, apperr.FieldErrors(map[string]string{
			"role": "must be one of: care giver, manager, superuser",
		})
	}

	dob, err := parseOptionalDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	branchID, err := parseOptionalID("branchId", req.BranchID)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		if _, err := s.branches.GetByID(ctx, *branchID); err != nil {
			return nil, err
		}
	}

	plain := auth.GenerateRandomPassword()
	hashed, err := auth.HashPassword(plain)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	var middleNames *string
	if req.MiddleNames != "" {
		middleNames = &req.MiddleNames
	}

	user := &model.User{
		Username:    req.Email,
		Password:    hashed,
		FirstName:   req.FirstName,
		MiddleNames: middleNames,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Sex:         req.Sex,
		DateOfBirth: dob,
		Role:        req.Role,
		Status:      model.UserStatusActive,
		BranchID:    branchID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == model.RoleSuperuser {
		s.guard.MarkSuperuserCreated()
	}

	subject, body := mailer.Welcome(user.FullName(), user.Username, plain)
	sendMail(s.notifier, user.Username, user.FullName(), subject, body)
	return mapUserResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, query ListUsersQuery, offset, limit int) ([]UserResponse, int64, error) {
	filter := repository.UserFilter{Role: query.Role, Status: query.Status, BranchID: query.BranchID}
	users, total, err := s.users.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, apperr.FieldErrors(map[string]string{
				"role": "must be one of: care giver, manager, superuser",
			})
		}
		// Demoting the only superuser would lock administration out, so
		// re-check on the next privileged request.
		if user.Role == model.RoleSuperuser && req.Role != model.RoleSuperuser {
			s.guard.Invalidate()
		}
		user.Role = req.Role
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.MiddleNames != "" {
		user.MiddleNames = &req.MiddleNames
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Sex != "" {
		user.Sex = req.Sex
	}
	if req.DateOfBirth != "" {
		dob, err := parseDate("dateOfBirth", req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = &dob
	}
	if req.BranchID != "" {
		branchID, err := parseID("branchId", req.BranchID)
		if err != nil {
			return nil, err
		}
		if _, err := s.branches.GetByID(ctx, branchID); err != nil {
			return nil, err
		}
		user.BranchID = &branchID
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	// A promotion closes the bootstrap escape just like account creation.
	if user.Role == model.RoleSuperuser && user.IsActive() {
		s.guard.MarkSuperuserCreated()
	}
	return mapUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if user.Role == model.RoleSuperuser {
		s.guard.Invalidate()
	}
	return nil
}
