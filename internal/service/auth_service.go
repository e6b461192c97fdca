package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"carehub/internal/auth"
	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,nefield=CurrentPassword"`
}

type ResetPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

type BlockUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// AuthService defines authentication and account-status business logic.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	BlockUser(ctx context.Context, actor *model.User, username string) (*UserResponse, error)
	UnblockUser(ctx context.Context, username string) (*UserResponse, error)
}

type authService struct {
	users    repository.UserRepository
	codec    *auth.Codec
	guard    *auth.BootstrapGuard
	notifier mailer.Notifier
}

func NewAuthService(users repository.UserRepository, codec *auth.Codec, guard *auth.BootstrapGuard, notifier mailer.Notifier) AuthService {
	return &authService{users: users, codec: codec, guard: guard, notifier: notifier}
}

// Login authenticates a username/password pair and mints a session
// token. The password comparison always runs, even for unknown users and
// blocked accounts, so response timing does not leak which usernames
// exist or which accounts are blocked.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		auth.BurnComparison(req.Password)
		return nil, apperr.Unauthenticated("Invalid username or password")
	}

	if !auth.VerifyPassword(user.Password, req.Password) {
		return nil, apperr.Unauthenticated("Invalid username or password")
	}

	if !user.IsActive() {
		return nil, apperr.Forbidden("This account has been blocked. Contact an administrator.")
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	// Best effort: a failed timestamp write must not fail the login.
	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		log.Warn().Err(err).Str("username", user.Username).Msg("failed to record last login")
	}

	return &LoginResponse{Token: token, User: *mapUserResponse(user)}, nil
}

// ChangePassword verifies the caller's current password before storing
// the new one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(user.Password, req.CurrentPassword) {
		return apperr.Unauthenticated("Current password is incorrect")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	user.Password = hashed
	return s.users.Update(ctx, user)
}

// ResetPassword generates a fresh password and emails it to the account
// holder. The response is identical whether or not the username exists,
// so the endpoint cannot be used to enumerate accounts.
func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}
	if !user.IsActive() {
		return nil
	}

	plain := auth.GenerateRandomPassword()
	hashed, err := auth.HashPassword(plain)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	user.Password = hashed
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	subject, body := mailer.PasswordReset(user.FullName(), plain)
	sendMail(s.notifier, user.Username, user.FullName(), subject, body)
	return nil
}

// BlockUser sets an account to blocked, cutting off authentication. A
// user cannot block themselves; blocking a superuser re-opens the
// bootstrap question so the guard is invalidated.
func (s *authService) BlockUser(ctx context.Context, actor *model.User, username string) (*UserResponse, error) {
	if actor != nil && actor.Username == username {
		return nil, apperr.Validation("You cannot block your own account")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Status = model.UserStatusBlocked
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == model.RoleSuperuser {
		s.guard.Invalidate()
	}

	subject, body := mailer.AccountStatusChanged(user.FullName(), model.UserStatusBlocked)
	sendMail(s.notifier, user.Username, user.FullName(), subject, body)
	return mapUserResponse(user), nil
}

// UnblockUser re-activates a blocked account.
func (s *authService) UnblockUser(ctx context.Context, username string) (*UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Status = model.UserStatusActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == model.RoleSuperuser {
		s.guard.MarkSuperuserCreated()
	}

	subject, body := mailer.AccountStatusChanged(user.FullName(), model.UserStatusActive)
	sendMail(s.notifier, user.Username, user.FullName(), subject, body)
	return mapUserResponse(user), nil
}
