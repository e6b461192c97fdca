package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"carehub/internal/auth"
	"carehub/internal/config"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

func newAuthService(t *testing.T, db *gorm.DB) (AuthService, *auth.BootstrapGuard) {
	t.Helper()
	codec := auth.NewCodec(config.TokenConfig{
		Secret:        "test-signing-key",
		Algorithm:     "HS256",
		Issuer:        "carehub",
		Audience:      "carehub-api",
		ExpiryMinutes: 30,
	})
	guard := auth.NewBootstrapGuard(db)
	svc := NewAuthService(repository.NewUserRepository(db), codec, guard, nopNotifier{})
	return svc, guard
}

func seedLoginUser(t *testing.T, db *gorm.DB, password, status string) *model.User {
	t.Helper()
	user := seedStaff(t, db, model.RoleCareGiver)
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user.Password = hashed
	user.Status = status
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("update user: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedLoginUser(t, db, "open sesame 1", model.UserStatusActive)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: user.Username,
		Password: "open sesame 1",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.Username != user.Username {
		t.Errorf("user = %q, want %q", resp.User.Username, user.Username)
	}

	var stored model.User
	if err := db.First(&stored, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.LastLogin == nil {
		t.Error("last login not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedLoginUser(t, db, "open sesame 1", model.UserStatusActive)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: user.Username,
		Password: "not the password",
	})
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Fatalf("kind = %v, want unauthenticated", apperr.KindOf(err))
	}
	if err.Error() != "Invalid username or password" {
		t.Errorf("message = %q; must not reveal which part was wrong", err.Error())
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "nobody@example.com",
		Password: "whatever123",
	})
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Fatalf("kind = %v, want unauthenticated", apperr.KindOf(err))
	}
	if err.Error() != "Invalid username or password" {
		t.Errorf("message = %q; must match the wrong-password message exactly", err.Error())
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedLoginUser(t, db, "open sesame 1", model.UserStatusBlocked)

	// Correct password on a blocked account: the caller learns the block
	// only because they proved they own the credentials.
	_, err := svc.Login(context.Background(), LoginRequest{
		Username: user.Username,
		Password: "open sesame 1",
	})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("kind = %v, want forbidden", apperr.KindOf(err))
	}

	// Wrong password on a blocked account must look like any bad login.
	_, err = svc.Login(context.Background(), LoginRequest{
		Username: user.Username,
		Password: "not the password",
	})
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Fatalf("kind = %v, want unauthenticated", apperr.KindOf(err))
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedLoginUser(t, db, "old password 1", model.UserStatusActive)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "old password 1",
		NewPassword:     "new password 2",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Username: user.Username, Password: "new password 2"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: user.Username, Password: "old password 1"}); err == nil {
		t.Error("old password still accepted")
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedLoginUser(t, db, "old password 1", model.UserStatusActive)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new password 2",
	})
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("kind = %v, want unauthenticated", apperr.KindOf(err))
	}
}

func TestResetPasswordUnknownUserIsSilent(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	if err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Username: "nobody@example.com"}); err != nil {
		t.Errorf("ResetPassword for unknown user = %v, want nil", err)
	}
}

func TestResetPasswordRotatesCredential(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedLoginUser(t, db, "old password 1", model.UserStatusActive)

	if err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Username: user.Username}); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: user.Username, Password: "old password 1"}); err == nil {
		t.Error("old password still accepted after reset")
	}
}

func TestBlockUser(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	actor := seedStaff(t, db, model.RoleSuperuser)
	target := seedLoginUser(t, db, "open sesame 1", model.UserStatusActive)

	resp, err := svc.BlockUser(context.Background(), actor, target.Username)
	if err != nil {
		t.Fatalf("BlockUser: %v", err)
	}
	if resp.Status != model.UserStatusBlocked {
		t.Errorf("status = %q, want blocked", resp.Status)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Username: target.Username, Password: "open sesame 1"}); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("blocked account login kind = %v, want forbidden", apperr.KindOf(err))
	}
}

func TestBlockUserSelf(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	actor := seedStaff(t, db, model.RoleSuperuser)

	_, err := svc.BlockUser(context.Background(), actor, actor.Username)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestBlockSuperuserReopensBootstrap(t *testing.T) {
	db := newTestDB(t)
	svc, guard := newAuthService(t, db)
	actor := seedStaff(t, db, model.RoleSuperuser)
	target := seedStaff(t, db, model.RoleSuperuser)

	if !guard.SuperuserExists() {
		t.Fatal("expected superusers to be present")
	}

	if _, err := svc.BlockUser(context.Background(), actor, target.Username); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}

	// One active superuser remains, so the escape stays closed after the
	// forced re-check.
	if !guard.SuperuserExists() {
		t.Error("guard should still find the remaining superuser")
	}

	if _, err := svc.BlockUser(context.Background(), nil, actor.Username); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}
	if guard.SuperuserExists() {
		t.Error("guard should report no active superuser once all are blocked")
	}
}

func TestUnblockUser(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	target := seedLoginUser(t, db, "open sesame 1", model.UserStatusBlocked)

	resp, err := svc.UnblockUser(context.Background(), target.Username)
	if err != nil {
		t.Fatalf("UnblockUser: %v", err)
	}
	if resp.Status != model.UserStatusActive {
		t.Errorf("status = %q, want active", resp.Status)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: target.Username, Password: "open sesame 1"}); err != nil {
		t.Errorf("login after unblock: %v", err)
	}
}
