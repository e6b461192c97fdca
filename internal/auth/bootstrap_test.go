package auth

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carehub/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role, status string) *model.User {
	t.Helper()
	suffix := uuid.NewString()
	user := &model.User{
		Username:    suffix + "@example.com",
		Password:    "x",
		FirstName:   "Test",
		LastName:    "User",
		Email:       suffix + "@example.com",
		PhoneNumber: suffix,
		Sex:         "female",
		Role:        role,
		Status:      status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestSuperuserExistsEmptyDatabase(t *testing.T) {
	guard := NewBootstrapGuard(openTestDB(t))
	if guard.SuperuserExists() {
		t.Error("empty database should report no superuser")
	}
}

func TestSuperuserExistsIgnoresOtherRoles(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, model.RoleManager, model.UserStatusActive)
	seedUser(t, db, model.RoleCareGiver, model.UserStatusActive)

	guard := NewBootstrapGuard(db)
	if guard.SuperuserExists() {
		t.Error("non-superuser accounts must not close the bootstrap escape")
	}
}

func TestSuperuserExistsIgnoresBlocked(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, model.RoleSuperuser, model.UserStatusBlocked)

	guard := NewBootstrapGuard(db)
	if guard.SuperuserExists() {
		t.Error("a blocked superuser must not close the bootstrap escape")
	}
}

func TestSuperuserExistsFindsActiveSuperuser(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, model.RoleSuperuser, model.UserStatusActive)

	guard := NewBootstrapGuard(db)
	if !guard.SuperuserExists() {
		t.Error("active superuser not detected")
	}
}

func TestSuperuserExistsCachesAnswer(t *testing.T) {
	db := openTestDB(t)
	guard := NewBootstrapGuard(db)

	if guard.SuperuserExists() {
		t.Fatal("expected no superuser yet")
	}

	// A row created behind the guard's back is not seen until the cache
	// is invalidated.
	seedUser(t, db, model.RoleSuperuser, model.UserStatusActive)
	if guard.SuperuserExists() {
		t.Error("cached answer should still be false")
	}

	guard.Invalidate()
	if !guard.SuperuserExists() {
		t.Error("invalidated guard should re-query and find the superuser")
	}
}

func TestMarkSuperuserCreated(t *testing.T) {
	guard := NewBootstrapGuard(openTestDB(t))
	guard.MarkSuperuserCreated()
	if !guard.SuperuserExists() {
		t.Error("MarkSuperuserCreated should flip the cached answer without a query")
	}
}

func TestSuperuserExistsFailsClosed(t *testing.T) {
	db := openTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.Close()

	guard := NewBootstrapGuard(db)
	if !guard.SuperuserExists() {
		t.Error("query failure must report true so the escape stays closed")
	}
}
