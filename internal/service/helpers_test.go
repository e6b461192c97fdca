package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carehub/internal/database"
	"carehub/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStaff(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()
	suffix := uuid.NewString()
	user := &model.User{
		Username:    suffix + "@example.com",
		Password:    "x",
		FirstName:   "Test",
		LastName:    "Staff",
		Email:       suffix + "@example.com",
		PhoneNumber: suffix,
		Sex:         "female",
		Role:        role,
		Status:      model.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return user
}

func seedPatient(t *testing.T, db *gorm.DB) *model.Patient {
	t.Helper()
	patient := &model.Patient{
		FirstName:     "Ada",
		LastName:      "Resident",
		DateOfBirth:   time.Date(1948, 3, 14, 0, 0, 0, 0, time.UTC),
		Diagnosis:     "dementia",
		Allergies:     "none",
		PhysicianName: "Dr. Hale",
		PcpOrDoctor:   "Dr. Hale",
		Room:          "12B",
		Cart:          "2",
	}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return patient
}

// nopNotifier satisfies mailer.Notifier without touching the network.
type nopNotifier struct{}

func (nopNotifier) Send(_ context.Context, _, _, _, _ string) error { return nil }
