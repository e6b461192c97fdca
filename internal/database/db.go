package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"carehub/internal/model"
)

// NewConnection initializes a new connection pool using GORM.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		log.Warn().Err(err).Msg("failed to auto-migrate models")
	}
	return db, nil
}

// Migrate creates or updates the schema for every model, including the
// composite unique indexes backing the one-record-per-day rules.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Facility{},
		&model.Branch{},
		&model.User{},
		&model.Patient{},
		&model.Chart{},
		&model.Vital{},
		&model.Medication{},
		&model.MedicationAdministration{},
		&model.ProgressUpdate{},
		&model.Leave{},
		&model.Incident{},
		&model.Grocery{},
		&model.Utility{},
		&model.Assessment{},
		&model.Appointment{},
		&model.Sleep{},
	)
}
