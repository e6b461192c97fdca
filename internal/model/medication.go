package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicationStatus constants
const (
	MedicationStatusActive  = "active"
	MedicationStatusStale   = "stale"
	MedicationStatusPaused  = "paused"
	MedicationStatusRemoved = "removed"
)

// Medication is a prescription attached to a resident. MedicationTime
// lists the scheduled administration times of day.
type Medication struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patientId"`
	Patient        *Patient   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	MedicationName string     `gorm:"type:varchar(255);not null" json:"medicationName"`
	MedicationCode string     `gorm:"type:varchar(50);not null" json:"medicationCode"`
	EquivalentTo   string     `gorm:"type:varchar(255);not null" json:"equivalentTo"`
	Instructions   string     `gorm:"type:text;not null" json:"instructions"`
	Quantity       string     `gorm:"type:varchar(255);not null" json:"quantity"`
	Diagnosis      string     `gorm:"type:text;not null" json:"diagnosis"`
	MedicationTime StringList `gorm:"type:jsonb;not null" json:"medicationTime"`
	Status         string     `gorm:"type:varchar(50);not null;default:'active'" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt     time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AdministrationStatus constants
const (
	AdministrationStatusPending  = "pending"
	AdministrationStatusApproved = "approved"
	AdministrationStatusDeclined = "declined"
)

// MedicationAdministration records the times a medication was given to a
// resident on one day. A second record for the same medication, resident
// and day is a duplicate and is rejected at the database level.
type MedicationAdministration struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID         uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_med_admin_day,priority:1" json:"patientId"`
	Patient           *Patient    `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	MedicationID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_med_admin_day,priority:2" json:"medicationId"`
	Medication        *Medication `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE" json:"medication,omitempty"`
	CareGiverID       *uuid.UUID  `gorm:"type:uuid;index" json:"careGiverId"`
	CareGiver         *User       `gorm:"foreignKey:CareGiverID" json:"careGiver,omitempty"`
	TimesAdministered StringList  `gorm:"type:jsonb;not null" json:"timesAdministered"`
	Status            string      `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	ReasonNotFiled    *string     `gorm:"type:text" json:"reasonNotFiled"`
	AdministeredOn    time.Time   `gorm:"type:date;not null;uniqueIndex:idx_med_admin_day,priority:3" json:"administeredOn"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt        time.Time   `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (a *MedicationAdministration) BeforeSave(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.AdministeredOn = DayOf(a.AdministeredOn)
	return nil
}
