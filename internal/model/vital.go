package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VitalStatus constants
const (
	VitalStatusPending  = "pending"
	VitalStatusApproved = "approved"
	VitalStatusDeclined = "declined"
	VitalStatusUpdated  = "updated"
)

// Vital is a daily vital-signs reading for one resident. Readings are
// stored as exact decimals. One entry per resident per calendar day,
// enforced the same way as Chart.
type Vital struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vitals_patient_day,priority:1" json:"patientId"`
	Patient          *Patient        `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	CareGiverID      *uuid.UUID      `gorm:"type:uuid;index" json:"careGiverId"`
	CareGiver        *User           `gorm:"foreignKey:CareGiverID" json:"careGiver,omitempty"`
	BloodPressure    string          `gorm:"type:varchar(100);not null" json:"bloodPressure"`
	Temperature      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"temperature"`
	Pulse            decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"pulse"`
	OxygenSaturation decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"oxygenSaturation"`
	Pain             *string         `gorm:"type:text" json:"pain"`
	DateTaken        time.Time       `gorm:"not null" json:"dateTaken"`
	Day              time.Time       `gorm:"type:date;not null;uniqueIndex:idx_vitals_patient_day,priority:2" json:"-"`
	ReasonEdited     *string         `gorm:"type:text" json:"reasonEdited"`
	ReasonFilledLate *string         `gorm:"type:text" json:"reasonFilledLate"`
	Status           string          `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	DeclineReason    *string         `gorm:"type:text" json:"declineReason"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt       time.Time       `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (v *Vital) BeforeSave(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Day = DayOf(v.DateTaken)
	return nil
}
