package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentTypes lists the provider categories an appointment can be
// booked with.
var AppointmentTypes = []string{
	"Primary Care Provider (PCP)",
	"Mental Health Provider / Physician/ Prescriber",
	"Clinician",
	"Peer Support Counsellor",
	"Counsellor",
	"Dentist",
	"Specialist",
	"Other",
}

// ValidAppointmentType reports whether t is a known provider category.
func ValidAppointmentType(t string) bool {
	for _, v := range AppointmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Appointment records an external provider visit for one resident,
// optionally with the follow-up date already booked.
type Appointment struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"patientId"`
	Patient             *Patient   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	DateTaken           time.Time  `gorm:"type:date;not null" json:"dateTaken"`
	Details             *string    `gorm:"type:text" json:"details"`
	Type                string     `gorm:"type:varchar(100);not null" json:"type"`
	NextAppointmentDate *time.Time `gorm:"type:date" json:"nextAppointmentDate"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt          time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
