package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChartStatus constants
const (
	ChartStatusPending  = "pending"
	ChartStatusApproved = "approved"
	ChartStatusDeclined = "declined"
)

// Chart is a daily behavioral charting record for one resident. The
// (patient, day) pair carries a unique index: the day column is derived
// from dateTaken so the one-chart-per-day rule holds at the database
// level even under concurrent submissions.
type Chart struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_charts_patient_day,priority:1" json:"patientId"`
	Patient              *Patient   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	CareGiverID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"careGiverId"`
	CareGiver            *User      `gorm:"foreignKey:CareGiverID;constraint:OnDelete:CASCADE" json:"careGiver,omitempty"`
	Behaviors            StringList `gorm:"type:jsonb;not null" json:"behaviors"`
	BehaviorsDescription StringList `gorm:"type:jsonb" json:"behaviorsDescription"`
	Vitals               StringList `gorm:"type:jsonb" json:"vitals"`
	Status               string     `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	ReasonNotFiled       *string    `gorm:"type:text" json:"reasonNotFiled"`
	DeclineReason        *string    `gorm:"type:text" json:"declineReason"`
	DateTaken            time.Time  `gorm:"not null" json:"dateTaken"`
	Day                  time.Time  `gorm:"type:date;not null;uniqueIndex:idx_charts_patient_day,priority:2" json:"-"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt           time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (c *Chart) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Day = DayOf(c.DateTaken)
	return nil
}

// DayOf truncates a timestamp to its calendar date.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
