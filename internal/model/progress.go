package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressUpdateType constants
const (
	ProgressTypeWeekly  = "weekly"
	ProgressTypeMonthly = "monthly"
)

// ProgressStatus constants
const (
	ProgressStatusPending  = "pending"
	ProgressStatusApproved = "approved"
	ProgressStatusDeclined = "declined"
	ProgressStatusUpdated  = "updated"
)

// ProgressUpdate is a weekly or monthly progress note for a resident.
// Monthly updates carry the resident's weight; the deviation against the
// previous month's monthly weight is computed at creation time.
type ProgressUpdate struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"patientId"`
	Patient          *Patient   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	CareGiverID      *uuid.UUID `gorm:"type:uuid;index" json:"careGiverId"`
	CareGiver        *User      `gorm:"foreignKey:CareGiverID" json:"careGiver,omitempty"`
	Notes            string     `gorm:"type:text;not null" json:"notes"`
	DateTaken        time.Time  `gorm:"type:date;not null" json:"dateTaken"`
	Type             string     `gorm:"type:varchar(20);not null" json:"type"` // weekly, monthly
	Weight           *int       `json:"weight"`
	WeightDeviation  *int       `json:"weightDeviation"`
	Status           string     `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	DeclineReason    *string    `gorm:"type:text" json:"declineReason"`
	ReasonEdited     *string    `gorm:"type:text" json:"reasonEdited"`
	ReasonFilledLate *string    `gorm:"type:text" json:"reasonFilledLate"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt       time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (p *ProgressUpdate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
