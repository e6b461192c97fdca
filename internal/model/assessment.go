package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment schedules resident assessments and nursing care plan (NCP)
// reviews. Superusers are reminded by email when a next date approaches.
type Assessment struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID          *uuid.UUID `gorm:"type:uuid;index" json:"residentId"`
	Resident            *Patient   `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	AssessmentStartDate *time.Time `gorm:"type:date" json:"assessmentStartDate"`
	AssessmentNextDate  *time.Time `gorm:"type:date" json:"assessmentNextDate"`
	NCPStartDate        *time.Time `gorm:"type:date" json:"ncpStartDate"`
	NCPNextDate         *time.Time `gorm:"type:date" json:"ncpNextDate"`
	SocialWorker        string     `gorm:"type:varchar(255);not null" json:"socialWorker"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt          time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
