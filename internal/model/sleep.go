package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SleepMark values
const (
	SleepMarkAwake    = "A"
	SleepMarkSleeping = "S"
)

// SleepSlots enumerates the hourly check slots of a sleep chart, running
// from the morning shift handover through the night.
var SleepSlots = []string{
	"7:00AM", "8:00AM", "9:00AM", "10:00AM", "11:00AM", "12:00PM",
	"1:00PM", "2:00PM", "3:00PM", "4:00PM", "5:00PM", "6:00PM",
	"7:00PM", "8:00PM", "9:00PM", "10:00PM", "11:00PM", "12:00AM",
	"1:00AM", "2:00AM", "3:00AM", "4:00AM", "5:00AM", "6:00AM",
}

// ValidSleepSlot reports whether slot is one of the hourly check slots.
func ValidSleepSlot(slot string) bool {
	for _, v := range SleepSlots {
		if v == slot {
			return true
		}
	}
	return false
}

// Sleep is one hourly sleep-check observation for a resident. The
// resident link is nullable so observations survive a resident being
// removed.
type Sleep struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID       *uuid.UUID `gorm:"type:uuid;index" json:"residentId"`
	Resident         *Patient   `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	MarkAs           string     `gorm:"type:varchar(10);not null" json:"markAs"`
	DateTaken        time.Time  `gorm:"type:date;not null" json:"dateTaken"`
	MarkedFor        string     `gorm:"type:varchar(20);not null" json:"markedFor"`
	ReasonFilledLate *string    `gorm:"type:text" json:"reasonFilledLate"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt       time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (s *Sleep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
