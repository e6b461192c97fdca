package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a resident of a branch.
type Patient struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string     `gorm:"type:varchar(255);not null" json:"firstName"`
	MiddleNames   *string    `gorm:"type:varchar(255)" json:"middleNames"`
	LastName      string     `gorm:"type:varchar(255);not null" json:"lastName"`
	DateOfBirth   time.Time  `gorm:"type:date;not null" json:"dateOfBirth"`
	Diagnosis     string     `gorm:"type:text;not null" json:"diagnosis"`
	Allergies     string     `gorm:"type:text;not null" json:"allergies"`
	PhysicianName string     `gorm:"type:varchar(255);not null" json:"physicianName"`
	PcpOrDoctor   string     `gorm:"type:varchar(255);not null" json:"pcpOrDoctor"`
	BranchID      *uuid.UUID `gorm:"type:uuid;index" json:"branchId"`
	Branch        *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Room          string     `gorm:"type:varchar(255);not null" json:"room"`
	Cart          string     `gorm:"type:varchar(255);not null" json:"cart"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt    time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName concatenates the resident's first and last name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
