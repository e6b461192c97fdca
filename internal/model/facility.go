package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Facility is a care home operating one or more branches.
type Facility struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FacilityName    string    `gorm:"type:varchar(255);not null" json:"facilityName"`
	FacilityAddress string    `gorm:"type:varchar(255);not null" json:"facilityAddress"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt      time.Time `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (f *Facility) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Branch is a physical location of a facility. Users and patients are
// affiliated with at most one branch.
type Branch struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FacilityID    uuid.UUID `gorm:"type:uuid;not null;index" json:"facilityId"`
	Facility      *Facility `gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE" json:"facility,omitempty"`
	BranchName    string    `gorm:"type:varchar(255);not null" json:"branchName"`
	BranchAddress string    `gorm:"type:varchar(255);not null" json:"branchAddress"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt    time.Time `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
