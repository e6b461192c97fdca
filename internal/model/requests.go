package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveStatus constants
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusDeclined = "declined"
)

// Leave is a staff leave request.
type Leave struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID        *uuid.UUID `gorm:"type:uuid;index" json:"staffId"`
	Staff          *User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	ReasonForLeave string     `gorm:"type:text;not null" json:"reasonForLeave"`
	StartDate      time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate        time.Time  `gorm:"type:date;not null" json:"endDate"`
	Status         string     `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	DeclineReason  *string    `gorm:"type:text" json:"declineReason"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt     time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (l *Leave) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IncidentStatus constants
const (
	IncidentStatusPending  = "pending"
	IncidentStatusApproved = "approved"
	IncidentStatusUpdated  = "updated"
)

// Incident is a staff-filed incident report.
type Incident struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID    *uuid.UUID `gorm:"type:uuid;index" json:"staffId"`
	Staff      *User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Details    string     `gorm:"type:text;not null" json:"details"`
	FilePath   *string    `gorm:"type:varchar(500)" json:"filePath"`
	Status     string     `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// GroceryStatus constants
const (
	GroceryStatusPending   = "pending"
	GroceryStatusApproved  = "approved"
	GroceryStatusDeclined  = "declined"
	GroceryStatusUpdated   = "updated"
	GroceryStatusDelivered = "delivered"
)

// Grocery is a branch supply order raised by staff.
type Grocery struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID    *uuid.UUID      `gorm:"type:uuid;index" json:"staffId"`
	Staff      *User           `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	BranchID   *uuid.UUID      `gorm:"type:uuid;index" json:"branchId"`
	Branch     *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Items      GroceryItemList `gorm:"type:jsonb;not null" json:"items"`
	Feedback   *string         `gorm:"type:text" json:"feedback"`
	Status     string          `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt time.Time       `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (g *Grocery) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// UtilityStatus constants
const (
	UtilityStatusPending   = "pending"
	UtilityStatusReview    = "review"
	UtilityStatusAddressed = "addressed"
)

// Utility is a maintenance or utilities request.
type Utility struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID    *uuid.UUID `gorm:"type:uuid;index" json:"staffId"`
	Staff      *User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Item       string     `gorm:"type:varchar(255);not null" json:"item"`
	Details    string     `gorm:"type:text;not null" json:"details"`
	Status     string     `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (u *Utility) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
