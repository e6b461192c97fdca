package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleCareGiver = "care giver"
	RoleManager   = "manager"
	RoleSuperuser = "superuser"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleCareGiver || role == RoleManager || role == RoleSuperuser
}

// UserStatus constants
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User is the central identity record. The username doubles as the login
// handle and the notification email address.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName   string     `gorm:"type:varchar(255);not null" json:"firstName"`
	MiddleNames *string    `gorm:"type:varchar(255)" json:"middleNames"`
	LastName    string     `gorm:"type:varchar(255);not null" json:"lastName"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phoneNumber"`
	Sex         string     `gorm:"type:varchar(6);not null" json:"sex"` // male, female, other
	DateOfBirth *time.Time `gorm:"type:date" json:"dateOfBirth"`
	Role        string     `gorm:"type:varchar(50);not null;index" json:"role"`
	Status      string     `gorm:"type:varchar(50);not null;default:'active'" json:"status"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index" json:"branchId"`
	Branch      *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	LastLogin   *time.Time `json:"lastLogin"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ModifiedAt  time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName concatenates first and last name, the form embedded in tokens.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
