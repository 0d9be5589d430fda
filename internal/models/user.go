package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// AccessState tracks whether a user has paid for the test.
type AccessState string

const (
	AccessUnpaid  AccessState = "unpaid"
	AccessPaid    AccessState = "paid"
	AccessRevoked AccessState = "revoked"
)

var AccessStates = []AccessState{AccessUnpaid, AccessPaid, AccessRevoked}

func (s AccessState) Valid() bool {
	switch s {
	case AccessUnpaid, AccessPaid, AccessRevoked:
		return true
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	FullName     string   `json:"full_name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;default:user;size:20;index"`

	// Access
	AccessState AccessState `json:"access_state" gorm:"not null;default:unpaid;size:20;index"`
	PaidAt      *time.Time  `json:"paid_at"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanTakeTests reports whether the user may save answers.
func (u *User) CanTakeTests() bool {
	return u.AccessState == AccessPaid
}
