package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Roles lists every valid role, in the order they are reported to clients.
func Roles() []Role {
	return []Role{RoleAdmin, RoleCustomer}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// DefaultProfileImageURL is assigned to accounts created without an avatar.
const DefaultProfileImageURL = "https://ik.imagekit.io/cmz0p5kwiyok/public-images/male-icon_LyevsSXsx.png"

// User is the account entity. Password and the verification code never
// serialize into responses. Email, phone number and the outstanding
// verification code carry database-level unique indexes; the code index is
// nullable so any number of consumed (null) codes may coexist.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName        string    `gorm:"size:20" json:"firstName"`
	LastName         string    `gorm:"size:20" json:"lastName"`
	PhoneNumber      string    `gorm:"size:50;uniqueIndex" json:"phoneNumber"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password         string    `gorm:"size:255;not null" json:"-"`
	Role             Role      `gorm:"size:20;default:'CUSTOMER'" json:"role"`
	VerificationCode *string   `gorm:"column:unique_verification_code;size:100;uniqueIndex" json:"-"`
	ProfileImageURL  string    `gorm:"type:text" json:"profileImageUrl"`
	Status           bool      `gorm:"default:false" json:"status"`
	CreatedAt        time.Time `json:"dateCreated"`
	UpdatedAt        time.Time `json:"dateUpdated"`
}
