package dto

import "github.com/registreehq/registree-api/internal/models"

type CreateUserRequest struct {
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	PhoneNumber string      `json:"phoneNumber"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        models.Role `json:"role"`
}

// UpdateUserRequest is a partial update: only supplied, changed fields are
// applied.
type UpdateUserRequest struct {
	UserID          string       `json:"userId"`
	FirstName       string       `json:"firstName,omitempty"`
	LastName        string       `json:"lastName,omitempty"`
	PhoneNumber     string       `json:"phoneNumber,omitempty"`
	Email           string       `json:"email,omitempty"`
	Password        string       `json:"password,omitempty"`
	Role            models.Role  `json:"role,omitempty"`
	ProfileImageURL string       `json:"profileImageUrl,omitempty"`
	Status          *bool        `json:"status,omitempty"`
}

// ChangePasswordRequest changes the password of an authenticated account and
// requires the current password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdatePasswordRequest finishes a password reset using a verification code.
type UpdatePasswordRequest struct {
	UniqueVerificationCode string `json:"uniqueVerificationCode"`
	NewPassword            string `json:"newPassword"`
}
