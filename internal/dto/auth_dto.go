package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/registreehq/registree-api/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData is the payload of a successful login, sign-up or token refresh.
type AuthData struct {
	UserID                  uuid.UUID    `json:"userId"`
	Role                    models.Role  `json:"role"`
	Email                   string       `json:"email"`
	DateCreated             time.Time    `json:"dateCreated"`
	Token                   string       `json:"token"`
	TokenInitializationDate int64        `json:"tokenInitializationDate"`
	TokenExpiryDate         int64        `json:"tokenExpiryDate"`
	User                    *models.User `json:"user"`
}
