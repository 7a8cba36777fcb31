package services

import (
	"context"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
)

// AuthService issues bearer tokens against verified credentials. Tokens are
// stateless: there is no revocation list, expiry is the only invalidation.
type AuthService struct {
	users  *UserService
	tokens *TokenService
}

func NewAuthService(users *UserService, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthData, error) {
	user, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return newAuthData(user, token, claims), nil
}

// RefreshToken re-signs fresh claims for a still-valid subject.
func (s *AuthService) RefreshToken(ctx context.Context, userID string) (*dto.AuthData, error) {
	if userID == "" {
		return nil, apperr.BadRequest("Field userId is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return newAuthData(user, token, claims), nil
}
