package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/registreehq/registree-api/internal/models"
)

// ErrMissingSecret means the server was started without a signing key. This
// is a configuration error, fatal at startup.
var ErrMissingSecret = errors.New("JWT secret is not configured")

// Claims is the fixed identity payload embedded in every bearer token.
type Claims struct {
	UserID      string      `json:"id"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	DateCreated time.Time   `json:"dateCreated"`
	jwt.RegisteredClaims
}

// TokenService signs and decodes HS256 bearer tokens with a fixed lifetime.
// Decode verifies the signature but deliberately not the expiry: expiry is
// the access guard's concern, so a refresh request can present a token that
// still parses after it has lapsed.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a fresh token for the user and returns it with its claims.
func (s *TokenService) Issue(user *models.User) (string, *Claims, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID:      user.ID.String(),
		Email:       user.Email,
		Role:        user.Role,
		DateCreated: user.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Decode parses and signature-checks a token, returning nil for anything
// malformed. An expired token with a valid signature still decodes.
func (s *TokenService) Decode(raw string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
