package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
)

func newTestAuthService(t *testing.T, repo *fakeUserRepo) (*AuthService, *UserService) {
	t.Helper()
	tokens, err := NewTokenService("test-secret", 24*time.Hour)
	require.NoError(t, err)
	users := NewUserService(repo, NewPasswordHasher(), tokens, &fakeMailer{})
	return NewAuthService(users, tokens), users
}

func TestLoginReturnsAuthData(t *testing.T) {
	auth, users := newTestAuthService(t, newFakeUserRepo())
	created, err := users.Create(context.Background(), signupRequest())
	require.NoError(t, err)

	data, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "a@x.com",
		Password: "pass-word-1",
	})
	require.NoError(t, err)
	assert.Equal(t, created.UserID, data.UserID)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, data.TokenInitializationDate+int64((24*time.Hour).Seconds()), data.TokenExpiryDate)
	require.NotNil(t, data.User)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, users := newTestAuthService(t, newFakeUserRepo())
	_, err := users.Create(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), &dto.LoginRequest{Email: "a@x.com", Password: "nope"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

func TestRefreshTokenRequiresUserID(t *testing.T) {
	auth, _ := newTestAuthService(t, newFakeUserRepo())

	_, err := auth.RefreshToken(context.Background(), "")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Field userId is required", appErr.Message)
}

func TestRefreshTokenReissues(t *testing.T) {
	auth, users := newTestAuthService(t, newFakeUserRepo())
	created, err := users.Create(context.Background(), signupRequest())
	require.NoError(t, err)

	data, err := auth.RefreshToken(context.Background(), created.UserID.String())
	require.NoError(t, err)
	assert.Equal(t, created.UserID, data.UserID)

	tokens, _ := NewTokenService("test-secret", 24*time.Hour)
	claims := tokens.Decode(data.Token)
	require.NotNil(t, claims)
	assert.Equal(t, created.UserID.String(), claims.UserID)
}

func TestRefreshTokenUnknownUser(t *testing.T) {
	auth, _ := newTestAuthService(t, newFakeUserRepo())

	_, err := auth.RefreshToken(context.Background(), "00000000-0000-0000-0000-000000000001")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "User not found", appErr.Message)
}
