package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/mailer"
	"github.com/registreehq/registree-api/internal/models"
	"github.com/registreehq/registree-api/internal/storage"
)

const verificationCodeLength = 6

// generateUniqueCode derives a short single-use code from a random UUID.
// Generation does not check outstanding codes for collisions; the unique
// index on the column rejects the rare clash at insert time.
func generateUniqueCode() string {
	return uuid.NewString()[:verificationCodeLength]
}

func verificationEmailHTML(code string) string {
	return fmt.Sprintf(`
		<h2>Please copy the code below to verify your account</h2>
		<h3>%s</h3>
	`, code)
}

func ownershipEmailHTML(code string) string {
	return fmt.Sprintf(`
		<h2>Please copy the code below to verify your account ownership</h2>
		<h3>%s</h3>
	`, code)
}

// VerificationService drives the two single-use-code flows: signup
// verification and password reset. They share code storage but differ in
// when a code is replaced and when it is cleared.
type VerificationService struct {
	users  storage.Repository[models.User]
	hasher *PasswordHasher
	mail   mailer.Mailer
}

func NewVerificationService(users storage.Repository[models.User], hasher *PasswordHasher, mail mailer.Mailer) *VerificationService {
	return &VerificationService{users: users, hasher: hasher, mail: mail}
}

// VerifySignupCode confirms account activation. The code must belong to the
// authenticated requester; it is not cleared on success, matching the
// long-standing behavior of this flow.
func (s *VerificationService) VerifySignupCode(ctx context.Context, code, requesterID string) error {
	user, err := s.users.FindOne(ctx, storage.Conditions{"unique_verification_code": code})
	if err != nil {
		if err == storage.ErrNotFound {
			return apperr.NotFound("Code was not found")
		}
		return err
	}
	if user.ID.String() != requesterID {
		return apperr.Forbidden("This code does not belong to you")
	}
	return s.users.Updates(ctx, storage.Conditions{"id": user.ID.String()}, map[string]any{"status": true})
}

// ResendCode re-sends the outstanding verification code, generating a fresh
// one only when none is outstanding. Calling it repeatedly without an
// intervening verification returns the same code each time.
func (s *VerificationService) ResendCode(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", apperr.BadRequest("Field userId is required")
	}
	user, err := s.users.FindOne(ctx, storage.Conditions{"id": userID})
	if err != nil {
		if err == storage.ErrNotFound {
			return "", apperr.NotFound("User was not found")
		}
		return "", err
	}

	var code string
	if user.VerificationCode != nil {
		code = *user.VerificationCode
	} else {
		code = generateUniqueCode()
		err := s.users.Updates(ctx, storage.Conditions{"id": user.ID.String()},
			map[string]any{"unique_verification_code": code})
		if err != nil {
			return "", err
		}
	}

	if err := s.mail.Send(ctx, verificationEmailHTML(code), "Verify Account", []string{user.Email}); err != nil {
		slog.Error("verification code resend email failed", "error", err, "action", "resend-otp")
	}
	return code, nil
}

// InitiateForgotPassword always issues a brand-new code, replacing any
// outstanding one, and emails it. Unlike every other mail in the system, a
// delivery failure here is fatal: without the email the flow is dead.
func (s *VerificationService) InitiateForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindOne(ctx, storage.Conditions{"email": strings.ToLower(email)})
	if err != nil {
		if err == storage.ErrNotFound {
			return apperr.NotFound("User was not found")
		}
		return err
	}

	code := generateUniqueCode()
	err = s.users.Updates(ctx, storage.Conditions{"id": user.ID.String()},
		map[string]any{"unique_verification_code": code})
	if err != nil {
		return err
	}

	if err := s.mail.Send(ctx, ownershipEmailHTML(code), "Verify Account Ownership", []string{user.Email}); err != nil {
		slog.Error("forgot-password email failed", "error", err, "action", "forgot-password")
		return apperr.Internal("Email was not sent")
	}
	return nil
}

// FinalizeForgotPassword is an existence check only, letting a client
// confirm a code before submitting the new password.
func (s *VerificationService) FinalizeForgotPassword(ctx context.Context, code string) error {
	if _, err := s.users.FindOne(ctx, storage.Conditions{"unique_verification_code": code}); err != nil {
		if err == storage.ErrNotFound {
			return apperr.NotFound("Invalid verification code")
		}
		return err
	}
	return nil
}

// ChangePasswordWithCode sets a new password for the code's owner and clears
// the code. This is the only path that clears a verification code. Reusing
// the current password is a conflict and leaves the store untouched.
func (s *VerificationService) ChangePasswordWithCode(ctx context.Context, code, newPassword string) error {
	user, err := s.users.FindOne(ctx, storage.Conditions{"unique_verification_code": code})
	if err != nil {
		if err == storage.ErrNotFound {
			return apperr.NotFound("Invalid verification code")
		}
		return err
	}
	if s.hasher.Verify(newPassword, user.Password) {
		return apperr.Conflict("Both old and new password match")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.Updates(ctx, storage.Conditions{"id": user.ID.String()}, map[string]any{
		"password":                 hash,
		"unique_verification_code": nil,
	})
}
