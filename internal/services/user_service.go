package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
	"github.com/registreehq/registree-api/internal/mailer"
	"github.com/registreehq/registree-api/internal/models"
	"github.com/registreehq/registree-api/internal/storage"
)

// defaultPassword backs accounts provisioned without a password, e.g. by an
// admin on someone's behalf. Retained deliberately from the original system.
const defaultPassword = "12345"

// signupEmailDelay postpones the verification mail so it never races the
// sign-up response.
const signupEmailDelay = 5 * time.Second

// UserService orchestrates the account lifecycle: creation, authentication,
// profile updates, password changes and deletion.
type UserService struct {
	users  storage.Repository[models.User]
	hasher *PasswordHasher
	tokens *TokenService
	mail   mailer.Mailer
}

func NewUserService(
	users storage.Repository[models.User],
	hasher *PasswordHasher,
	tokens *TokenService,
	mail mailer.Mailer,
) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens, mail: mail}
}

// Create registers an account and immediately authenticates it, so the
// response is login-shaped. Non-admin accounts start deactivated and receive
// a verification code by email; the email is fire-and-forget and its failure
// never fails the sign-up.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.AuthData, error) {
	if err := checkRequiredFields(map[string]string{
		"email":       req.Email,
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
		"phoneNumber": req.PhoneNumber,
		"role":        string(req.Role),
	}); err != nil {
		return nil, err
	}
	if err := validateEmailField(req.Email); err != nil {
		return nil, err
	}
	if err := validateRoleField(req.Role); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	if match, err := s.findDuplicate(ctx, email, req.PhoneNumber); err != nil {
		return nil, err
	} else if match != nil {
		message := "User already exists"
		if match.Email == email {
			message = "User with email already exists"
		} else if match.PhoneNumber == req.PhoneNumber {
			message = "User with phone number already exists"
		}
		return nil, apperr.Conflict(message)
	}

	rawPassword := req.Password
	if rawPassword == "" {
		rawPassword = defaultPassword
	}
	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	code := generateUniqueCode()
	user := models.User{
		ID:               uuid.New(),
		FirstName:        strings.ToLower(req.FirstName),
		LastName:         strings.ToLower(req.LastName),
		PhoneNumber:      req.PhoneNumber,
		Email:            email,
		Password:         hash,
		Role:             req.Role,
		VerificationCode: &code,
		ProfileImageURL:  models.DefaultProfileImageURL,
		Status:           req.Role == models.RoleAdmin,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if user.Role != models.RoleAdmin {
		go s.sendVerificationEmail(user.Email, code)
	}

	authenticated, err := s.Authenticate(ctx, user.Email, rawPassword)
	if err != nil {
		return nil, err
	}
	token, claims, err := s.tokens.Issue(authenticated)
	if err != nil {
		return nil, err
	}
	return newAuthData(authenticated, token, claims), nil
}

// Authenticate checks credentials against the stored hash. An unknown email
// and a wrong password yield the same error on purpose.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindOne(ctx, storage.Conditions{"email": strings.ToLower(email)})
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperr.NotFound("Invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, apperr.NotFound("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindOne(ctx, storage.Conditions{"id": userID})
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// List returns every account, or one page plus pagination metadata when
// paging parameters are supplied.
func (s *UserService) List(ctx context.Context, page *dto.PaginationRequest) ([]models.User, *dto.PaginationControl, error) {
	if page == nil || page.PageNumber <= 0 {
		users, err := s.users.FindAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		return users, nil, nil
	}

	offset := (page.PageNumber - 1) * page.PageSize
	users, total, err := s.users.FindPage(ctx, offset, page.PageSize)
	if err != nil {
		return nil, nil, err
	}
	totalPages := int(math.Ceil(float64(total) / float64(page.PageSize)))
	return users, &dto.PaginationControl{
		CurrentPage: page.PageNumber,
		TotalPages:  totalPages,
		PageSize:    page.PageSize,
		TotalCount:  total,
		HasPrevious: page.PageNumber > 1,
		HasNext:     page.PageNumber < totalPages,
	}, nil
}

// Update applies a partial update; untouched fields keep their stored value.
func (s *UserService) Update(ctx context.Context, req *dto.UpdateUserRequest) error {
	if err := checkRequiredFields(map[string]string{"userId": req.UserID}); err != nil {
		return err
	}
	user, err := s.FindByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	values := map[string]any{}
	if req.Email != "" {
		if err := validateEmailField(req.Email); err != nil {
			return err
		}
		if email := strings.ToLower(req.Email); email != user.Email {
			values["email"] = email
		}
	}
	if req.FirstName != "" {
		if name := strings.ToLower(req.FirstName); name != user.FirstName {
			values["first_name"] = name
		}
	}
	if req.LastName != "" {
		if name := strings.ToLower(req.LastName); name != user.LastName {
			values["last_name"] = name
		}
	}
	if req.PhoneNumber != "" && req.PhoneNumber != user.PhoneNumber {
		values["phone_number"] = req.PhoneNumber
	}
	if req.ProfileImageURL != "" && req.ProfileImageURL != user.ProfileImageURL {
		values["profile_image_url"] = req.ProfileImageURL
	}
	if req.Status != nil && *req.Status != user.Status {
		values["status"] = *req.Status
	}
	if req.Role != "" && req.Role != user.Role {
		if err := validateRoleField(req.Role); err != nil {
			return err
		}
		values["role"] = req.Role
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		values["password"] = hash
	}

	if len(values) == 0 {
		return nil
	}
	return s.users.Updates(ctx, storage.Conditions{"id": user.ID.String()}, values)
}

// ChangeAccountPassword requires the current password to verify before the
// new one is accepted.
func (s *UserService) ChangeAccountPassword(ctx context.Context, req *dto.ChangePasswordRequest, userID string) error {
	if err := checkRequiredFields(map[string]string{
		"currentPassword": req.CurrentPassword,
		"newPassword":     req.NewPassword,
	}); err != nil {
		return err
	}
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.CurrentPassword, user.Password) {
		return apperr.BadRequest("Could not verify current password")
	}
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.Updates(ctx, storage.Conditions{"id": user.ID.String()}, map[string]any{"password": hash})
}

// Delete hard-deletes the accounts with the given ids.
func (s *UserService) Delete(ctx context.Context, userIDs []string) error {
	return s.users.DeleteByIDs(ctx, userIDs)
}

// DeleteByEmail hard-deletes one account, confirming existence first.
func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	email = strings.ToLower(email)
	if _, err := s.users.FindOne(ctx, storage.Conditions{"email": email}); err != nil {
		if err == storage.ErrNotFound {
			return apperr.NotFound("User was not found")
		}
		return err
	}
	return s.users.Delete(ctx, storage.Conditions{"email": email})
}

// findDuplicate looks for an existing account on either login key. The
// check-then-act race against concurrent sign-ups is closed by the unique
// indexes on email and phone_number.
func (s *UserService) findDuplicate(ctx context.Context, email, phoneNumber string) (*models.User, error) {
	match, err := s.users.FindOne(ctx, storage.Conditions{"email": email})
	if err == nil {
		return match, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}
	match, err = s.users.FindOne(ctx, storage.Conditions{"phone_number": phoneNumber})
	if err == nil {
		return match, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}
	return nil, nil
}

func (s *UserService) sendVerificationEmail(email, code string) {
	time.Sleep(signupEmailDelay)
	html := verificationEmailHTML(code)
	if err := s.mail.Send(context.Background(), html, "Verify Account", []string{email}); err != nil {
		slog.Error("signup verification email failed", "error", err, "action", "sign-up")
	}
}

func newAuthData(user *models.User, token string, claims *Claims) *dto.AuthData {
	return &dto.AuthData{
		UserID:                  user.ID,
		Role:                    user.Role,
		Email:                   user.Email,
		DateCreated:             user.CreatedAt,
		Token:                   token,
		TokenInitializationDate: claims.IssuedAt.Unix(),
		TokenExpiryDate:         claims.ExpiresAt.Unix(),
		User:                    user,
	}
}
