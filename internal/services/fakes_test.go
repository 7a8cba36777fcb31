package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/registreehq/registree-api/internal/models"
	"github.com/registreehq/registree-api/internal/storage"
)

// fakeUserRepo is an in-memory Repository[models.User] honoring the column
// conditions the services actually use.
type fakeUserRepo struct {
	mu    sync.Mutex
	items []*models.User
}

func newFakeUserRepo(seed ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{}
	for _, u := range seed {
		copied := *u
		repo.items = append(repo.items, &copied)
	}
	return repo
}

func (f *fakeUserRepo) get(id string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.ID.String() == id {
			copied := *u
			return &copied
		}
	}
	return nil
}

func matches(u *models.User, where storage.Conditions) bool {
	for col, val := range where {
		switch col {
		case "id":
			if u.ID.String() != fmt.Sprint(val) {
				return false
			}
		case "email":
			if u.Email != val {
				return false
			}
		case "phone_number":
			if u.PhoneNumber != val {
				return false
			}
		case "unique_verification_code":
			if u.VerificationCode == nil || *u.VerificationCode != val {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (f *fakeUserRepo) Create(_ context.Context, entity *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.Email == entity.Email {
			return fmt.Errorf("duplicate key value violates unique constraint on email")
		}
		if u.PhoneNumber == entity.PhoneNumber {
			return fmt.Errorf("duplicate key value violates unique constraint on phone_number")
		}
	}
	copied := *entity
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeUserRepo) FindOne(_ context.Context, where storage.Conditions) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if matches(u, where) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.items))
	for _, u := range f.items {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindPage(_ context.Context, offset, limit int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := int64(len(f.items))
	if offset >= len(f.items) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	out := make([]models.User, 0, end-offset)
	for _, u := range f.items[offset:end] {
		out = append(out, *u)
	}
	return out, total, nil
}

func (f *fakeUserRepo) Updates(_ context.Context, where storage.Conditions, values map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if !matches(u, where) {
			continue
		}
		for col, val := range values {
			switch col {
			case "status":
				u.Status = val.(bool)
			case "password":
				u.Password = val.(string)
			case "unique_verification_code":
				if val == nil {
					u.VerificationCode = nil
				} else {
					code := val.(string)
					u.VerificationCode = &code
				}
			case "email":
				u.Email = val.(string)
			case "first_name":
				u.FirstName = val.(string)
			case "last_name":
				u.LastName = val.(string)
			case "phone_number":
				u.PhoneNumber = val.(string)
			case "profile_image_url":
				u.ProfileImageURL = val.(string)
			case "role":
				u.Role = val.(models.Role)
			}
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, where storage.Conditions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, u := range f.items {
		if !matches(u, where) {
			kept = append(kept, u)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeUserRepo) DeleteByIDs(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	kept := f.items[:0]
	for _, u := range f.items {
		if !idSet[u.ID.String()] {
			kept = append(kept, u)
		}
	}
	f.items = kept
	return nil
}

// fakeMailer records deliveries and optionally fails them.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []fakeMail
	failWith error
}

type fakeMail struct {
	HTML       string
	Subject    string
	Recipients []string
}

func (f *fakeMailer) Send(_ context.Context, html, subject string, recipients []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, fakeMail{HTML: html, Subject: subject, Recipients: recipients})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
