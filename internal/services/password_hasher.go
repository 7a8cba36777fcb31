package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the fixed bcrypt work factor applied to every password.
const hashCost = 10

// PasswordHasher wraps one-way password hashing and verification. Both
// operations are pure over their inputs.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: hashCost}
}

func (p *PasswordHasher) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether raw matches the stored hash. A mismatch is false,
// never an error; only a malformed stored hash would also come back false.
func (p *PasswordHasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
