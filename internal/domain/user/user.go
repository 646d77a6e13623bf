package user

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"taskhub/internal/apperr"
)

// Role is ordered by privilege so authorization checks compare instead
// of enumerating role names at every call site.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleManager:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r carries the capability of required, so an
// admin passes a manager check.
func (r Role) AtLeast(required Role) bool {
	return r.rank() >= required.rank()
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// New builds a user with a fresh id. Role defaults to member when empty.
func New(email, passwordHash, name string, role Role) User {
	if role == "" {
		role = RoleMember
	}
	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsManager() bool {
	return u.Role.AtLeast(RoleManager)
}

// NormalizeEmail lowercases the address after a shape check. The check is
// deliberately loose; deliverability is the mail system's problem.
func NormalizeEmail(email string) (string, error) {
	if email == "" {
		return "", apperr.Validation("email cannot be empty")
	}

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "", apperr.Validation("invalid email format")
	}

	return strings.ToLower(email), nil
}

const (
	passwordMinLength = 8
	passwordMaxLength = 128
)

// ValidatePassword enforces the account password policy: 8-128 characters
// with at least one uppercase letter, one lowercase letter, one digit and
// one non-alphanumeric character.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return apperr.Validation("password must be at least 8 characters long")
	}
	if len(password) > passwordMaxLength {
		return apperr.Validation("password must not exceed 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return apperr.Validation("password must contain at least one uppercase letter")
	case !hasLower:
		return apperr.Validation("password must contain at least one lowercase letter")
	case !hasDigit:
		return apperr.Validation("password must contain at least one digit")
	case !hasSpecial:
		return apperr.Validation("password must contain at least one special character")
	}

	return nil
}
