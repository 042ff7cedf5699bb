package identity

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission group of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole parses a role name; empty means RoleUser
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", shared.Validation("unknown role %q", s)
}

// Password cost for bcrypt
const bcryptCost = 12

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)

// User is an operator of the back office
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	Username     string
	PasswordHash string
	Role         Role
}

// NewUser creates a user and hashes the password
func NewUser(name, email, username, password string, role Role) (*User, error) {
	u := &User{BaseEntity: shared.NewBaseEntity(), Role: role}
	if role == "" {
		u.Role = RoleUser
	}
	if err := u.SetProfile(name, email); err != nil {
		return nil, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.Validation("username must be 3-50 letters, digits, dots, dashes or underscores")
	}
	u.Username = username
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetProfile updates name and email
func (u *User) SetProfile(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validation("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.Validation("invalid email %q", email)
	}
	u.Name = name
	u.Email = email
	u.Touch()
	return nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.Validation("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > 72 {
		return shared.Validation("password cannot exceed 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.WrapDomainError(shared.CodeValidationFailed, "failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(r Role) {
	u.Role = r
	u.Touch()
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
