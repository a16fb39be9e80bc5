package user

import (
	"strings"
	"time"

	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/pkg/phone"

	"github.com/google/uuid"
)

var (
	ErrInvalidPhone = errs.New("invalid phone number")
	ErrEmptyName    = errs.New("name cannot be empty")
	ErrInvalidRole  = errs.New("invalid role")
)

type User struct {
	id           uuid.UUID
	phoneNumber  string
	name         string
	passwordHash string
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(phoneNumber, name, passwordHash string, role Role, now time.Time) (*User, error) {
	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:           uuid.New(),
		phoneNumber:  normalized,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uuid.UUID,
	phoneNumber, name, passwordHash string,
	role Role,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		phoneNumber:  phoneNumber,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) PhoneNumber() string  { return u.phoneNumber }
func (u *User) Name() string         { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}
