// Package user models the identities that interact with orders and the role each one holds.
package user

import (
	"fmt"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// Role decides which lifecycle operations an identity may start.
type Role int

const (
	RoleUnknown Role = iota
	RoleCreator
	RoleWorker
)

func (r Role) String() string {
	switch r {
	case RoleCreator:
		return "creator"
	case RoleWorker:
		return "worker"
	default:
		return "unknown"
	}
}

// ParseRole accepts the stored vocabulary. "manager" and "director" are the
// creator role's names in older data.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "creator", "manager", "director":
		return RoleCreator, nil
	case "worker":
		return RoleWorker, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

// User is a registered identity.
type User struct {
	ID   kernel.UserID
	Role Role
	Name string
}

// NewUser validates a registration.
func NewUser(id kernel.UserID, role Role, name string) (User, error) {
	if err := id.Validate(); err != nil {
		return User{}, err
	}
	if role != RoleCreator && role != RoleWorker {
		return User{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%s cannot be registered", role))
	}
	return User{ID: id, Role: role, Name: strings.TrimSpace(name)}, nil
}

// DisplayName falls back to the identifier when no name is known.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID.String()
}
