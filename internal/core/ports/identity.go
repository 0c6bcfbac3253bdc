package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/user"
)

// IdentityResolver answers role and naming questions about callers.
type IdentityResolver interface {
	// RoleOf returns user.RoleUnknown without error for unregistered identities.
	RoleOf(ctx context.Context, id kernel.UserID) (user.Role, error)

	// DisplayNameOf falls back to the identifier itself when no name is known.
	DisplayNameOf(ctx context.Context, id kernel.UserID) (string, error)

	// Workers lists every identity holding the worker role.
	Workers(ctx context.Context) ([]kernel.UserID, error)
}

// UserRepository stores registrations made through the role menu.
type UserRepository interface {
	// Save inserts the user or replaces its role and name.
	Save(ctx context.Context, u user.User) error

	// Get returns errs.ObjectNotFoundError for unknown identities.
	Get(ctx context.Context, id kernel.UserID) (user.User, error)
}
