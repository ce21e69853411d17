package store

import (
	"context"
	"errors"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface; concrete drivers implement it.
// The auth and user flows depend only on this interface, never on driver
// types. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction; fn returning an error rolls
	// the transaction back, nil commits it.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetIdentityByID returns the identity row for a user id.
	GetIdentityByID(ctx context.Context, userID string) (domain.Identity, error)

	// GetCredentialByUsername returns the identity plus stored login
	// material, used during sign-in.
	GetCredentialByUsername(ctx context.Context, username string) (domain.Credential, error)

	// CountUsers returns the total number of listing rows (users joined
	// with their role assignments).
	CountUsers(ctx context.Context) (int, error)

	// ListUsers returns one page of listing rows. sortField/sortType are
	// resolved against a whitelist; unrecognized values fall back to the
	// default ordering by concatenated first+last name ascending.
	ListUsers(ctx context.Context, limit, offset int, sortField, sortType string) ([]domain.UserRow, error)

	// ListUserDetail returns the joined user+role rows for one user, one
	// row per role assignment.
	ListUserDetail(ctx context.Context, userID string) ([]domain.UserRow, error)

	// CreateUser inserts a new directory record (id provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error
}

type Roles interface {
	// ListRolesByUserID returns the caller's role assignments.
	ListRolesByUserID(ctx context.Context, userID string) ([]domain.RoleRef, error)

	// CreateRole inserts a role definition.
	CreateRole(ctx context.Context, r domain.RoleRef) error

	// AssignRole links a user to a role.
	AssignRole(ctx context.Context, userID, roleID string) error
}
