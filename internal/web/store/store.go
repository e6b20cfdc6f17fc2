// Package store defines the data access contracts consumed by the
// services. Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step mutations (profile edits, account
	// deletion) atomically.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by normalized email. Callers are
	// responsible for the trim/lower-case normalization.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile replaces first name, last name and email in one write
	// and bumps updated_at. Returns ErrAlreadyExists when the new email
	// collides with another user.
	UpdateProfile(ctx context.Context, userID, firstName, lastName, email string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateAvatar sets the avatar reference and bumps updated_at.
	UpdateAvatar(ctx context.Context, userID string, avatar string) error

	// DeleteUser removes the account row permanently.
	DeleteUser(ctx context.Context, userID string) error
}

// Sessions is the server-side session repository. The redis driver
// implements this same interface outside the root Store.
type Sessions interface {
	// GetSessionByTokenHash returns a session by the fingerprint of its
	// cookie token.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// UpdateSession persists the mutable session state (user binding,
	// token hash after rotation, preferences, flashes, expiry).
	UpdateSession(ctx context.Context, s domain.Session) error

	// DeleteSession removes a session by id.
	DeleteSession(ctx context.Context, id string) error

	// DeleteUserSessions removes every session bound to a user.
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
