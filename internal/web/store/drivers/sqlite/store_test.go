package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser() domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.User{
		ID:           idx.New().String(),
		Email:        "jane@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		FirstName:    "Jane",
		LastName:     "Doe",
		Avatar:       domain.DefaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUsersCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)

	byEmail, err := s.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersEmailUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	dup := testUser()
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestUsersUpdateProfileEmailCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, a))

	b := testUser()
	b.ID = idx.New().String()
	b.Email = "john@example.com"
	require.NoError(t, s.Users().CreateUser(ctx, b))

	err := s.Users().UpdateProfile(ctx, b.ID, b.FirstName, b.LastName, a.Email)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))

	_, err := s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
}

func TestSessionsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	sess := domain.Session{
		ID:        idx.New().String(),
		TokenHash: "fingerprint-1",
		Flashes:   []domain.Flash{{Category: domain.FlashSuccess, Message: "Account created successfully"}},
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	got, err := s.Sessions().GetSessionByTokenHash(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.Empty(t, got.UserID)
	require.Len(t, got.Flashes, 1)
	require.Equal(t, domain.FlashSuccess, got.Flashes[0].Category)

	// Bind to a user and rotate the token
	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))
	got.UserID = u.ID
	got.TokenHash = "fingerprint-2"
	got.Flashes = nil
	require.NoError(t, s.Sessions().UpdateSession(ctx, got))

	_, err = s.Sessions().GetSessionByTokenHash(ctx, "fingerprint-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	bound, err := s.Sessions().GetSessionByTokenHash(ctx, "fingerprint-2")
	require.NoError(t, err)
	require.Equal(t, u.ID, bound.UserID)
	require.Empty(t, bound.Flashes)
}

func TestSessionsDeleteUserSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.Users().CreateUser(ctx, u))

	now := time.Now().UTC()
	for _, hash := range []string{"h1", "h2"} {
		require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
			ID:        idx.New().String(),
			TokenHash: hash,
			UserID:    u.ID,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}

	require.NoError(t, s.Sessions().DeleteUserSessions(ctx, u.ID))

	for _, hash := range []string{"h1", "h2"} {
		_, err := s.Sessions().GetSessionByTokenHash(ctx, hash)
		require.ErrorIs(t, err, store.ErrNotFound)
	}
}

func TestSessionsDeleteExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
		ID: idx.New().String(), TokenHash: "dead", ExpiresAt: now.Add(-time.Minute), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
		ID: idx.New().String(), TokenHash: "live", ExpiresAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, s.Sessions().DeleteExpiredSessions(ctx))

	_, err := s.Sessions().GetSessionByTokenHash(ctx, "dead")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Sessions().GetSessionByTokenHash(ctx, "live")
	require.NoError(t, err)
}

func TestWithTxRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	}))

	_, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
}
