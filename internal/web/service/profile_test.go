package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/internal/web/store/drivers/sqlite"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"
	"github.com/bluebirdlabs/lyrictype/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T) (*service.ProfileService, *sqlite.Store, domain.User) {
	t.Helper()

	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	user, err := auth.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	return &service.ProfileService{Store: st, Sessions: st.Sessions()}, st, user
}

func reload(t *testing.T, st *sqlite.Store, id string) domain.User {
	t.Helper()
	u, err := st.Users().GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func TestChangePassword(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user, "sturdy-passphrase", "even-sturdier", "even-sturdier")
	require.NoError(t, err)

	u := reload(t, st, user.ID)
	require.NoError(t, cryptox.VerifyPassword("even-sturdier", u.PasswordHash))
	require.ErrorIs(t, cryptox.VerifyPassword("sturdy-passphrase", u.PasswordHash), cryptox.ErrPasswordMismatch)
}

func TestChangePasswordValidationOrder(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	// Wrong old password is reported before any complaint about the new one.
	err := svc.ChangePassword(ctx, user, "wrong", "a", "b")
	require.ErrorIs(t, err, service.ErrWrongOldPassword)

	err = svc.ChangePassword(ctx, user, "sturdy-passphrase", "new-one", "new-two")
	require.ErrorIs(t, err, service.ErrPasswordMismatch)

	err = svc.ChangePassword(ctx, user, "sturdy-passphrase", "sturdy-passphrase", "sturdy-passphrase")
	require.ErrorIs(t, err, service.ErrPasswordUnchanged)

	err = svc.ChangePassword(ctx, user, "sturdy-passphrase", "x", "x")
	require.ErrorIs(t, err, service.ErrPasswordTooShort)

	// Nothing above may have touched the stored hash.
	u := reload(t, st, user.ID)
	require.Equal(t, user.PasswordHash, u.PasswordHash)
}

func TestEditInfoPartialUpdate(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	err := svc.EditInfo(ctx, user, service.EditInfoInput{FirstName: "Janet"})
	require.NoError(t, err)

	u := reload(t, st, user.ID)
	require.Equal(t, "Janet", u.FirstName)
	require.Equal(t, user.LastName, u.LastName)
	require.Equal(t, user.Email, u.Email)
}

func TestEditInfoNormalizesEmail(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	err := svc.EditInfo(ctx, user, service.EditInfoInput{Email: "  Janet@Example.COM "})
	require.NoError(t, err)
	require.Equal(t, "janet@example.com", reload(t, st, user.ID).Email)
}

func TestEditInfoNoopSkipsWrite(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	before := reload(t, st, user.ID)
	time.Sleep(1100 * time.Millisecond)

	err := svc.EditInfo(ctx, user, service.EditInfoInput{FirstName: user.FirstName, Email: user.Email})
	require.NoError(t, err)

	after := reload(t, st, user.ID)
	require.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestEditInfoRejectsTakenEmail(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	other := domain.User{
		ID:           idx.New().String(),
		Email:        "taken@example.com",
		PasswordHash: user.PasswordHash,
		FirstName:    "Tom",
		LastName:     "Thumb",
		Avatar:       domain.DefaultAvatar,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(ctx, other))

	err := svc.EditInfo(ctx, user, service.EditInfoInput{FirstName: "Janet", Email: "Taken@example.com"})
	require.ErrorIs(t, err, service.ErrEmailTaken)

	// All-or-nothing: the first name change must not have landed either.
	u := reload(t, st, user.ID)
	require.Equal(t, user.FirstName, u.FirstName)
	require.Equal(t, user.Email, u.Email)
}

func TestEditInfoKeepingOwnEmail(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	// Re-submitting your own email alongside a real change is not a conflict.
	err := svc.EditInfo(ctx, user, service.EditInfoInput{FirstName: "Janet", Email: user.Email})
	require.NoError(t, err)
	require.Equal(t, "Janet", reload(t, st, user.ID).FirstName)
}

func TestChangeAvatar(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.ChangeAvatar(ctx, user, ""), service.ErrAvatarRequired)

	require.NoError(t, svc.ChangeAvatar(ctx, user, "uploads/user_3.png"))
	require.Equal(t, "uploads/user_3.png", reload(t, st, user.ID).Avatar)
}

func TestDeleteAccount(t *testing.T) {
	svc, st, user := newProfileFixture(t)
	ctx := context.Background()

	sess := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, sess))

	require.ErrorIs(t, svc.DeleteAccount(ctx, user, ""), service.ErrPasswordRequired)
	require.ErrorIs(t, svc.DeleteAccount(ctx, user, "wrong"), service.ErrPasswordMismatch)

	require.NoError(t, svc.DeleteAccount(ctx, user, "sturdy-passphrase"))

	_, err := st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Sessions().GetSessionByTokenHash(ctx, sess.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)
}
