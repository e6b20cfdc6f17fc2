package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/store/drivers/sqlite"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lyrictype-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func signupInput() service.SignupInput {
	return service.SignupInput{
		Email:     "jane@example.com",
		Password1: "sturdy-passphrase",
		Password2: "sturdy-passphrase",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestSignupAndLogin(t *testing.T) {
	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	ctx := context.Background()

	user, err := auth.Signup(ctx, signupInput())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "jane@example.com", user.Email)
	require.Equal(t, domain.DefaultAvatar, user.Avatar)
	require.NotEqual(t, "sturdy-passphrase", user.PasswordHash)

	got, err := auth.Login(ctx, "jane@example.com", "sturdy-passphrase")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	ctx := context.Background()

	_, err := auth.Signup(ctx, signupInput())
	require.NoError(t, err)

	_, err = auth.Login(ctx, "jane@example.com", "wrong-password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, err = auth.Login(ctx, "nobody@example.com", "sturdy-passphrase")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginNormalizesEmail(t *testing.T) {
	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	ctx := context.Background()

	_, err := auth.Signup(ctx, signupInput())
	require.NoError(t, err)

	got, err := auth.Login(ctx, "  Jane@Example.COM ", "sturdy-passphrase")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", got.Email)
}

func TestSignupValidationOrder(t *testing.T) {
	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	ctx := context.Background()

	missing := signupInput()
	missing.FirstName = ""
	_, err := auth.Signup(ctx, missing)
	require.ErrorIs(t, err, service.ErrFieldsRequired)

	// A missing field wins over a password mismatch further down the list.
	missing.Password2 = "different"
	_, err = auth.Signup(ctx, missing)
	require.ErrorIs(t, err, service.ErrFieldsRequired)

	mismatch := signupInput()
	mismatch.Password2 = "different"
	_, err = auth.Signup(ctx, mismatch)
	require.ErrorIs(t, err, service.ErrPasswordMismatch)

	short := signupInput()
	short.Password1, short.Password2 = "12345", "12345"
	_, err = auth.Signup(ctx, short)
	require.ErrorIs(t, err, service.ErrPasswordTooShort)

	blank := signupInput()
	blank.FirstName = "   "
	_, err = auth.Signup(ctx, blank)
	require.ErrorIs(t, err, service.ErrFieldsInvalid)
}

func TestSignupMinimumPasswordLength(t *testing.T) {
	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	ctx := context.Background()

	exact := signupInput()
	exact.Password1, exact.Password2 = "123456", "123456"
	_, err := auth.Signup(ctx, exact)
	require.NoError(t, err)
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	st := newTestStore(t)
	auth := &service.AuthService{Store: st}
	ctx := context.Background()

	_, err := auth.Signup(ctx, signupInput())
	require.NoError(t, err)

	again := signupInput()
	again.Email = "  JANE@example.com "
	_, err = auth.Signup(ctx, again)
	require.ErrorIs(t, err, service.ErrEmailTaken)

	// The failed signup must not leave a partial row behind.
	u, err := st.Users().GetUserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), u.CreatedAt, time.Minute)
}
