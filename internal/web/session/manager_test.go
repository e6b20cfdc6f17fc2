package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/internal/web/store/drivers/sqlite"
	"github.com/bluebirdlabs/lyrictype/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*session.Manager, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return session.NewManager(st.Sessions(), false), st
}

func createUser(t *testing.T, st *sqlite.Store) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        "jane@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		FirstName:    "Jane",
		LastName:     "Doe",
		Avatar:       domain.DefaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

// sessionCookie pulls the session cookie out of a recorded response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestLoadCreatesAnonymousSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	s, err := m.Load(ctx, rec, req)
	require.NoError(t, err)
	require.False(t, s.Authenticated())

	family, size := s.Theme()
	require.Equal(t, domain.DefaultFontFamily, family)
	require.Equal(t, domain.DefaultFontSize, size)

	c := sessionCookie(t, rec, m.CookieName)
	require.True(t, c.HttpOnly)
	require.NotEmpty(t, c.Value)

	// A follow-up request with the cookie resumes the same session.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(c)

	again, err := m.Load(ctx, rec2, req2)
	require.NoError(t, err)
	require.Equal(t, s.ID, again.ID)
}

func TestLoadReplacesUnknownCookie(t *testing.T) {
	m, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: m.CookieName, Value: "stale-token"})

	s, err := m.Load(context.Background(), rec, req)
	require.NoError(t, err)
	require.False(t, s.Authenticated())
	require.NotEmpty(t, sessionCookie(t, rec, m.CookieName).Value)
}

func TestAuthenticateRotatesTokenKeepsTheme(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()
	u := createUser(t, st)

	rec := httptest.NewRecorder()
	s, err := m.Load(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	anonCookie := sessionCookie(t, rec, m.CookieName)

	// Pick a theme while anonymous
	s.FontFamily = "Courier New"
	s.FontSize = "16px"
	require.NoError(t, m.Save(ctx, s))

	rec2 := httptest.NewRecorder()
	authed, err := m.Authenticate(ctx, rec2, s, u.ID, false)
	require.NoError(t, err)
	require.True(t, authed.Authenticated())
	require.Equal(t, "Courier New", authed.FontFamily)

	authCookie := sessionCookie(t, rec2, m.CookieName)
	require.NotEqual(t, anonCookie.Value, authCookie.Value, "token must rotate on login")

	// Old cookie no longer resolves
	rec3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(anonCookie)
	fresh, err := m.Load(ctx, rec3, req3)
	require.NoError(t, err)
	require.NotEqual(t, s.ID, fresh.ID)
}

func TestLogoutKeepsPreferences(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()
	u := createUser(t, st)

	rec := httptest.NewRecorder()
	s, err := m.Load(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	s, err = m.Authenticate(ctx, httptest.NewRecorder(), s, u.ID, false)
	require.NoError(t, err)

	s.FontFamily = "Georgia"
	require.NoError(t, m.Save(ctx, s))

	out, err := m.Logout(ctx, httptest.NewRecorder(), s)
	require.NoError(t, err)
	require.False(t, out.Authenticated())
	require.Equal(t, "Georgia", out.FontFamily, "theme survives logout")
}

func TestFlashesAreOneTime(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Load(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	require.NoError(t, m.AddFlash(ctx, &s, domain.FlashError, "Invalid credentials"))

	flashes, err := m.PopFlashes(ctx, &s)
	require.NoError(t, err)
	require.Len(t, flashes, 1)
	require.Equal(t, "Invalid credentials", flashes[0].Message)

	flashes, err = m.PopFlashes(ctx, &s)
	require.NoError(t, err)
	require.Empty(t, flashes)
}

func TestDestroyRemovesSession(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	s, err := m.Load(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	rec2 := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, rec2, s))

	_, err = st.Sessions().GetSessionByTokenHash(ctx, s.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	cleared := sessionCookie(t, rec2, m.CookieName)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestLoadSlidesExpiry(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	s, err := m.Load(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	c := sessionCookie(t, rec, m.CookieName)

	// Push the session past the midpoint of its lifetime.
	s.ExpiresAt = time.Now().UTC().Add(time.Hour)
	require.NoError(t, st.Sessions().UpdateSession(ctx, s))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	refreshed, err := m.Load(ctx, httptest.NewRecorder(), req)
	require.NoError(t, err)
	require.Equal(t, s.ID, refreshed.ID)
	require.True(t, refreshed.ExpiresAt.After(s.ExpiresAt.Add(time.Hour)),
		"expiry should be pushed out on an active session")
}
