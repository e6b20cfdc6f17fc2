// Package session manages server-side browser sessions: the opaque
// cookie token, the stored session record, theme preferences, flash
// messages and the remember-me cookie.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"
	"github.com/bluebirdlabs/lyrictype/pkg/idx"
)

const (
	// DefaultCookieName is the session cookie name.
	DefaultCookieName = "lt_session"

	// DefaultTTL is how long a session lives without remember-me.
	DefaultTTL = 7 * 24 * time.Hour

	// DefaultRememberTTL is the session lifetime when remember is set.
	DefaultRememberTTL = 30 * 24 * time.Hour
)

// Manager owns the session lifecycle. The cookie holds a raw opaque
// token; the backing store only ever sees its fingerprint.
type Manager struct {
	Sessions     store.Sessions
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
	RememberTTL  time.Duration
}

func NewManager(sessions store.Sessions, secure bool) *Manager {
	return &Manager{
		Sessions:     sessions,
		CookieName:   DefaultCookieName,
		CookieSecure: secure,
		TTL:          DefaultTTL,
		RememberTTL:  DefaultRememberTTL,
	}
}

func (m *Manager) ttlFor(remember bool) time.Duration {
	if remember {
		return m.RememberTTL
	}
	return m.TTL
}

// Load returns the session for the request, creating a fresh anonymous
// session (and setting its cookie) when none exists or the stored one
// has expired.
func (m *Manager) Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (domain.Session, error) {
	cookie, err := r.Cookie(m.CookieName)
	if err == nil && cookie.Value != "" {
		s, err := m.Sessions.GetSessionByTokenHash(ctx, cryptox.FingerprintToken(cookie.Value))
		switch {
		case err == nil && !s.Expired(time.Now()):
			// Sliding expiry: active sessions stay alive. Only write
			// once the session is past the midpoint of its lifetime.
			ttl := m.ttlFor(s.Remember)
			if time.Until(s.ExpiresAt) < ttl/2 {
				s.ExpiresAt = time.Now().UTC().Add(ttl)
				if err := m.Sessions.UpdateSession(ctx, s); err != nil {
					return domain.Session{}, err
				}
			}
			return s, nil
		case err == nil:
			// expired on our side; replace below
			_ = m.Sessions.DeleteSession(ctx, s.ID)
		case !errors.Is(err, store.ErrNotFound):
			return domain.Session{}, err
		}
	}

	return m.create(ctx, w, domain.Session{})
}

// create persists a new session carrying over any state on the template
// (theme, flashes, user binding) and sets the cookie.
func (m *Manager) create(ctx context.Context, w http.ResponseWriter, tmpl domain.Session) (domain.Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	now := time.Now().UTC()
	s := domain.Session{
		ID:         idx.New().String(),
		TokenHash:  cryptox.FingerprintToken(token),
		UserID:     tmpl.UserID,
		FontFamily: tmpl.FontFamily,
		FontSize:   tmpl.FontSize,
		Flashes:    tmpl.Flashes,
		Remember:   tmpl.Remember,
		ExpiresAt:  now.Add(m.ttlFor(tmpl.Remember)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := m.Sessions.CreateSession(ctx, s); err != nil {
		return domain.Session{}, err
	}

	m.setCookie(w, token, s)
	return s, nil
}

// Save persists mutable session state (theme, flashes).
func (m *Manager) Save(ctx context.Context, s domain.Session) error {
	return m.Sessions.UpdateSession(ctx, s)
}

// Authenticate binds the session to a user. The token is rotated to
// prevent session fixation; theme preferences and pending flashes carry
// over; preferences survive auth transitions.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, s domain.Session, userID string, remember bool) (domain.Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	s.TokenHash = cryptox.FingerprintToken(token)
	s.UserID = userID
	s.Remember = remember
	s.ExpiresAt = time.Now().UTC().Add(m.ttlFor(remember))
	if err := m.Sessions.UpdateSession(ctx, s); err != nil {
		return domain.Session{}, err
	}

	m.setCookie(w, token, s)
	return s, nil
}

// Logout drops the user binding but keeps the session (and its theme
// preferences) alive as an anonymous one. The token is rotated.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, s domain.Session) (domain.Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	s.TokenHash = cryptox.FingerprintToken(token)
	s.UserID = ""
	s.Remember = false
	s.ExpiresAt = time.Now().UTC().Add(m.TTL)
	if err := m.Sessions.UpdateSession(ctx, s); err != nil {
		return domain.Session{}, err
	}

	m.setCookie(w, token, s)
	return s, nil
}

// Destroy removes the session entirely and clears the cookie. Used after
// account deletion.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s domain.Session) error {
	if err := m.Sessions.DeleteSession(ctx, s.ID); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// AddFlash queues a one-time status message on the session.
func (m *Manager) AddFlash(ctx context.Context, s *domain.Session, category, message string) error {
	s.Flashes = append(s.Flashes, domain.Flash{Category: category, Message: message})
	return m.Sessions.UpdateSession(ctx, *s)
}

// PopFlashes drains the pending flash messages for rendering.
func (m *Manager) PopFlashes(ctx context.Context, s *domain.Session) ([]domain.Flash, error) {
	if len(s.Flashes) == 0 {
		return nil, nil
	}

	flashes := s.Flashes
	s.Flashes = nil
	if err := m.Sessions.UpdateSession(ctx, *s); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, token string, s domain.Session) {
	cookie := &http.Cookie{
		Name:     m.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	// Remember-me sessions persist across browser restarts; plain
	// sessions stay browser-scoped.
	if s.Remember {
		cookie.Expires = s.ExpiresAt
	}
	http.SetCookie(w, cookie)
}
