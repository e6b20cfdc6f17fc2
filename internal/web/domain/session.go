package domain

import "time"

// Theme defaults applied when a session carries no explicit preference.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSize   = "12px"
)

// Flash categories surfaced to the next rendered view.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Flash is a one-time status message drained on the next render.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side browser session. It exists for anonymous
// visitors too: theme preferences and flashes do not require a login.
// The cookie holds an opaque token; only its fingerprint is stored.
type Session struct {
	ID         string
	TokenHash  string
	UserID     string // empty while anonymous
	FontFamily string
	FontSize   string
	Flashes    []Flash
	Remember   bool
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Authenticated reports whether the session is bound to a user.
func (s *Session) Authenticated() bool { return s.UserID != "" }

// Theme returns the effective font family and size, falling back to the
// defaults when the session holds no preference.
func (s *Session) Theme() (family, size string) {
	family, size = s.FontFamily, s.FontSize
	if family == "" {
		family = DefaultFontFamily
	}
	if size == "" {
		size = DefaultFontSize
	}
	return family, size
}

// Expired reports whether the session passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
