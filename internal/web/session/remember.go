package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/pkg/cryptox"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultRememberCookieName is the remember-me cookie name.
const DefaultRememberCookieName = "lt_remember"

// ErrRememberInvalid reports a missing, malformed, expired or revoked
// remember-me token.
var ErrRememberInvalid = errors.New("session: invalid remember token")

// credentialClaim length: enough of the password-hash fingerprint to tie
// the token to the current credential without disclosing the hash.
const credentialClaimLen = 16

// Remember issues and verifies the signed remember-me cookie that
// re-establishes a session after the server-side one expired. The token
// embeds a fingerprint of the password hash, so rotating the password
// (or deleting the account) invalidates every outstanding cookie.
type Remember struct {
	Secret       []byte
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
}

func NewRemember(secret string, secure bool) *Remember {
	return &Remember{
		Secret:       []byte(secret),
		CookieName:   DefaultRememberCookieName,
		CookieSecure: secure,
		TTL:          DefaultRememberTTL,
	}
}

// credentialClaim derives the hash-bound claim for a user.
func credentialClaim(u domain.User) string {
	fp := cryptox.FingerprintToken(u.PasswordHash)
	return fp[:credentialClaimLen]
}

// Issue signs a remember token for the user and sets its cookie.
func (rc *Remember) Issue(w http.ResponseWriter, u domain.User) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.ID,
		"pwd": credentialClaim(u),
		"iat": now.Unix(),
		"exp": now.Add(rc.TTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(rc.Secret)
	if err != nil {
		return fmt.Errorf("failed to sign remember token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     rc.CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(rc.TTL),
		HttpOnly: true,
		Secure:   rc.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Verify validates a raw remember token against the given user record.
// Callers look the user up by the unverified subject first, then call
// Verify to confirm both the signature and the credential fingerprint.
func (rc *Remember) Verify(raw string, u domain.User) error {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return rc.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ErrRememberInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrRememberInvalid
	}

	sub, _ := claims["sub"].(string)
	pwd, _ := claims["pwd"].(string)
	if sub != u.ID || pwd != credentialClaim(u) {
		return ErrRememberInvalid
	}
	return nil
}

// Subject extracts the user id from a remember token without trusting
// anything else about it. Verify must still be called.
func (rc *Remember) Subject(raw string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.Parse(raw, func(t *jwt.Token) (any, error) {
		return rc.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrRememberInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrRememberInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrRememberInvalid
	}
	return sub, nil
}

// Clear removes the remember cookie.
func (rc *Remember) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     rc.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rc.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
