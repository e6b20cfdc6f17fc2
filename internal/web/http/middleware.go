package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// withSessionMiddleware resolves the browser session (creating an
// anonymous one when needed), attempts remember-me re-authentication,
// and loads the bound user into the request context.
func withSessionMiddleware(m *session.Manager, remember *session.Remember, users store.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			sess, err := m.Load(ctx, w, r)
			if err != nil {
				log.Error("failed to load session", "err", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			// A remember-me cookie silently re-authenticates an anonymous
			// session. The token is bound to the password hash, so a
			// rotated or deleted credential invalidates it.
			if !sess.Authenticated() && remember != nil {
				if cookie, err := r.Cookie(remember.CookieName); err == nil && cookie.Value != "" {
					sess = rememberLogin(w, r, m, remember, users, sess, cookie.Value)
				}
			}

			ctx = withSession(ctx, sess)

			if sess.Authenticated() {
				user, err := users.GetUserByID(ctx, sess.UserID)
				switch {
				case err == nil:
					ctx = withUser(ctx, user)
				case errors.Is(err, store.ErrNotFound):
					// The account is gone; the session continues anonymously.
					log.Debug("session bound to missing user", "user_id", sess.UserID)
				default:
					log.Error("failed to load session user", "err", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rememberLogin(
	w http.ResponseWriter,
	r *http.Request,
	m *session.Manager,
	remember *session.Remember,
	users store.Users,
	sess domain.Session,
	raw string,
) domain.Session {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, err := remember.Subject(raw)
	if err != nil {
		remember.Clear(w)
		return sess
	}

	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		remember.Clear(w)
		return sess
	}

	if err := remember.Verify(raw, user); err != nil {
		remember.Clear(w)
		return sess
	}

	authed, err := m.Authenticate(ctx, w, sess, user.ID, true)
	if err != nil {
		log.Error("failed to bind remembered user", "err", err)
		return sess
	}

	log.Info("remember-me login", "user_id", user.ID)
	return authed
}

// requireAuth redirects anonymous visitors to the login page, preserving
// the requested path so login can bounce them back.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userFrom(r.Context()); !ok {
			target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
