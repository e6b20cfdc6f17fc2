package http

import (
	"context"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
)

type ctxKey int

const (
	ctxKeySession ctxKey = iota
	ctxKeyUser
)

func withSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// sessionFrom returns the request session. The session middleware always
// sets one, so handlers can rely on it being present.
func sessionFrom(ctx context.Context) domain.Session {
	s, _ := ctx.Value(ctxKeySession).(domain.Session)
	return s
}

func withUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// userFrom returns the authenticated user, if any.
func userFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}
