package http

import (
	"net/http"
	"strings"

	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/internal/web/view"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// renderer bundles what every page handler needs to produce a response.
type renderer struct {
	View     view.Renderer
	Sessions *session.Manager
}

// renderPage draws a page with the shared chrome: current user, drained
// flashes and the session's theme.
func (rd *renderer) renderPage(w http.ResponseWriter, r *http.Request, page, title string, payload any) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	flashes, err := rd.Sessions.PopFlashes(ctx, &sess)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to drain flashes", "err", err)
	}

	data := view.Data{
		Title:   title,
		Flashes: flashes,
		Page:    payload,
	}
	data.FontFamily, data.FontSize = sess.Theme()
	if user, ok := userFrom(ctx); ok {
		data.User = &user
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.View.Render(w, page, data); err != nil {
		slogx.FromContext(ctx).Error("failed to render page", "page", page, "err", err)
	}
}

// flashRedirect queues exactly one flash and answers with a see-other
// redirect (post/redirect/get).
func (rd *renderer) flashRedirect(w http.ResponseWriter, r *http.Request, category, message, target string) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	if err := rd.Sessions.AddFlash(ctx, &sess, category, message); err != nil {
		slogx.FromContext(ctx).Error("failed to store flash", "err", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// sanitizeNext only allows same-site path targets for post-login
// redirects, closing the open-redirect hole.
func sanitizeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	if strings.ContainsAny(raw, "\r\n") {
		return ""
	}
	return raw
}
