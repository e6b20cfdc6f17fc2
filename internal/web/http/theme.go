package http

import (
	"net/http"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// ThemeHandler saves font preferences. It works for anonymous sessions
// too; a visitor does not need an account to change the look.
type ThemeHandler struct {
	Theme    *service.ThemeService
	Sessions *session.Manager
	renderer
}

func (h *ThemeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(ctx)
	if err := h.Theme.SetTheme(ctx, &sess, r.PostFormValue("fontFamily"), r.PostFormValue("fontSize")); err != nil {
		slogx.FromContext(ctx).Error("failed to save theme", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	target := "/"
	if _, ok := userFrom(ctx); ok {
		target = "/profile"
	}

	if err := h.Sessions.AddFlash(ctx, &sess, domain.FlashSuccess, "Theme updated successfully"); err != nil {
		slogx.FromContext(ctx).Error("failed to store flash", "err", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
