package http

import (
	"errors"
	"net/http"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// profilePage is the page payload for the profile screen.
type profilePage struct {
	Avatars      []int
	FontFamilies []string
	FontSizes    []string
}

var (
	fontFamilies = []string{"Arial", "Verdana", "Tahoma", "Georgia", "Times New Roman", "Courier New"}
	fontSizes    = []string{"12", "14", "16", "18", "20"}
)

type ProfileHandler struct {
	Profile  *service.ProfileService
	Sessions *session.Manager
	Remember *session.Remember
	renderer
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "profile", "Profile", profilePage{
		Avatars:      avatarChoices,
		FontFamilies: fontFamilies,
		FontSizes:    fontSizes,
	})
}

func (h *ProfileHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFrom(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.Profile.ChangePassword(ctx, user,
		r.PostFormValue("old-password"),
		r.PostFormValue("new-password1"),
		r.PostFormValue("new-password2"),
	)
	if err != nil {
		msg, known := passwordFlash(err)
		if !known {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.flashRedirect(w, r, domain.FlashError, msg, "/profile")
		return
	}

	// The remember cookie is keyed to the old hash; refresh it so the
	// current browser stays remembered.
	if sess := sessionFrom(ctx); sess.Remember {
		if fresh, err := h.Profile.Store.Users().GetUserByID(ctx, user.ID); err == nil {
			if err := h.Remember.Issue(w, fresh); err != nil {
				slogx.FromContext(ctx).Error("failed to refresh remember cookie", "err", err)
			}
		}
	}

	h.flashRedirect(w, r, domain.FlashSuccess, "Password updated", "/profile")
}

func passwordFlash(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrWrongOldPassword):
		return "Old password is incorrect", true
	case errors.Is(err, service.ErrPasswordMismatch):
		return "New passwords don't match", true
	case errors.Is(err, service.ErrPasswordUnchanged):
		return "New password must differ from the old one", true
	case errors.Is(err, service.ErrPasswordTooShort):
		return "Password is too short", true
	}
	return "", false
}

func (h *ProfileHandler) HandleEditInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFrom(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.Profile.EditInfo(ctx, user, service.EditInfoInput{
		FirstName: r.PostFormValue("changedFirstName"),
		LastName:  r.PostFormValue("changedLastName"),
		Email:     r.PostFormValue("changedInfoEmail"),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.flashRedirect(w, r, domain.FlashError, "Email already taken", "/profile")
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.flashRedirect(w, r, domain.FlashSuccess, "Profile updated successfully", "/dashboard")
}

func (h *ProfileHandler) HandleChangeAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFrom(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.Profile.ChangeAvatar(ctx, user, r.PostFormValue("avatar")); err != nil {
		if errors.Is(err, service.ErrAvatarRequired) {
			h.flashRedirect(w, r, domain.FlashError, "Please select an avatar", "/profile")
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.flashRedirect(w, r, domain.FlashSuccess, "Avatar updated", "/profile")
}

func (h *ProfileHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	user, _ := userFrom(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.Profile.DeleteAccount(ctx, user, r.PostFormValue("deleteAccountPasswordField"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired):
			h.flashRedirect(w, r, domain.FlashError, "Enter your password to confirm account deletion", "/profile")
		case errors.Is(err, service.ErrPasswordMismatch):
			h.flashRedirect(w, r, domain.FlashError, "Password mismatch", "/profile")
		default:
			log.Error("account deletion failed", "err", err)
			h.flashRedirect(w, r, domain.FlashError, "An error occurred while deleting your account, please try again", "/profile")
		}
		return
	}

	h.Remember.Clear(w)

	// The old session rows are gone with the account. Mint a fresh
	// anonymous session to carry the farewell flash.
	sess, err := h.Sessions.Load(ctx, w, r)
	if err != nil {
		log.Error("failed to create post-deletion session", "err", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.AddFlash(ctx, &sess, domain.FlashSuccess, "Account deleted"); err != nil {
		log.Error("failed to store flash", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
