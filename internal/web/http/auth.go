package http

import (
	"errors"
	"net/http"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// loginPage is the page payload for the login form.
type loginPage struct {
	Next string
}

type LoginHandler struct {
	Auth     *service.AuthService
	Sessions *session.Manager
	Remember *session.Remember
	renderer
}

func (h *LoginHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "login", "Log in", loginPage{Next: sanitizeNext(r.URL.Query().Get("next"))})
}

func (h *LoginHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	next := sanitizeNext(r.URL.Query().Get("next"))
	if next == "" {
		next = "/dashboard"
	}

	user, err := h.Auth.Login(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.flashRedirect(w, r, domain.FlashError, "Invalid credentials", r.URL.RequestURI())
			return
		}
		log.Error("login failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rememberMe := r.PostFormValue("remember") != ""
	if _, err := h.Sessions.Authenticate(ctx, w, sessionFrom(ctx), user.ID, rememberMe); err != nil {
		log.Error("failed to bind session", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if rememberMe {
		if err := h.Remember.Issue(w, user); err != nil {
			log.Error("failed to issue remember cookie", "err", err)
		}
	}

	http.Redirect(w, r, next, http.StatusSeeOther)
}

// signupPage is the page payload for the signup form.
type signupPage struct {
	Avatars []int
}

// avatarChoices are the bundled avatar images a user can pick from.
var avatarChoices = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

type SignupHandler struct {
	Auth     *service.AuthService
	Sessions *session.Manager
	renderer
}

func (h *SignupHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "signup", "Sign up", signupPage{Avatars: avatarChoices})
}

func (h *SignupHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, err := h.Auth.Signup(ctx, service.SignupInput{
		Email:     r.PostFormValue("email"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Avatar:    r.PostFormValue("avatar"),
	})
	if err != nil {
		msg, known := signupFlash(err)
		if !known {
			log.Error("signup failed", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.flashRedirect(w, r, domain.FlashError, msg, "/signup")
		return
	}

	sess, err := h.Sessions.Authenticate(ctx, w, sessionFrom(ctx), user.ID, false)
	if err != nil {
		log.Error("failed to bind session", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Flash on the rotated session, not the stale pre-auth copy.
	if err := h.Sessions.AddFlash(ctx, &sess, domain.FlashSuccess, "Account created successfully"); err != nil {
		log.Error("failed to store flash", "err", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func signupFlash(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrFieldsRequired):
		return "Fill in all the fields", true
	case errors.Is(err, service.ErrPasswordMismatch):
		return "Passwords don't match", true
	case errors.Is(err, service.ErrPasswordTooShort):
		return "Password is too short", true
	case errors.Is(err, service.ErrFieldsInvalid):
		return "Enter valid values", true
	case errors.Is(err, service.ErrEmailTaken):
		return "Email already exists", true
	}
	return "", false
}

type LogoutHandler struct {
	Sessions *session.Manager
	Remember *session.Remember
	renderer
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.Sessions.Logout(ctx, w, sessionFrom(ctx))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to log out session", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.Remember.Clear(w)

	// The logged-out session is the one that carries the flash.
	if err := h.Sessions.AddFlash(ctx, &sess, domain.FlashSuccess, "Logged out"); err != nil {
		slogx.FromContext(ctx).Error("failed to store flash", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
