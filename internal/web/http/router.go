// Package http wires the page handlers, session middleware and static
// assets into a single http.Handler.
package http

import (
	"log/slog"
	"net/http"

	"github.com/bluebirdlabs/lyrictype/internal/web/service"
	"github.com/bluebirdlabs/lyrictype/internal/web/session"
	"github.com/bluebirdlabs/lyrictype/internal/web/store"
	"github.com/bluebirdlabs/lyrictype/internal/web/view"
	"github.com/bluebirdlabs/lyrictype/pkg/httpx"
	"github.com/bluebirdlabs/lyrictype/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger    *slog.Logger
	store     store.Store
	sessions  *session.Manager
	remember  *session.Remember
	view      view.Renderer
	staticDir string

	AuthService    *service.AuthService
	ProfileService *service.ProfileService
	ThemeService   *service.ThemeService
}

func NewRouter(
	st store.Store,
	sessions *session.Manager,
	remember *session.Remember,
	renderer view.Renderer,
	staticDir string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		logger:    logger,
		store:     st,
		sessions:  sessions,
		remember:  remember,
		view:      renderer,
		staticDir: staticDir,
	}

	// Every request gets a request-scoped logger and a session before the
	// handlers run.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		withSessionMiddleware(sessions, remember, st.Users()),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPages()
	r.registerAuth()
	r.registerProfile()
	r.registerSongs()

	r.Mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler(r.staticDir)))
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) renderer() renderer {
	return renderer{View: r.view, Sessions: r.sessions}
}

func (r *Router) registerPages() {
	r.Mux.Handle("GET /", httpx.Chain(
		&HomeHandler{renderer: r.renderer()},
		httpx.RateLimitByIP(httpx.PublicLimit),
	))

	r.Mux.Handle("GET /dashboard", httpx.Chain(
		&DashboardHandler{renderer: r.renderer()},
		requireAuth,
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
}

func (r *Router) registerAuth() {
	login := &LoginHandler{
		Auth:     r.AuthService,
		Sessions: r.sessions,
		Remember: r.remember,
		renderer: r.renderer(),
	}
	r.Mux.Handle("GET /login", httpx.Chain(
		http.HandlerFunc(login.HandleGet),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
	// POST /login - strict rate limit against credential stuffing.
	r.Mux.Handle("POST /login", httpx.Chain(
		http.HandlerFunc(login.HandlePost),
		httpx.RateLimitByIP(httpx.StrictLimit),
	))

	signup := &SignupHandler{
		Auth:     r.AuthService,
		Sessions: r.sessions,
		renderer: r.renderer(),
	}
	r.Mux.Handle("GET /signup", httpx.Chain(
		http.HandlerFunc(signup.HandleGet),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
	r.Mux.Handle("POST /signup", httpx.Chain(
		http.HandlerFunc(signup.HandlePost),
		httpx.RateLimitByIP(httpx.StrictLimit),
	))

	r.Mux.Handle("GET /logout", httpx.Chain(
		&LogoutHandler{Sessions: r.sessions, Remember: r.remember, renderer: r.renderer()},
		requireAuth,
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
}

func (r *Router) registerProfile() {
	profile := &ProfileHandler{
		Profile:  r.ProfileService,
		Sessions: r.sessions,
		Remember: r.remember,
		renderer: r.renderer(),
	}

	r.Mux.Handle("GET /profile", httpx.Chain(
		http.HandlerFunc(profile.HandleGet),
		requireAuth,
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
	r.Mux.Handle("POST /password", httpx.Chain(
		http.HandlerFunc(profile.HandleChangePassword),
		requireAuth,
		httpx.RateLimitByIP(httpx.StrictLimit),
	))
	r.Mux.Handle("POST /profile/info", httpx.Chain(
		http.HandlerFunc(profile.HandleEditInfo),
		requireAuth,
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
	r.Mux.Handle("POST /profile/avatar", httpx.Chain(
		http.HandlerFunc(profile.HandleChangeAvatar),
		requireAuth,
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
	r.Mux.Handle("POST /profile/delete", httpx.Chain(
		http.HandlerFunc(profile.HandleDeleteAccount),
		requireAuth,
		httpx.RateLimitByIP(httpx.StrictLimit),
	))

	// Theme works without an account; preferences live on the session.
	r.Mux.Handle("POST /theme", httpx.Chain(
		&ThemeHandler{Theme: r.ThemeService, Sessions: r.sessions, renderer: r.renderer()},
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
}

func (r *Router) registerSongs() {
	r.Mux.Handle("GET /songs", httpx.Chain(
		&SongsHandler{renderer: r.renderer()},
		requireAuth,
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
	r.Mux.Handle("GET /typing/{id}", httpx.Chain(
		&TypingHandler{renderer: r.renderer()},
		requireAuth,
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
	r.Mux.Handle("GET /practice", httpx.Chain(
		&PracticeHandler{renderer: r.renderer()},
		requireAuth,
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
}
