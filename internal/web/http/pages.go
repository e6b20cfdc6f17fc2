package http

import "net/http"

// HomeHandler renders the public landing page.
type HomeHandler struct {
	renderer
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.renderPage(w, r, "home", "", nil)
}

// DashboardHandler renders the signed-in landing page.
type DashboardHandler struct {
	renderer
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "dashboard", "Dashboard", nil)
}
