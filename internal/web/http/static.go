package http

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
)

//go:embed static
var staticFS embed.FS

// staticHandler serves the bundled assets, falling back to an on-disk
// directory for deploy-time files (avatars, covers, audio) when one is
// configured.
func staticHandler(dir string) http.Handler {
	embedded, _ := fs.Sub(staticFS, "static")
	embeddedServer := http.FileServerFS(embedded)

	var diskServer http.Handler
	if dir != "" {
		diskServer = http.FileServer(http.Dir(dir))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := fs.Stat(embedded, trimSlash(r.URL.Path)); err == nil {
			embeddedServer.ServeHTTP(w, r)
			return
		}
		if diskServer != nil {
			if _, err := os.Stat(dir + "/" + trimSlash(r.URL.Path)); err == nil {
				diskServer.ServeHTTP(w, r)
				return
			}
		}
		http.NotFound(w, r)
	})
}

func trimSlash(p string) string {
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	return p
}
