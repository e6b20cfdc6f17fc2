package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTML renders pages from the embedded template set. Each page template
// is parsed together with the base layout so blocks resolve per page.
type HTML struct {
	pages map[string]*template.Template
}

// NewHTML parses the embedded templates. It fails fast on a broken
// template rather than at request time.
func NewHTML() (*HTML, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(entry, "templates/"), ".html")
		if name == "base" {
			continue
		}

		tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", entry)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", entry, err)
		}
		pages[name] = tmpl
	}
	return &HTML{pages: pages}, nil
}

func (h *HTML) Render(w io.Writer, page string, data Data) error {
	tmpl, ok := h.pages[page]
	if !ok {
		return fmt.Errorf("view: unknown page %q", page)
	}

	if data.FontFamily == "" {
		data.FontFamily = domain.DefaultFontFamily
	}
	if data.FontSize == "" {
		data.FontSize = domain.DefaultFontSize
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}
