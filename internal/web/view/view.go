// Package view renders the HTML pages. Handlers pass a Data value and a
// page name; the rest of the app never touches templates directly.
package view

import (
	"io"

	"github.com/bluebirdlabs/lyrictype/internal/web/domain"
)

// Data is the common payload every page receives. Page carries the
// page-specific content (a song, the catalog, a practice line).
type Data struct {
	Title      string
	User       *domain.User
	Flashes    []domain.Flash
	FontFamily string
	FontSize   string
	Page       any
}

// Renderer turns a page name and its data into HTML.
type Renderer interface {
	Render(w io.Writer, page string, data Data) error
}
