// Package songs holds the typing catalog. The catalog is compiled in for
// now; it is small and changes with releases, not at runtime.
package songs

import (
	_ "embed"
	"errors"
	"math/rand"
	"strings"
)

// ErrSongNotFound is returned when no song carries the requested id.
var ErrSongNotFound = errors.New("songs: song not found")

// Song is one entry of the typing catalog.
type Song struct {
	ID     int
	Title  string
	Author string
	Genre  string
	Cover  string
	File   string
	Lyrics string
}

// Lines splits the lyrics into the per-line targets the typing screen
// feeds to the player.
func (s Song) Lines() []string {
	raw := strings.Split(s.Lyrics, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// List returns the catalog in id order.
func List() []Song {
	out := make([]Song, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the song with the given id.
func Get(id int) (Song, error) {
	for _, s := range catalog {
		if s.ID == id {
			return s, nil
		}
	}
	return Song{}, ErrSongNotFound
}

//go:embed practice.txt
var practiceText string

var practiceLines = func() []string {
	var lines []string
	for _, l := range strings.Split(practiceText, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}()

// PracticeLine returns one random line of free typing practice.
func PracticeLine() string {
	return practiceLines[rand.Intn(len(practiceLines))]
}
