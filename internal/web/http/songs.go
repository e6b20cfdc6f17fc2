package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bluebirdlabs/lyrictype/internal/web/songs"
)

// songsPage is the page payload for the catalog screen.
type songsPage struct {
	Songs []songs.Song
}

type SongsHandler struct {
	renderer
}

func (h *SongsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "songs", "Pick a song", songsPage{Songs: songs.List()})
}

// typingPage is the page payload for the song typing screen.
type typingPage struct {
	Song      songs.Song
	Lines     []string
	LinesJSON string
}

type TypingHandler struct {
	renderer
}

func (h *TypingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	song, err := songs.Get(id)
	if err != nil {
		if errors.Is(err, songs.ErrSongNotFound) {
			http.Error(w, "Song not found!", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	lines := song.Lines()
	h.renderPage(w, r, "typing", song.Title, typingPage{
		Song:      song,
		Lines:     lines,
		LinesJSON: mustJSON(lines),
	})
}

// practicePage is the page payload for the free practice screen.
type practicePage struct {
	Target    string
	LinesJSON string
}

type PracticeHandler struct {
	renderer
}

func (h *PracticeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	line := songs.PracticeLine()
	h.renderPage(w, r, "practice", "Practice", practicePage{
		Target:    line,
		LinesJSON: mustJSON([]string{line}),
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
