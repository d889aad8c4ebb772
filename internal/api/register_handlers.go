package api

import (
	"fmt"
	"net/http"

	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
)

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	us := userSessionFromContext(r.Context())
	st := us.state

	rows := st.Rows
	if rows < len(st.Drafts) {
		rows = len(st.Drafts)
	}
	if rows < 1 {
		rows = s.registerRows()
	}
	entries := make([]models.WordEntry, rows)
	copy(entries, st.Drafts)

	s.render(w, r, "pages/register.html", pageData{
		"entries": entries,
	})
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	us := userSessionFromContext(r.Context())
	entries, err := parseEntries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	us.state.Drafts = entries
	if us.state.Rows < len(entries) {
		us.state.Rows = len(entries)
	}
	us.state.Rows++
	logger.FromContext(r.Context()).Debug("registration form now has %d rows", us.state.Rows)

	s.redirect(w, r, "/register")
}

func (s *Server) handleSaveWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	us := userSessionFromContext(r.Context())
	entries, err := parseEntries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	n, err := s.VocabService.Register(r.Context(), entries)
	if err != nil {
		us.state.Drafts = entries
		s.flashOrFail(w, r, err, "/register")
		return
	}

	if n == 0 {
		us.addFlash(flashInfo, "Enter at least one word together with its meaning.")
		us.state.Drafts = entries
		s.redirect(w, r, "/register")
		return
	}

	log.Info("saved %d words from registration form", n)
	us.addFlash(flashSuccess, fmt.Sprintf("%d words saved.", n))
	us.state.Drafts = nil
	us.state.Rows = s.registerRows()
	s.redirect(w, r, "/register")
}

// parseEntries pairs the form's word and meaning fields row by row.
func parseEntries(r *http.Request) ([]models.WordEntry, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.NewBadRequestError("malformed form: " + err.Error())
	}
	words := r.PostForm["word"]
	meanings := r.PostForm["meaning"]

	n := len(words)
	if len(meanings) > n {
		n = len(meanings)
	}
	entries := make([]models.WordEntry, n)
	for i := range entries {
		if i < len(words) {
			entries[i].Word = words[i]
		}
		if i < len(meanings) {
			entries[i].Meaning = meanings[i]
		}
	}
	return entries, nil
}
