package api

import (
	"net/http"

	"github.com/vytor/vocaquiz/internal/errors"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, errors.NewNotFoundError("page", r.URL.Path))
}
