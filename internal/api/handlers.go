package api

import (
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/services"
)

// DefaultRegisterRows is the number of empty rows on a fresh registration form.
const DefaultRegisterRows = 10

type Server struct {
	VocabService services.VocabService
	QuizService  services.QuizService
	Sessions     sessions.Store
	Templates    *template.Template
	RegisterRows int
}

type pageData map[string]any

func (s *Server) registerRows() int {
	if s.RegisterRows > 0 {
		return s.RegisterRows
	}
	return DefaultRegisterRows
}

// render saves the user session, then executes the named template. Pending
// flash messages are consumed into data["flashes"].
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	log := logger.FromContext(r.Context())

	if us := userSessionFromContext(r.Context()); us != nil {
		data["flashes"] = us.flashes()
		data["mode"] = us.state.Mode
		if err := us.save(w, r); err != nil {
			handleError(w, r, err)
			return
		}
	}

	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// redirect saves the user session and answers with 303 See Other.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if us := userSessionFromContext(r.Context()); us != nil {
		if err := us.save(w, r); err != nil {
			handleError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
