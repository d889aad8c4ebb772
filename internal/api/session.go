package api

import (
	"context"
	"encoding/gob"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/quiz"
)

const (
	sessionName = "vocaquiz"
	stateKey    = "state"

	modeRegister = "register"
	modeQuiz     = "quiz"
)

// Flash kinds, also used as CSS classes.
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
)

var flashKinds = []string{flashSuccess, flashInfo, flashWarning}

func init() {
	gob.Register(&userState{})
	// Flashes are stored as []interface{} under their kind.
	gob.Register([]interface{}{})
}

// userState is everything kept per browser session.
type userState struct {
	Mode   string
	Quiz   quiz.Session
	Rows   int
	Drafts []models.WordEntry
}

// switchMode discards quiz progress and registration drafts.
func (st *userState) switchMode(mode string, rows int) {
	st.Quiz.Reset()
	st.Rows = rows
	st.Drafts = nil
	st.Mode = mode
}

type notice struct {
	Kind string
	Text string
}

type userSession struct {
	sess  *sessions.Session
	state *userState
}

func (us *userSession) addFlash(kind, text string) {
	us.sess.AddFlash(text, kind)
}

func (us *userSession) flashes() []notice {
	var out []notice
	for _, kind := range flashKinds {
		for _, v := range us.sess.Flashes(kind) {
			if text, ok := v.(string); ok {
				out = append(out, notice{Kind: kind, Text: text})
			}
		}
	}
	return out
}

func (us *userSession) save(w http.ResponseWriter, r *http.Request) error {
	us.sess.Values[stateKey] = us.state
	if err := us.sess.Save(r, w); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

type userSessionKey struct{}

func userSessionFromContext(ctx context.Context) *userSession {
	if us, ok := ctx.Value(userSessionKey{}).(*userSession); ok {
		return us
	}
	return nil
}

func modeForPath(path string) string {
	switch {
	case path == "/register" || strings.HasPrefix(path, "/register/"):
		return modeRegister
	case path == "/quiz" || strings.HasPrefix(path, "/quiz/"):
		return modeQuiz
	}
	return ""
}

// sessionMiddleware loads the user session for register and quiz pages and
// switches mode when the request belongs to a different mode than the last.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mode := modeForPath(r.URL.Path)
		if mode == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(r.Context())
		sess, err := s.Sessions.Get(r, sessionName)
		if err != nil {
			// The store hands back a fresh session alongside decode errors.
			log.Warn("discarding unreadable session: %v", err)
		}
		if sess == nil {
			handleError(w, r, errors.NewInternalError(err))
			return
		}

		st, ok := sess.Values[stateKey].(*userState)
		if !ok {
			st = &userState{}
		}
		if st.Mode != mode {
			log.Debug("switching mode %q -> %q", st.Mode, mode)
			st.switchMode(mode, s.registerRows())
		}

		ctx := context.WithValue(r.Context(), userSessionKey{}, &userSession{sess: sess, state: st})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// NewSessionStore creates the server-side session store. Quiz sessions carry
// the whole question pool, so values are kept in files under dir and only
// the session id travels in the cookie.
func NewSessionStore(dir string, secret []byte) *sessions.FilesystemStore {
	store := sessions.NewFilesystemStore(dir, secret)
	store.MaxLength(0)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
