package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	// Check if it's already an AppError
	appErr, ok := errors.As(err)
	if !ok {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	// Log based on status code
	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(appErr.Status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	http.Error(w, appErr.Message, appErr.Status)
}

// flashOrFail turns client-side failures (bad input, an action not valid in
// the current state) into a warning on the next page. Anything else goes
// through handleError.
func (s *Server) flashOrFail(w http.ResponseWriter, r *http.Request, err error, target string) {
	us := userSessionFromContext(r.Context())
	appErr, ok := errors.As(err)
	if ok && us != nil && (appErr.Code == errors.ErrCodeValidation || appErr.Code == errors.ErrCodePrecondition) {
		logger.FromContext(r.Context()).Debug("rejected: %s", appErr.Message)
		us.addFlash(flashWarning, appErr.Message)
		s.redirect(w, r, target)
		return
	}
	handleError(w, r, err)
}
