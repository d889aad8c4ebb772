package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(requestTimeout))
	r.Use(s.sessionMiddleware)

	r.NotFound(s.handleNotFound)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleSaveWords)
	r.Post("/register/rows", s.handleAddRow)

	r.Get("/quiz", s.handleQuiz)
	r.Post("/quiz/start", s.handleStartQuiz)
	r.Post("/quiz/answer", s.handleSubmitAnswer)
	r.Post("/quiz/next", s.handleNextQuestion)
	r.Post("/quiz/retry", s.handleRetryWrong)
	r.Post("/quiz/reset", s.handleResetQuiz)

	return r
}
