package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/quiz"
)

// handleQuiz renders the start, question or summary screen depending on the
// state of the user's quiz session.
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	us := userSessionFromContext(ctx)
	sess := &us.state.Quiz

	switch sess.State() {
	case quiz.StateNotStarted:
		data := pageData{
			"today":          models.FormatDate(time.Now()),
			"question_types": questionTypeChoices,
		}
		if overview, err := s.VocabService.Overview(ctx); err != nil {
			log.Warn("failed to load vocabulary overview: %v", err)
			if appErr, ok := errors.As(err); ok {
				data["store_error"] = appErr.Message
			}
		} else {
			data["overview"] = overview
		}
		s.render(w, r, "pages/quiz_start.html", data)

	case quiz.StateComplete:
		total, correct := sess.Score()
		s.render(w, r, "pages/quiz_complete.html", pageData{
			"answers":   sess.Answers,
			"total":     total,
			"correct":   correct,
			"can_retry": sess.CanRetry(),
			"period":    sess.Config.DateFilter.Label(),
		})

	default:
		q, err := s.QuizService.Current(ctx, sess)
		if err != nil {
			handleError(w, r, err)
			return
		}
		data := pageData{"question": q}
		if sess.State() == quiz.StateAwaitingAdvance {
			if last, ok := sess.LastAnswer(); ok {
				data["last"] = last
			}
		}
		s.render(w, r, "pages/quiz_question.html", data)
	}
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	us := userSessionFromContext(ctx)

	filter, err := quiz.ParseDateFilter(r.FormValue("date_mode"), r.FormValue("start"), r.FormValue("end"))
	if err != nil {
		s.flashOrFail(w, r, errors.NewPreconditionError(err), "/quiz")
		return
	}

	cfg := models.QuizConfig{
		DateFilter:   filter,
		QuestionType: models.QuestionType(r.FormValue("question_type")),
	}
	if err := s.QuizService.Start(ctx, &us.state.Quiz, cfg); err != nil {
		if stderrors.Is(err, quiz.ErrNoEligibleRecords) {
			us.addFlash(flashInfo, fmt.Sprintf("No words registered for %s.", filter.Label()))
			s.redirect(w, r, "/quiz")
			return
		}
		s.flashOrFail(w, r, err, "/quiz")
		return
	}

	s.redirect(w, r, "/quiz")
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	us := userSessionFromContext(r.Context())
	if _, err := s.QuizService.Submit(r.Context(), &us.state.Quiz, r.FormValue("answer")); err != nil {
		s.flashOrFail(w, r, err, "/quiz")
		return
	}
	s.redirect(w, r, "/quiz")
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	us := userSessionFromContext(r.Context())
	if err := s.QuizService.Advance(r.Context(), &us.state.Quiz); err != nil {
		s.flashOrFail(w, r, err, "/quiz")
		return
	}
	s.redirect(w, r, "/quiz")
}

func (s *Server) handleRetryWrong(w http.ResponseWriter, r *http.Request) {
	us := userSessionFromContext(r.Context())
	if err := s.QuizService.RetryWrong(r.Context(), &us.state.Quiz); err != nil {
		s.flashOrFail(w, r, err, "/quiz")
		return
	}
	s.redirect(w, r, "/quiz")
}

// handleResetQuiz abandons the current quiz and returns to the start screen.
func (s *Server) handleResetQuiz(w http.ResponseWriter, r *http.Request) {
	us := userSessionFromContext(r.Context())
	us.state.Quiz.Reset()
	s.redirect(w, r, "/quiz")
}

type choice struct {
	Value string
	Label string
}

var questionTypeChoices = []choice{
	{Value: string(models.QuestionMultipleChoice), Label: "Multiple choice"},
	{Value: string(models.QuestionShortAnswer), Label: "Short answer"},
	{Value: string(models.QuestionMixed), Label: "Mixed"},
}
