package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/quiz"
	"github.com/vytor/vocaquiz/internal/repository"
	"github.com/vytor/vocaquiz/internal/validator"
)

// QuizService drives quiz sessions against the word store.
//
// Start returns quiz.ErrNoEligibleRecords unwrapped when the date filter
// matches nothing. Precondition violations come back as PRECONDITION_FAILED
// AppErrors and leave the session untouched.
type QuizService interface {
	Start(ctx context.Context, sess *quiz.Session, cfg models.QuizConfig) error
	Current(ctx context.Context, sess *quiz.Session) (quiz.Question, error)
	Submit(ctx context.Context, sess *quiz.Session, answer string) (models.AnswerRecord, error)
	Advance(ctx context.Context, sess *quiz.Session) error
	RetryWrong(ctx context.Context, sess *quiz.Session) error
}

type quizService struct {
	store  repository.WordStore
	engine *quiz.Engine
}

// NewQuizService creates a new QuizService
func NewQuizService(store repository.WordStore, engine *quiz.Engine) QuizService {
	if engine == nil {
		engine = quiz.NewEngine(nil, quiz.DefaultMaxQuestions)
	}
	return &quizService{store: store, engine: engine}
}

func (s *quizService) Start(ctx context.Context, sess *quiz.Session, cfg models.QuizConfig) error {
	log := logger.FromContext(ctx)

	if err := validator.ValidateStruct(cfg); err != nil {
		return errors.NewValidationError("question type", err.Error())
	}

	records, err := s.store.FetchAllRecords(ctx)
	if err != nil {
		log.Error("failed to load records: %v", err)
		return storeError(err)
	}

	if err := s.engine.Start(sess, cfg, records); err != nil {
		if stderrors.Is(err, quiz.ErrNoEligibleRecords) {
			log.Info("no records for %s", cfg.DateFilter.Label())
			return err
		}
		return transitionError(err)
	}

	log.Info("quiz started: period=%s type=%s questions=%d", cfg.DateFilter.Label(), cfg.QuestionType, len(sess.Pool))
	return nil
}

func (s *quizService) Current(ctx context.Context, sess *quiz.Session) (quiz.Question, error) {
	var all []models.VocabRecord
	// Distractors are only needed the first time a question is shown.
	if _, cached := sess.Cache[sess.Index]; !cached && sess.State() == quiz.StateAwaitingAnswer {
		records, err := s.store.FetchAllRecords(ctx)
		if err != nil {
			logger.FromContext(ctx).Error("failed to load records: %v", err)
			return quiz.Question{}, storeError(err)
		}
		all = records
	}

	q, err := s.engine.Current(sess, all)
	if err != nil {
		return quiz.Question{}, transitionError(err)
	}
	return q, nil
}

func (s *quizService) Submit(ctx context.Context, sess *quiz.Session, answer string) (models.AnswerRecord, error) {
	log := logger.FromContext(ctx)

	if _, err := s.Current(ctx, sess); err != nil {
		return models.AnswerRecord{}, err
	}

	rec, err := s.engine.Submit(sess, nil, answer)
	if err != nil {
		return models.AnswerRecord{}, transitionError(err)
	}

	log.Debug("question %d answered: correct=%t", sess.Index+1, rec.IsCorrect)
	return rec, nil
}

func (s *quizService) Advance(ctx context.Context, sess *quiz.Session) error {
	if err := s.engine.Advance(sess); err != nil {
		return transitionError(err)
	}
	if sess.State() == quiz.StateComplete {
		total, correct := sess.Score()
		logger.FromContext(ctx).Info("quiz complete: %d/%d", correct, total)
	}
	return nil
}

func (s *quizService) RetryWrong(ctx context.Context, sess *quiz.Session) error {
	if err := s.engine.RetryWrong(sess); err != nil {
		return transitionError(err)
	}
	logger.FromContext(ctx).Info("retrying %d wrong answers", len(sess.Pool))
	return nil
}

func transitionError(err error) error {
	if quiz.IsPrecondition(err) {
		return errors.NewPreconditionError(err)
	}
	return errors.NewInternalError(err)
}
