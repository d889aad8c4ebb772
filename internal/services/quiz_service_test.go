package services

import (
	"context"
	stderrors "errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/quiz"
	"github.com/vytor/vocaquiz/internal/repository"
	"github.com/vytor/vocaquiz/internal/testutil/mocks"
)

type QuizServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *mocks.MockWordStore
	svc     QuizService
	records []models.VocabRecord
}

func (s *QuizServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = new(mocks.MockWordStore)
	s.svc = NewQuizService(s.store, quiz.NewEngine(rand.New(rand.NewSource(7)), 0))
	s.records = []models.VocabRecord{
		{Word: "book", Meaning: "책", UploadDate: "2024-01-01"},
		{Word: "pen", Meaning: "펜", UploadDate: "2024-01-01"},
		{Word: "cat", Meaning: "고양이", UploadDate: "2024-02-01"},
	}
}

func (s *QuizServiceSuite) config(qt models.QuestionType) models.QuizConfig {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.QuizConfig{DateFilter: models.SingleDate(d), QuestionType: qt}
}

func (s *QuizServiceSuite) TestFullRound() {
	s.store.On("FetchAllRecords", mock.Anything).Return(s.records, nil)
	var sess quiz.Session

	s.Require().NoError(s.svc.Start(s.ctx, &sess, s.config(models.QuestionShortAnswer)))
	s.Len(sess.Pool, 2)

	for sess.State() != quiz.StateComplete {
		q, err := s.svc.Current(s.ctx, &sess)
		s.Require().NoError(err)
		input := "wrong"
		if q.Record.Word == "book" {
			input = q.Answer()
		}
		_, err = s.svc.Submit(s.ctx, &sess, input)
		s.Require().NoError(err)
		s.Require().NoError(s.svc.Advance(s.ctx, &sess))
	}

	total, correct := sess.Score()
	s.Equal(2, total)
	s.Equal(1, correct)

	s.Require().NoError(s.svc.RetryWrong(s.ctx, &sess))
	s.Require().Len(sess.Pool, 1)
	s.Equal("pen", sess.Pool[0].Word)
	s.True(sess.RetryUsed)
}

func (s *QuizServiceSuite) TestStart_NoEligibleRecords() {
	s.store.On("FetchAllRecords", mock.Anything).Return(s.records, nil)
	var sess quiz.Session
	cfg := s.config(models.QuestionMultipleChoice)
	cfg.DateFilter = models.SingleDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	err := s.svc.Start(s.ctx, &sess, cfg)

	s.True(stderrors.Is(err, quiz.ErrNoEligibleRecords))
	s.Equal(quiz.StateNotStarted, sess.State())
}

func (s *QuizServiceSuite) TestStart_InvalidQuestionType() {
	var sess quiz.Session

	err := s.svc.Start(s.ctx, &sess, s.config("essay"))

	s.True(errors.IsCode(err, errors.ErrCodeValidation))
	s.store.AssertNotCalled(s.T(), "FetchAllRecords", mock.Anything)
}

func (s *QuizServiceSuite) TestStart_IncompleteRange() {
	s.store.On("FetchAllRecords", mock.Anything).Return(s.records, nil)
	var sess quiz.Session
	cfg := s.config(models.QuestionMixed)
	cfg.DateFilter.End = time.Time{}

	err := s.svc.Start(s.ctx, &sess, cfg)

	s.True(errors.IsCode(err, errors.ErrCodePrecondition))
}

func (s *QuizServiceSuite) TestStart_StoreUnavailable() {
	s.store.On("FetchAllRecords", mock.Anything).Return(nil, repository.ErrUnavailable)
	var sess quiz.Session

	err := s.svc.Start(s.ctx, &sess, s.config(models.QuestionMixed))

	s.True(errors.IsCode(err, errors.ErrCodeConfiguration))
}

func (s *QuizServiceSuite) TestCurrent_FetchesOncePerQuestion() {
	s.store.On("FetchAllRecords", mock.Anything).Return(s.records, nil)
	var sess quiz.Session
	s.Require().NoError(s.svc.Start(s.ctx, &sess, s.config(models.QuestionMultipleChoice)))

	first, err := s.svc.Current(s.ctx, &sess)
	s.Require().NoError(err)
	again, err := s.svc.Current(s.ctx, &sess)
	s.Require().NoError(err)

	s.Equal(first, again)
	// One fetch for Start, one for the first render.
	s.store.AssertNumberOfCalls(s.T(), "FetchAllRecords", 2)
}

func (s *QuizServiceSuite) TestTransitionsBeforeStart() {
	var sess quiz.Session

	_, err := s.svc.Current(s.ctx, &sess)
	s.True(errors.IsCode(err, errors.ErrCodePrecondition))

	_, err = s.svc.Submit(s.ctx, &sess, "x")
	s.True(errors.IsCode(err, errors.ErrCodePrecondition))

	s.True(errors.IsCode(s.svc.Advance(s.ctx, &sess), errors.ErrCodePrecondition))
	s.True(errors.IsCode(s.svc.RetryWrong(s.ctx, &sess), errors.ErrCodePrecondition))
}

func (s *QuizServiceSuite) TestSubmitTwice() {
	s.store.On("FetchAllRecords", mock.Anything).Return(s.records, nil)
	var sess quiz.Session
	s.Require().NoError(s.svc.Start(s.ctx, &sess, s.config(models.QuestionShortAnswer)))

	_, err := s.svc.Submit(s.ctx, &sess, "a")
	s.Require().NoError(err)
	_, err = s.svc.Submit(s.ctx, &sess, "b")

	s.True(errors.IsCode(err, errors.ErrCodePrecondition))
	s.Len(sess.Answers, 1)
}

func TestQuizServiceSuite(t *testing.T) {
	suite.Run(t, new(QuizServiceSuite))
}
