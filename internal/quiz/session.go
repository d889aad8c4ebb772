package quiz

import (
	"github.com/vytor/vocaquiz/internal/models"
)

// DefaultMaxQuestions caps the pool drawn by Start.
const DefaultMaxQuestions = 20

type State int

const (
	StateNotStarted State = iota
	StateAwaitingAnswer
	StateAwaitingAdvance
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateAwaitingAdvance:
		return "awaiting_advance"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session is the per-user quiz state. Its zero value is a session that has
// not started. Fields are exported so the value can be gob-encoded into the
// user's session store; mutate it only through Engine.
type Session struct {
	Config       models.QuizConfig
	Pool         []models.VocabRecord
	Index        int
	Answers      []models.AnswerRecord
	Started      bool
	AwaitingNext bool
	RetryUsed    bool
	Cache        map[int]QuestionCache
}

func (s *Session) State() State {
	switch {
	case !s.Started:
		return StateNotStarted
	case s.Index >= len(s.Pool):
		return StateComplete
	case s.AwaitingNext:
		return StateAwaitingAdvance
	default:
		return StateAwaitingAnswer
	}
}

// Score returns the number of answered questions and how many were right.
func (s *Session) Score() (total, correct int) {
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	return len(s.Answers), correct
}

// CanRetry reports whether RetryWrong is allowed.
func (s *Session) CanRetry() bool {
	total, correct := s.Score()
	return s.State() == StateComplete && !s.RetryUsed && correct < total
}

// LastAnswer returns the most recent answer, if any.
func (s *Session) LastAnswer() (models.AnswerRecord, bool) {
	if len(s.Answers) == 0 {
		return models.AnswerRecord{}, false
	}
	return s.Answers[len(s.Answers)-1], true
}

// Reset discards all state. It runs whenever the user switches modes.
func (s *Session) Reset() {
	*s = Session{}
}

// Engine applies transitions to sessions. It holds no per-user state, so one
// Engine serves every session.
type Engine struct {
	rng          Rand
	maxQuestions int
}

// NewEngine returns an Engine drawing from rng. A nil rng uses the global
// math/rand source; maxQuestions <= 0 means DefaultMaxQuestions.
func NewEngine(rng Rand, maxQuestions int) *Engine {
	if rng == nil {
		rng = globalRand{}
	}
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}
	return &Engine{rng: rng, maxQuestions: maxQuestions}
}

// Start samples a new pool from the records matching cfg's date filter and
// replaces s with a fresh in-progress session. On error s is unchanged.
func (e *Engine) Start(s *Session, cfg models.QuizConfig, records []models.VocabRecord) error {
	f := cfg.DateFilter
	if f.Start.IsZero() || f.End.IsZero() {
		return ErrIncompleteDateRange
	}
	if f.Start.After(f.End) {
		return ErrInvalidDateRange
	}

	eligible := FilterByDate(records, f)
	if len(eligible) == 0 {
		return ErrNoEligibleRecords
	}

	*s = Session{
		Config:  cfg,
		Pool:    sample(eligible, e.maxQuestions, e.rng),
		Answers: []models.AnswerRecord{},
		Started: true,
		Cache:   map[int]QuestionCache{},
	}
	return nil
}

// Current returns the question at the cursor, making and caching its random
// picks on first visit. all is the full record set used for distractors.
func (e *Engine) Current(s *Session, all []models.VocabRecord) (Question, error) {
	st := s.State()
	if st != StateAwaitingAnswer && st != StateAwaitingAdvance {
		return Question{}, ErrNotInProgress
	}

	if s.Cache == nil {
		s.Cache = map[int]QuestionCache{}
	}
	record := s.Pool[s.Index]
	c, ok := s.Cache[s.Index]
	if !ok {
		c = newQuestionCache(s.Config.QuestionType, record, all, e.rng)
		s.Cache[s.Index] = c
	}

	return Question{
		Index:     s.Index,
		Total:     len(s.Pool),
		Record:    record,
		Type:      c.Type,
		Direction: c.Direction,
		Options:   append([]string(nil), c.Options...),
	}, nil
}

// Submit grades input against the current question and records the answer.
func (e *Engine) Submit(s *Session, all []models.VocabRecord, input string) (models.AnswerRecord, error) {
	switch s.State() {
	case StateAwaitingAdvance:
		return models.AnswerRecord{}, ErrAlreadyAnswered
	case StateAwaitingAnswer:
	default:
		return models.AnswerRecord{}, ErrNotInProgress
	}

	q, err := e.Current(s, all)
	if err != nil {
		return models.AnswerRecord{}, err
	}

	answer := models.AnswerRecord{
		Word:          q.Record.Word,
		Meaning:       q.Record.Meaning,
		UserAnswer:    input,
		CorrectAnswer: q.Answer(),
		IsCorrect:     Grade(input, q.Answer()),
	}
	s.Answers = append(s.Answers, answer)
	s.AwaitingNext = true
	return answer, nil
}

// Advance drops the current question's cached picks and moves the cursor.
func (e *Engine) Advance(s *Session) error {
	switch s.State() {
	case StateAwaitingAnswer:
		return ErrNotAnswered
	case StateAwaitingAdvance:
	default:
		return ErrNotInProgress
	}

	delete(s.Cache, s.Index)
	s.Index++
	s.AwaitingNext = false
	return nil
}

// RetryWrong restarts a completed session on the wrongly answered words. Only
// word and meaning survive; upload dates are not carried over. It can be used
// once per completed session chain.
func (e *Engine) RetryWrong(s *Session) error {
	if s.State() != StateComplete {
		return ErrNotComplete
	}
	if !s.CanRetry() {
		return ErrRetryUnavailable
	}

	var pool []models.VocabRecord
	for _, a := range s.Answers {
		if !a.IsCorrect {
			pool = append(pool, models.VocabRecord{Word: a.Word, Meaning: a.Meaning})
		}
	}

	*s = Session{
		Config:    s.Config,
		Pool:      pool,
		Answers:   []models.AnswerRecord{},
		Started:   true,
		RetryUsed: true,
		Cache:     map[int]QuestionCache{},
	}
	return nil
}
