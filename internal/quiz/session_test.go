package quiz_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/quiz"
)

func newEngine(seed int64) *quiz.Engine {
	return quiz.NewEngine(rand.New(rand.NewSource(seed)), 0)
}

func datedRecords(n int, date string) []models.VocabRecord {
	out := make([]models.VocabRecord, n)
	for i := range out {
		out[i] = models.VocabRecord{
			Word:       fmt.Sprintf("word%d", i),
			Meaning:    fmt.Sprintf("뜻%d", i),
			UploadDate: date,
		}
	}
	return out
}

func config(qt models.QuestionType, date string) models.QuizConfig {
	return models.QuizConfig{DateFilter: models.SingleDate(day(date)), QuestionType: qt}
}

// answerAll answers every remaining question, correctly when right(i) is true.
func answerAll(t *testing.T, e *quiz.Engine, s *quiz.Session, all []models.VocabRecord, right func(i int) bool) {
	t.Helper()
	for s.State() != quiz.StateComplete {
		q, err := e.Current(s, all)
		require.NoError(t, err)
		input := "definitely wrong"
		if right(q.Index) {
			input = q.Answer()
		}
		_, err = e.Submit(s, all, input)
		require.NoError(t, err)
		require.NoError(t, e.Advance(s))
	}
}

func TestStart_PoolSizeAndRange(t *testing.T) {
	for _, n := range []int{1, 5, 19, 20, 21, 50} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			records := append(datedRecords(n, "2024-01-10"), datedRecords(7, "2023-06-01")...)
			e := newEngine(int64(n))
			var s quiz.Session
			cfg := models.QuizConfig{
				DateFilter:   models.DateRange(day("2024-01-01"), day("2024-01-31")),
				QuestionType: models.QuestionShortAnswer,
			}

			require.NoError(t, e.Start(&s, cfg, records))

			want := n
			if want > quiz.DefaultMaxQuestions {
				want = quiz.DefaultMaxQuestions
			}
			assert.Len(t, s.Pool, want)
			seen := map[string]bool{}
			for _, r := range s.Pool {
				assert.Equal(t, "2024-01-10", r.UploadDate)
				assert.False(t, seen[r.Word], "sampled twice: %s", r.Word)
				seen[r.Word] = true
			}
			assert.Equal(t, 0, s.Index)
			assert.Empty(t, s.Answers)
			assert.True(t, s.Started)
			assert.False(t, s.AwaitingNext)
			assert.Equal(t, quiz.StateAwaitingAnswer, s.State())
		})
	}
}

func TestStart_CustomCap(t *testing.T) {
	e := quiz.NewEngine(rand.New(rand.NewSource(3)), 5)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionMixed, "2024-01-01"), datedRecords(12, "2024-01-01")))
	assert.Len(t, s.Pool, 5)
}

func TestStart_FailuresLeaveSessionUntouched(t *testing.T) {
	e := newEngine(1)
	records := datedRecords(3, "2024-01-01")

	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), records))
	before := s

	err := e.Start(&s, config(models.QuestionShortAnswer, "2030-01-01"), records)
	assert.ErrorIs(t, err, quiz.ErrNoEligibleRecords)
	assert.False(t, quiz.IsPrecondition(err))
	assert.Equal(t, before, s)

	err = e.Start(&s, models.QuizConfig{QuestionType: models.QuestionShortAnswer}, records)
	assert.ErrorIs(t, err, quiz.ErrIncompleteDateRange)
	assert.Equal(t, before, s)

	err = e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), nil)
	assert.ErrorIs(t, err, quiz.ErrNoEligibleRecords)
	assert.Equal(t, before, s)
}

func TestSubmit_GradingIgnoresCaseAndSpace(t *testing.T) {
	records := []models.VocabRecord{{Word: "apple", Meaning: "사과", UploadDate: "2024-01-01"}}
	for _, input := range []string{"Apple", " apple "} {
		e := newEngine(1)
		var s quiz.Session
		require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), records))

		ans, err := e.Submit(&s, records, input)
		require.NoError(t, err)
		assert.True(t, ans.IsCorrect, "input %q", input)
		assert.Equal(t, input, ans.UserAnswer)
		assert.Equal(t, "apple", ans.CorrectAnswer)
	}
}

func TestSubmit_EmptyAnswerIsWrong(t *testing.T) {
	records := []models.VocabRecord{{Word: "apple", Meaning: "사과", UploadDate: "2024-01-01"}}
	e := newEngine(1)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), records))

	ans, err := e.Submit(&s, records, "   ")
	require.NoError(t, err)
	assert.False(t, ans.IsCorrect)
}

func TestSubmit_TwiceIsRejected(t *testing.T) {
	records := datedRecords(3, "2024-01-01")
	e := newEngine(2)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), records))

	_, err := e.Submit(&s, records, "x")
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAwaitingAdvance, s.State())

	_, err = e.Submit(&s, records, "y")
	assert.ErrorIs(t, err, quiz.ErrAlreadyAnswered)
	assert.True(t, quiz.IsPrecondition(err))
	assert.Len(t, s.Answers, 1)
	assert.Equal(t, "x", s.Answers[0].UserAnswer)
}

func TestAdvance_TwiceIsRejected(t *testing.T) {
	records := datedRecords(3, "2024-01-01")
	e := newEngine(3)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), records))

	_, err := e.Submit(&s, records, "x")
	require.NoError(t, err)
	require.NoError(t, e.Advance(&s))
	snapshot := s

	err = e.Advance(&s)
	assert.ErrorIs(t, err, quiz.ErrNotAnswered)
	assert.Equal(t, snapshot, s)
	assert.Equal(t, 1, s.Index)
}

func TestTransitionsBeforeStart(t *testing.T) {
	e := newEngine(1)
	var s quiz.Session

	_, err := e.Current(&s, nil)
	assert.ErrorIs(t, err, quiz.ErrNotInProgress)
	_, err = e.Submit(&s, nil, "x")
	assert.ErrorIs(t, err, quiz.ErrNotInProgress)
	assert.ErrorIs(t, e.Advance(&s), quiz.ErrNotInProgress)
	assert.ErrorIs(t, e.RetryWrong(&s), quiz.ErrNotComplete)
	assert.Equal(t, quiz.StateNotStarted, s.State())
}

func TestAnswersTrackIndex(t *testing.T) {
	records := datedRecords(6, "2024-01-01")
	e := newEngine(4)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionMixed, "2024-01-01"), records))

	for s.State() != quiz.StateComplete {
		assert.Len(t, s.Answers, s.Index)
		_, err := e.Submit(&s, records, "x")
		require.NoError(t, err)
		assert.Len(t, s.Answers, s.Index+1)
		require.NoError(t, e.Advance(&s))
	}
	assert.Equal(t, len(s.Pool), s.Index)
	assert.Len(t, s.Answers, len(s.Pool))

	_, err := e.Submit(&s, records, "x")
	assert.ErrorIs(t, err, quiz.ErrNotInProgress)
}

func TestRetryWrong_UsesOnlyWrongRecords(t *testing.T) {
	all := []models.VocabRecord{
		{Word: "cat", Meaning: "고양이", UploadDate: "2024-01-01"},
		{Word: "dog", Meaning: "개", UploadDate: "2024-01-01"},
	}
	e := newEngine(5)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), all))

	answerAll(t, e, &s, all, func(i int) bool { return s.Pool[i].Word == "cat" })
	total, correct := s.Score()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, correct)
	require.True(t, s.CanRetry())

	require.NoError(t, e.RetryWrong(&s))

	assert.Equal(t, []models.VocabRecord{{Word: "dog", Meaning: "개"}}, s.Pool)
	assert.Equal(t, 0, s.Index)
	assert.Empty(t, s.Answers)
	assert.False(t, s.AwaitingNext)
	assert.True(t, s.RetryUsed)
	assert.Empty(t, s.Cache)
	assert.Equal(t, quiz.StateAwaitingAnswer, s.State())
}

func TestRetryWrong_OnlyOnce(t *testing.T) {
	all := datedRecords(3, "2024-01-01")
	e := newEngine(6)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), all))

	answerAll(t, e, &s, all, func(int) bool { return false })
	require.NoError(t, e.RetryWrong(&s))
	assert.Len(t, s.Pool, 3)

	answerAll(t, e, &s, all, func(int) bool { return false })
	assert.False(t, s.CanRetry())
	snapshot := s
	assert.ErrorIs(t, e.RetryWrong(&s), quiz.ErrRetryUnavailable)
	assert.Equal(t, snapshot, s)
}

func TestRetryWrong_NotAllowedWhenAllCorrect(t *testing.T) {
	all := datedRecords(2, "2024-01-01")
	e := newEngine(7)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionMixed, "2024-01-01"), all))

	answerAll(t, e, &s, all, func(int) bool { return true })
	assert.False(t, s.CanRetry())
	assert.ErrorIs(t, e.RetryWrong(&s), quiz.ErrRetryUnavailable)
}

func TestRetryWrong_BeforeCompletion(t *testing.T) {
	all := datedRecords(2, "2024-01-01")
	e := newEngine(8)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), all))
	_, err := e.Submit(&s, all, "nope")
	require.NoError(t, err)

	assert.ErrorIs(t, e.RetryWrong(&s), quiz.ErrNotComplete)
}

func TestCurrent_CachedPicksAreStable(t *testing.T) {
	all := datedRecords(10, "2024-01-01")
	for seed := int64(0); seed < 20; seed++ {
		e := newEngine(seed)
		var s quiz.Session
		require.NoError(t, e.Start(&s, config(models.QuestionMixed, "2024-01-01"), all))

		first, err := e.Current(&s, all)
		require.NoError(t, err)
		second, err := e.Current(&s, all)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.NotEqual(t, models.QuestionMixed, first.Type)
	}
}

func TestCurrent_StableAfterSubmitAndClearedOnAdvance(t *testing.T) {
	all := datedRecords(10, "2024-01-01")
	e := newEngine(11)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionMultipleChoice, "2024-01-01"), all))

	q, err := e.Current(&s, all)
	require.NoError(t, err)
	_, err = e.Submit(&s, all, q.Options[0])
	require.NoError(t, err)

	again, err := e.Current(&s, all)
	require.NoError(t, err)
	assert.Equal(t, q, again)

	require.NoError(t, e.Advance(&s))
	_, cached := s.Cache[0]
	assert.False(t, cached)
}

func TestMultipleChoice_OptionIntegrity(t *testing.T) {
	all := datedRecords(10, "2024-01-01")
	all = append(all, models.VocabRecord{Word: "WORD1", Meaning: " 뜻1 ", UploadDate: "2024-01-01"})

	for seed := int64(0); seed < 30; seed++ {
		e := newEngine(seed)
		var s quiz.Session
		require.NoError(t, e.Start(&s, config(models.QuestionMultipleChoice, "2024-01-01"), all))

		q, err := e.Current(&s, all)
		require.NoError(t, err)
		require.True(t, q.IsMultipleChoice())
		assert.Len(t, q.Options, 4)

		matches := 0
		seen := map[string]bool{}
		for _, o := range q.Options {
			if quiz.Grade(o, q.Answer()) {
				matches++
			}
			key := fmt.Sprintf("%q", o)
			assert.False(t, seen[key], "duplicate option %q", o)
			seen[key] = true
		}
		assert.Equal(t, 1, matches, "options %v answer %q", q.Options, q.Answer())

		if q.Direction == models.DirectionKorToEng {
			assert.Contains(t, q.Options, q.Record.Word)
		} else {
			assert.Contains(t, q.Options, q.Record.Meaning)
		}
	}
}

func TestMultipleChoice_SingleRecordDataSet(t *testing.T) {
	all := []models.VocabRecord{{Word: "solo", Meaning: "혼자", UploadDate: "2024-01-01"}}
	e := newEngine(9)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionMultipleChoice, "2024-01-01"), all))

	q, err := e.Current(&s, all)
	require.NoError(t, err)
	assert.Equal(t, []string{q.Answer()}, q.Options)

	ans, err := e.Submit(&s, all, q.Options[0])
	require.NoError(t, err)
	assert.True(t, ans.IsCorrect)
}

func TestMultipleChoice_FewDistractors(t *testing.T) {
	all := datedRecords(3, "2024-01-01")
	e := newEngine(10)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionMultipleChoice, "2024-01-01"), all))

	q, err := e.Current(&s, all)
	require.NoError(t, err)
	assert.Len(t, q.Options, 3)
}

func TestMultipleChoice_EngToKorGradesMeaning(t *testing.T) {
	all := datedRecords(5, "2024-01-01")
	for seed := int64(0); seed < 20; seed++ {
		e := newEngine(seed)
		var s quiz.Session
		require.NoError(t, e.Start(&s, config(models.QuestionMultipleChoice, "2024-01-01"), all))
		q, err := e.Current(&s, all)
		require.NoError(t, err)
		if q.Direction != models.DirectionEngToKor {
			continue
		}
		assert.Equal(t, q.Record.Meaning, q.Answer())
		assert.Contains(t, q.Prompt(), q.Record.Word)

		ans, err := e.Submit(&s, all, q.Record.Word)
		require.NoError(t, err)
		assert.False(t, ans.IsCorrect)
		assert.Equal(t, q.Record.Meaning, ans.CorrectAnswer)
		return
	}
	t.Fatal("no seed produced an eng_to_kor question")
}

func TestShortAnswerScenario(t *testing.T) {
	all := []models.VocabRecord{
		{Word: "book", Meaning: "책", UploadDate: "2024-01-01"},
		{Word: "pen", Meaning: "펜", UploadDate: "2024-01-01"},
	}
	e := newEngine(12)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), all))
	require.Len(t, s.Pool, 2)

	for s.State() != quiz.StateComplete {
		q, err := e.Current(&s, all)
		require.NoError(t, err)
		assert.Empty(t, q.Options)
		assert.Contains(t, q.Prompt(), q.Record.Meaning)

		input := "pen"
		if q.Record.Meaning == "책" {
			input = "book"
		}
		ans, err := e.Submit(&s, all, input)
		require.NoError(t, err)
		assert.True(t, ans.IsCorrect)
		require.NoError(t, e.Advance(&s))
	}

	total, correct := s.Score()
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, correct)
	assert.False(t, s.CanRetry())
}

func TestReset(t *testing.T) {
	all := datedRecords(2, "2024-01-01")
	e := newEngine(13)
	var s quiz.Session
	require.NoError(t, e.Start(&s, config(models.QuestionShortAnswer, "2024-01-01"), all))
	_, err := e.Submit(&s, all, "x")
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, quiz.Session{}, s)
	assert.Equal(t, quiz.StateNotStarted, s.State())
}
