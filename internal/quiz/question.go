package quiz

import (
	"fmt"

	"github.com/vytor/vocaquiz/internal/models"
)

// maxDistractors is the number of wrong options offered next to the answer.
const maxDistractors = 3

// QuestionCache holds the random picks made for one index so repeated
// renders of that index show the same question.
type QuestionCache struct {
	Type      models.QuestionType
	Direction models.Direction
	Options   []string
}

// Question is the derived, render-ready view of the current index.
type Question struct {
	Index     int
	Total     int
	Record    models.VocabRecord
	Type      models.QuestionType
	Direction models.Direction
	Options   []string
}

// Prompt is the text shown to the learner.
func (q Question) Prompt() string {
	if q.Type == models.QuestionMultipleChoice && q.Direction == models.DirectionEngToKor {
		return fmt.Sprintf("What does %q mean?", q.Record.Word)
	}
	return fmt.Sprintf("Which English word means %q?", q.Record.Meaning)
}

// Answer is the value the learner's input is graded against.
func (q Question) Answer() string {
	return expectedAnswer(q.Record, q.Type, q.Direction)
}

// Number is the 1-based position shown as "Question n / total".
func (q Question) Number() int {
	return q.Index + 1
}

func (q Question) IsMultipleChoice() bool {
	return q.Type == models.QuestionMultipleChoice
}

func expectedAnswer(r models.VocabRecord, t models.QuestionType, d models.Direction) string {
	if t == models.QuestionMultipleChoice && d == models.DirectionEngToKor {
		return r.Meaning
	}
	return r.Word
}

// newQuestionCache makes the random picks for one question. Distractors come
// from all, never repeat and never equal the correct value.
func newQuestionCache(qt models.QuestionType, record models.VocabRecord, all []models.VocabRecord, rng Rand) QuestionCache {
	c := QuestionCache{Type: qt}
	if qt == models.QuestionMixed {
		c.Type = []models.QuestionType{models.QuestionMultipleChoice, models.QuestionShortAnswer}[rng.Intn(2)]
	}
	if c.Type != models.QuestionMultipleChoice {
		return c
	}

	c.Direction = []models.Direction{models.DirectionKorToEng, models.DirectionEngToKor}[rng.Intn(2)]
	correct := expectedAnswer(record, c.Type, c.Direction)
	c.Options = buildOptions(correct, distractorCandidates(correct, c.Direction, all), rng)
	return c
}

func distractorCandidates(correct string, d models.Direction, all []models.VocabRecord) []string {
	seen := map[string]bool{normalize(correct): true}
	var out []string
	for _, r := range all {
		v := r.Word
		if d == models.DirectionEngToKor {
			v = r.Meaning
		}
		key := normalize(v)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func buildOptions(correct string, candidates []string, rng Rand) []string {
	opts := append(sample(candidates, maxDistractors, rng), correct)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}
