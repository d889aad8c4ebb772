package models

import "time"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionMixed          QuestionType = "mixed"
)

// Direction selects which side of a record a multiple-choice question asks for.
type Direction string

const (
	DirectionKorToEng Direction = "kor_to_eng" // meaning shown, word expected
	DirectionEngToKor Direction = "eng_to_kor" // word shown, meaning expected
)

// DateFilter is an inclusive range of upload dates. A single-date filter has
// Start == End.
type DateFilter struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SingleDate builds a filter matching exactly one day.
func SingleDate(d time.Time) DateFilter {
	d = truncateDay(d)
	return DateFilter{Start: d, End: d}
}

// DateRange builds a filter over [start, end].
func DateRange(start, end time.Time) DateFilter {
	return DateFilter{Start: truncateDay(start), End: truncateDay(end)}
}

// Label renders the filter the way users entered it.
func (f DateFilter) Label() string {
	if f.Start.Equal(f.End) {
		return FormatDate(f.Start)
	}
	return FormatDate(f.Start) + " ~ " + FormatDate(f.End)
}

// Contains reports whether day d is inside the filter.
func (f DateFilter) Contains(d time.Time) bool {
	d = truncateDay(d)
	return !d.Before(f.Start) && !d.After(f.End)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type QuizConfig struct {
	DateFilter   DateFilter   `json:"date_filter"`
	QuestionType QuestionType `json:"question_type" validate:"oneof=multiple_choice short_answer mixed"`
}

// AnswerRecord is written once per answered question and never changed.
type AnswerRecord struct {
	Word          string `json:"word"`
	Meaning       string `json:"meaning"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}
