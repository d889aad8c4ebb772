package models

import "time"

// DateLayout is the upload date format stored alongside each word.
const DateLayout = "2006-01-02"

// VocabRecord is one stored word/meaning pair. UploadDate keeps the raw
// stored text; records whose date does not parse are skipped by quizzes.
type VocabRecord struct {
	Word       string `json:"word"`
	Meaning    string `json:"meaning"`
	UploadDate string `json:"upload_date"`
}

// WordEntry is a single row of the registration form.
type WordEntry struct {
	Word    string `json:"word" validate:"required,max=200"`
	Meaning string `json:"meaning" validate:"required,max=200"`
}

// FormatDate renders t as an upload date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateCount is the number of records registered on one upload date.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// VocabOverview summarises the stored vocabulary for the quiz start screen.
type VocabOverview struct {
	Total  int         `json:"total"`
	ByDate []DateCount `json:"by_date"`
}
