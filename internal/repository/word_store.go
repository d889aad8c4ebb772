package repository

import (
	"context"
	"errors"

	"github.com/vytor/vocaquiz/internal/models"
)

// ErrUnavailable marks failures to reach the word store or authenticate
// with it. Callers surface these as configuration problems and never retry.
var ErrUnavailable = errors.New("word store unavailable")

// WordStore is the tabular store vocabulary is registered into and quizzed
// from. Records are append-only.
type WordStore interface {
	AppendRecord(ctx context.Context, word, meaning, date string) error
	FetchAllRecords(ctx context.Context) ([]models.VocabRecord, error)
}

// BatchAppender is implemented by stores that can append several records in
// one round trip.
type BatchAppender interface {
	AppendRecords(ctx context.Context, records []models.VocabRecord) error
}

// AppendAll appends records through store, in one call when it supports
// batching.
func AppendAll(ctx context.Context, store WordStore, records []models.VocabRecord) error {
	if len(records) == 0 {
		return nil
	}
	if b, ok := store.(BatchAppender); ok {
		return b.AppendRecords(ctx, records)
	}
	for _, r := range records {
		if err := store.AppendRecord(ctx, r.Word, r.Meaning, r.UploadDate); err != nil {
			return err
		}
	}
	return nil
}
