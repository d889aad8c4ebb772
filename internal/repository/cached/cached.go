// Package cached wraps a WordStore with a read-through cache of the full
// record set. Remote stores are slow to list, and quizzes re-read the set on
// every question for distractors.
package cached

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/repository"
)

type Store struct {
	next repository.WordStore
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	records   []models.VocabRecord
	fetchedAt time.Time
	valid     bool
}

// New caches next's record set for ttl. A ttl <= 0 caches until the next
// append.
func New(next repository.WordStore, ttl time.Duration) *Store {
	return &Store{next: next, ttl: ttl, now: time.Now}
}

var _ repository.BatchAppender = (*Store)(nil)

func (s *Store) FetchAllRecords(ctx context.Context) ([]models.VocabRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("word_cache")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && (s.ttl <= 0 || s.now().Sub(s.fetchedAt) < s.ttl) {
		log.Debug("serving %d cached records", len(s.records))
		return clone(s.records), nil
	}

	records, err := s.next.FetchAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	s.records = clone(records)
	s.fetchedAt = s.now()
	s.valid = true
	log.Debug("cached %d records", len(records))
	return clone(records), nil
}

func (s *Store) AppendRecord(ctx context.Context, word, meaning, date string) error {
	defer s.Invalidate()
	return s.next.AppendRecord(ctx, word, meaning, date)
}

func (s *Store) AppendRecords(ctx context.Context, records []models.VocabRecord) error {
	defer s.Invalidate()
	return repository.AppendAll(ctx, s.next, records)
}

// Invalidate drops the cached record set. Appends call it even when they
// fail, since a failed remote append may still have written some rows.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.records = nil
	s.mu.Unlock()
}

func clone(records []models.VocabRecord) []models.VocabRecord {
	out := make([]models.VocabRecord, len(records))
	copy(out, records)
	return out
}
