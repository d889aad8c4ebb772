package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/quiz"
	"github.com/vytor/vocaquiz/internal/repository"
	"github.com/vytor/vocaquiz/internal/validator"
)

// overviewDates is how many upload dates the overview lists.
const overviewDates = 14

// VocabService handles word registration
type VocabService interface {
	Register(ctx context.Context, entries []models.WordEntry) (int, error)
	Overview(ctx context.Context) (*models.VocabOverview, error)
	Ready(ctx context.Context) error
}

type vocabService struct {
	store repository.WordStore
	now   func() time.Time
}

// NewVocabService creates a new VocabService
func NewVocabService(store repository.WordStore) VocabService {
	return &vocabService{store: store, now: time.Now}
}

// Register stores every entry whose word and meaning are both non-blank,
// stamped with today's date, and returns how many were stored. Half-filled
// rows are skipped.
func (s *vocabService) Register(ctx context.Context, entries []models.WordEntry) (int, error) {
	log := logger.FromContext(ctx)
	today := models.FormatDate(s.now())

	var records []models.VocabRecord
	for i, e := range entries {
		e.Word = strings.TrimSpace(e.Word)
		e.Meaning = strings.TrimSpace(e.Meaning)
		if e.Word == "" || e.Meaning == "" {
			continue
		}
		if err := validator.ValidateStruct(e); err != nil {
			return 0, errors.NewValidationError(fmt.Sprintf("row %d", i+1), err.Error())
		}
		records = append(records, models.VocabRecord{Word: e.Word, Meaning: e.Meaning, UploadDate: today})
	}

	if len(records) == 0 {
		log.Debug("nothing to register")
		return 0, nil
	}

	log.Debug("registering %d words for %s", len(records), today)
	if err := repository.AppendAll(ctx, s.store, records); err != nil {
		log.Error("failed to register words: %v", err)
		return 0, storeError(err)
	}

	log.Info("registered %d words", len(records))
	return len(records), nil
}

// Overview counts stored records per upload date, newest first.
func (s *vocabService) Overview(ctx context.Context) (*models.VocabOverview, error) {
	log := logger.FromContext(ctx)

	records, err := s.store.FetchAllRecords(ctx)
	if err != nil {
		log.Warn("failed to load records for overview: %v", err)
		return nil, storeError(err)
	}

	// Only dates a quiz can filter on are listed.
	counts := map[string]int{}
	for _, r := range records {
		if d, ok := quiz.ParseDay(r.UploadDate); ok {
			counts[models.FormatDate(d)]++
		}
	}

	byDate := make([]models.DateCount, 0, len(counts))
	for d, n := range counts {
		byDate = append(byDate, models.DateCount{Date: d, Count: n})
	}
	sort.Slice(byDate, func(i, j int) bool { return byDate[i].Date > byDate[j].Date })
	if len(byDate) > overviewDates {
		byDate = byDate[:overviewDates]
	}

	return &models.VocabOverview{Total: len(records), ByDate: byDate}, nil
}

// Ready checks that the store can be read.
func (s *vocabService) Ready(ctx context.Context) error {
	if _, err := s.store.FetchAllRecords(ctx); err != nil {
		return storeError(err)
	}
	return nil
}
