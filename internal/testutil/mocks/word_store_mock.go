package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocaquiz/internal/models"
)

// MockWordStore is a mock implementation of repository.WordStore
type MockWordStore struct {
	mock.Mock
}

func (m *MockWordStore) AppendRecord(ctx context.Context, word, meaning, date string) error {
	args := m.Called(ctx, word, meaning, date)
	return args.Error(0)
}

func (m *MockWordStore) FetchAllRecords(ctx context.Context) ([]models.VocabRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabRecord), args.Error(1)
}

// MockBatchWordStore additionally implements repository.BatchAppender
type MockBatchWordStore struct {
	MockWordStore
}

func (m *MockBatchWordStore) AppendRecords(ctx context.Context, records []models.VocabRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}
