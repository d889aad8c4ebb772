package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a WordStore backed by the vocab_records table.
func NewWordRepository(db *sql.DB) repository.WordStore {
	return &wordRepository{db: db}
}

var _ repository.BatchAppender = (*wordRepository)(nil)

func (r *wordRepository) AppendRecord(ctx context.Context, word, meaning, date string) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("appending record: word=%s, date=%s", word, date)

	query, args, err := sqlBuilder.Insert("vocab_records").
		Columns("word", "meaning", "upload_date").
		Values(word, meaning, date).
		ToSql()
	if err != nil {
		log.WithError(err).Error("failed to build insert")
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("failed to append record")
		return err
	}
	return nil
}

// AppendRecords inserts all records in one transaction; either every record
// is stored or none is.
func (r *wordRepository) AppendRecords(ctx context.Context, records []models.VocabRecord) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	if len(records) == 0 {
		return nil
	}
	log.Debug("appending %d records", len(records))

	insert := sqlBuilder.Insert("vocab_records").Columns("word", "meaning", "upload_date")
	for _, rec := range records {
		insert = insert.Values(rec.Word, rec.Meaning, rec.UploadDate)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		log.WithError(err).Error("failed to build batch insert")
		return err
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

func (r *wordRepository) FetchAllRecords(ctx context.Context) ([]models.VocabRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query, args, err := sqlBuilder.Select("word", "meaning", "upload_date").
		From("vocab_records").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		log.WithError(err).Error("failed to build select")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("failed to query records")
		return nil, err
	}
	defer rows.Close()

	records := []models.VocabRecord{}
	for rows.Next() {
		var rec models.VocabRecord
		if err := rows.Scan(&rec.Word, &rec.Meaning, &rec.UploadDate); err != nil {
			log.WithError(err).Error("failed to scan record row")
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("fetched %d records", len(records))
	return records, rows.Err()
}
