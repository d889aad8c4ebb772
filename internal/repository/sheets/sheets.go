// Package sheets stores vocabulary in a Google Sheets worksheet. The first
// row is a header naming the word, meaning and upload date columns; every
// following row is one record.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/models"
	"github.com/vytor/vocaquiz/internal/repository"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Accepted header names. The first of each is written to an empty worksheet.
var (
	wordHeaders    = []string{"영단어", "word"}
	meaningHeaders = []string{"뜻", "meaning"}
	dateHeaders    = []string{"업로드날짜", "upload_date", "date"}
)

func headerRow() []interface{} {
	return []interface{}{wordHeaders[0], meaningHeaders[0], dateHeaders[0]}
}

var spreadsheetIDRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID accepts either a full spreadsheet URL or a bare id.
func SpreadsheetID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)
	if m := spreadsheetIDRe.FindStringSubmatch(s); len(m) == 2 {
		return m[1], nil
	}
	if s == "" || strings.ContainsAny(s, "/:?#") {
		return "", fmt.Errorf("not a spreadsheet url or id: %q", urlOrID)
	}
	return s, nil
}

// valuesAPI is the slice of the Sheets values API this store uses.
type valuesAPI interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error
	Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
}

type serviceValues struct {
	svc *sheets.Service
}

func (v serviceValues) Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error {
	_, err := v.svc.Spreadsheets.Values.
		Append(spreadsheetID, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (v serviceValues) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := v.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

type Store struct {
	values        valuesAPI
	spreadsheetID string
	tab           string
}

var _ repository.BatchAppender = (*Store)(nil)

// New connects to the spreadsheet with a service-account credentials JSON.
// An empty tab means the first worksheet.
func New(ctx context.Context, spreadsheet, credentialsJSON, tab string, opts ...option.ClientOption) (*Store, error) {
	id, err := SpreadsheetID(spreadsheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrUnavailable, err)
	}

	opts = append([]option.ClientOption{
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets client: %w", repository.ErrUnavailable, err)
	}
	return newStore(serviceValues{svc: svc}, id, tab), nil
}

func newStore(values valuesAPI, spreadsheetID, tab string) *Store {
	return &Store{
		values:        values,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}
}

// a1 returns the A1 range covering the three record columns.
func (s *Store) a1() string {
	if s.tab == "" {
		return "A:C"
	}
	return "'" + strings.ReplaceAll(s.tab, "'", "''") + "'!A:C"
}

func (s *Store) AppendRecord(ctx context.Context, word, meaning, date string) error {
	return s.AppendRecords(ctx, []models.VocabRecord{{Word: word, Meaning: meaning, UploadDate: date}})
}

func (s *Store) AppendRecords(ctx context.Context, records []models.VocabRecord) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("sheets")
	log.Debug("appending %d rows to %s", len(records), s.a1())

	existing, err := s.values.Get(ctx, s.spreadsheetID, s.a1())
	if err != nil {
		log.WithError(err).Error("failed to read rows before append")
		return classify(err)
	}

	rows := make([][]interface{}, 0, len(records)+1)
	// The first row of a worksheet is always read as the header.
	if len(existing) == 0 {
		log.Info("writing header row to empty worksheet")
		rows = append(rows, headerRow())
	}
	for _, r := range records {
		rows = append(rows, []interface{}{r.Word, r.Meaning, r.UploadDate})
	}
	if err := s.values.Append(ctx, s.spreadsheetID, s.a1(), rows); err != nil {
		log.WithError(err).Error("failed to append rows")
		return classify(err)
	}
	return nil
}

func (s *Store) FetchAllRecords(ctx context.Context) ([]models.VocabRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("sheets")

	rows, err := s.values.Get(ctx, s.spreadsheetID, s.a1())
	if err != nil {
		log.WithError(err).Error("failed to read rows")
		return nil, classify(err)
	}
	records := parseRows(rows)
	log.Debug("read %d records", len(records))
	return records, nil
}

// parseRows maps rows to records by header name, falling back to column
// order when a header is missing. Short rows yield empty fields.
func parseRows(rows [][]interface{}) []models.VocabRecord {
	records := []models.VocabRecord{}
	if len(rows) == 0 {
		return records
	}

	header := rows[0]
	wordCol := column(header, wordHeaders, 0)
	meaningCol := column(header, meaningHeaders, 1)
	dateCol := column(header, dateHeaders, 2)

	for _, row := range rows[1:] {
		rec := models.VocabRecord{
			Word:       cell(row, wordCol),
			Meaning:    cell(row, meaningCol),
			UploadDate: cell(row, dateCol),
		}
		if rec.Word == "" && rec.Meaning == "" && rec.UploadDate == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func column(header []interface{}, names []string, fallback int) int {
	for i := range header {
		h := strings.TrimSpace(cell(header, i))
		for _, n := range names {
			if strings.EqualFold(h, n) {
				return i
			}
		}
	}
	return fallback
}

func cell(row []interface{}, i int) string {
	if i < 0 || i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

// classify marks credential, permission and transport failures as
// repository.ErrUnavailable.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401, 403, 404:
			return fmt.Errorf("%w: %w", repository.ErrUnavailable, err)
		}
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%w: %w", repository.ErrUnavailable, err)
	}
	return err
}
