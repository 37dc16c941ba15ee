// Package sheets reads the vocabulary dataset from a Google Sheets spreadsheet.
//
// The first row of the configured range is the header. The Sheets API omits
// trailing empty cells, so short rows are normal and their missing cells
// become absent fields.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/store"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const sourceName = "sheets"

// DefaultRange covers every column of the first sheet.
const DefaultRange = "A:Z"

// ValuesGetter fetches a cell range as rows of values.
type ValuesGetter interface {
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// apiGetter calls the Sheets v4 values.get endpoint.
type apiGetter struct {
	svc *gsheets.Service
}

func (g *apiGetter) GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// NewAPIGetter builds a ValuesGetter authenticated with a service account file.
func NewAPIGetter(ctx context.Context, credentialsFile string) (ValuesGetter, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &apiGetter{svc: svc}, nil
}

// Source implements store.DatasetSource over one spreadsheet range.
type Source struct {
	getter        ValuesGetter
	spreadsheetID string
	readRange     string
	logger        *slog.Logger
}

var _ store.DatasetSource = (*Source)(nil)

// New creates a Source. An empty readRange means DefaultRange.
func New(getter ValuesGetter, spreadsheetID, readRange string, logger *slog.Logger) *Source {
	if readRange == "" {
		readRange = DefaultRange
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		getter:        getter,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        logger.With("component", "sheets_source"),
	}
}

// Name implements store.DatasetSource.
func (s *Source) Name() string {
	return sourceName
}

// LoadDataset implements store.DatasetSource.
func (s *Source) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	values, err := s.getter.GetValues(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		s.logger.Error("failed to fetch spreadsheet values", "error", err, "range", s.readRange)
		return nil, store.Unavailable(sourceName, "load", err)
	}
	if len(values) == 0 {
		return nil, store.NewStoreError(sourceName, "load", "missing header row", store.ErrInvalidDataset)
	}

	header := toStrings(values[0])
	rows := make([][]string, 0, len(values)-1)
	for _, row := range values[1:] {
		rows = append(rows, toStrings(row))
	}

	ds := domain.DatasetFromTable(header, rows)
	s.logger.DebugContext(ctx, "loaded dataset", "row_count", len(ds))
	return ds, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch cell := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = cell
		default:
			out[i] = fmt.Sprint(cell)
		}
	}
	return out
}
