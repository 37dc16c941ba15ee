// Package csvsource reads the vocabulary dataset from a CSV export of the word sheet.
//
// The first record is the header row; the known columns are located by name,
// so column order in the export does not matter.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/store"
)

const sourceName = "csv"

// Source implements store.DatasetSource over a CSV file.
type Source struct {
	path   string
	logger *slog.Logger
}

var _ store.DatasetSource = (*Source)(nil)

// New creates a Source reading path on every load.
func New(path string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		path:   path,
		logger: logger.With("component", "csv_source"),
	}
}

// Name implements store.DatasetSource.
func (s *Source) Name() string {
	return sourceName
}

// LoadDataset implements store.DatasetSource.
func (s *Source) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable(sourceName, "load", err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		s.logger.Error("failed to open dataset file", "error", err)
		return nil, store.Unavailable(sourceName, "load", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Read(f)
	if err != nil {
		s.logger.Error("failed to parse dataset file", "error", err)
		return nil, err
	}

	s.logger.DebugContext(ctx, "loaded dataset", "row_count", len(ds))
	return ds, nil
}

// Read parses CSV data with a header row into a Dataset.
// Rows may have differing field counts; missing trailing cells become absent fields.
func Read(r io.Reader) (domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, store.NewStoreError(sourceName, "load", "missing header row", store.ErrInvalidDataset)
	}
	if err != nil {
		return nil, store.NewStoreError(sourceName, "load", "malformed csv", errors.Join(store.ErrInvalidDataset, err))
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, store.NewStoreError(
				sourceName, "load",
				fmt.Sprintf("malformed csv at row %d", len(rows)+2),
				errors.Join(store.ErrInvalidDataset, err),
			)
		}
		rows = append(rows, record)
	}

	return domain.DatasetFromTable(header, rows), nil
}

// Write encodes ds as CSV with the standard header row. Absent cells are written empty.
func Write(w io.Writer, ds domain.Dataset) error {
	writer := csv.NewWriter(w)
	header := []string{domain.ColumnDayMarker, domain.ColumnHeadword, domain.ColumnDerivatives, domain.ColumnWriting}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, rec := range ds {
		if err := writer.Write([]string{
			rec.DayMarker.Raw(),
			rec.Headword.Raw(),
			rec.Derivatives.Raw(),
			rec.Writing.Raw(),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
