package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/redact"
	"github.com/phrazzld/vocaexam/internal/store"
)

// Store implements store.DatasetSource and store.DatasetWriter over a SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Ensure Store implements the dataset interfaces
var (
	_ store.DatasetSource = (*Store)(nil)
	_ store.DatasetWriter = (*Store)(nil)
)

// NewStore creates a Store. The caller owns db and must run migrations first.
// If logger is nil, a default logger will be used.
func NewStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "sql_dataset_store"), slog.String("dialect", dialect.Name)),
	}
}

// Name implements store.DatasetSource.
func (s *Store) Name() string {
	return sourceName
}

const selectRowsQuery = `SELECT day_marker, headword, derivatives, writing FROM vocabulary_rows ORDER BY row_index`

// LoadDataset implements store.DatasetSource. NULL cells load as absent fields.
func (s *Store) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, selectRowsQuery)
	if err != nil {
		s.logger.Error("failed to query vocabulary rows", "error", redact.Error(err))
		return nil, MapError("load", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Error("failed to close rows", "error", cerr)
		}
	}()

	ds := domain.Dataset{}
	for rows.Next() {
		var marker, headword, derivatives, writing sql.NullString
		if err := rows.Scan(&marker, &headword, &derivatives, &writing); err != nil {
			return nil, MapError("load", err)
		}
		ds = append(ds, domain.WordRecord{
			DayMarker:   fieldFrom(marker),
			Headword:    fieldFrom(headword),
			Derivatives: fieldFrom(derivatives),
			Writing:     fieldFrom(writing),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, MapError("load", err)
	}

	s.logger.DebugContext(ctx, "loaded vocabulary rows", "row_count", len(ds))
	return ds, nil
}

// ReplaceDataset implements store.DatasetWriter. Rows keep their order in ds.
func (s *Store) ReplaceDataset(ctx context.Context, ds domain.Dataset) (int, error) {
	insert := fmt.Sprintf(
		`INSERT INTO vocabulary_rows (row_index, day_marker, headword, derivatives, writing) VALUES (%s)`,
		s.placeholders(5),
	)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return writeRows(ctx, tx, insert, ds)
	})
	if err != nil {
		s.logger.Error("failed to replace vocabulary rows", "error", redact.Error(err), "row_count", len(ds))
		return 0, MapError("replace", fmt.Errorf("%w: %w", store.ErrTransactionFailed, err))
	}

	s.logger.InfoContext(ctx, "replaced vocabulary rows", "row_count", len(ds))
	return len(ds), nil
}

// writeRows clears the table and inserts ds through q, normally a transaction.
func writeRows(ctx context.Context, q store.DBTX, insert string, ds domain.Dataset) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM vocabulary_rows`); err != nil {
		return err
	}

	stmt, err := q.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range ds {
		if _, err := stmt.ExecContext(ctx,
			i,
			nullFrom(rec.DayMarker),
			nullFrom(rec.Headword),
			nullFrom(rec.Derivatives),
			nullFrom(rec.Writing),
		); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return nil
}

func (s *Store) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.dialect.Placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}

func fieldFrom(ns sql.NullString) domain.Field {
	if !ns.Valid {
		return domain.None()
	}
	return domain.Some(ns.String)
}

func nullFrom(f domain.Field) sql.NullString {
	if f.Absent() {
		return sql.NullString{}
	}
	return sql.NullString{String: f.Raw(), Valid: true}
}
