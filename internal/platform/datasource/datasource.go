// Package datasource opens the vocabulary dataset source selected by
// configuration. Both binaries share it so the server and the offline CLI
// always read the same rows.
package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/platform/csvsource"
	"github.com/phrazzld/vocaexam/internal/platform/sheets"
	"github.com/phrazzld/vocaexam/internal/platform/sqlstore"
	"github.com/phrazzld/vocaexam/internal/store"
)

// ErrNotSQL is returned by operations that need the SQL source.
var ErrNotSQL = errors.New("dataset source is not sql")

// Opened is an open dataset source.
type Opened struct {
	// Source reads the dataset.
	Source store.DatasetSource
	// Writer replaces the dataset; nil unless the source is sql.
	Writer store.DatasetWriter

	// DB and Dialect are set for the sql source.
	DB      *sql.DB
	Dialect sqlstore.Dialect
}

// Open opens the source named by cfg.Source.
func Open(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger) (*Opened, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Source {
	case config.SourceCSV:
		return &Opened{Source: csvsource.New(cfg.CSVPath, logger)}, nil

	case config.SourceSheets:
		getter, err := sheets.NewAPIGetter(ctx, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open sheets source: %w", err)
		}
		return &Opened{Source: sheets.New(getter, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, logger)}, nil

	case config.SourceSQL:
		return OpenSQL(ctx, cfg.SQL, logger)

	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

// OpenSQL opens the SQL source regardless of the configured source kind, for
// commands that write to the database.
func OpenSQL(ctx context.Context, cfg config.SQLConfig, logger *slog.Logger) (*Opened, error) {
	if cfg.Driver == "" || cfg.URL == "" {
		return nil, fmt.Errorf("%w: dataset.sql.driver and dataset.sql.url are required", ErrNotSQL)
	}
	db, dialect, err := sqlstore.Open(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open sql source: %w", err)
	}
	s := sqlstore.NewStore(db, dialect, logger)
	return &Opened{Source: s, Writer: s, DB: db, Dialect: dialect}, nil
}

// Migrate applies a goose command to the SQL source's schema.
func (o *Opened) Migrate(ctx context.Context, command string, logger *slog.Logger) error {
	if o.DB == nil {
		return ErrNotSQL
	}
	return sqlstore.Migrate(ctx, o.DB, o.Dialect, command, logger)
}

// Close releases the source's resources.
func (o *Opened) Close() error {
	if o.DB == nil {
		return nil
	}
	return o.DB.Close()
}
