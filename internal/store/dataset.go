package store

import (
	"context"

	"github.com/phrazzld/vocaexam/internal/domain"
)

// DatasetSource provides the fully materialized word dataset in authored order.
type DatasetSource interface {
	// Name identifies the source in logs, e.g. "csv" or "sheets".
	Name() string

	// LoadDataset reads every row of the dataset.
	// Returns ErrSourceUnavailable (wrapped) when the source cannot be read.
	LoadDataset(ctx context.Context) (domain.Dataset, error)
}

// DatasetWriter replaces the stored dataset with a new one.
type DatasetWriter interface {
	// ReplaceDataset deletes every stored row and writes ds in order.
	// Returns the number of rows written.
	ReplaceDataset(ctx context.Context, ds domain.Dataset) (int, error)
}
