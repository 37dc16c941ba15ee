package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/platform/logger"
	"github.com/phrazzld/vocaexam/internal/redact"
	"github.com/phrazzld/vocaexam/internal/store"
	"golang.org/x/sync/singleflight"
)

// DatasetCache wraps a DatasetSource, reusing a successful load until
// Invalidate is called or, with a positive ttl, until ttl has passed.
// Concurrent loads are collapsed into one call to the source. Failed loads are
// never cached, so the next request retries the source.
type DatasetCache struct {
	source store.DatasetSource
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	cached   domain.Dataset
	loadedAt time.Time
	valid    bool
}

var _ store.DatasetSource = (*DatasetCache)(nil)

// NewDatasetCache creates a DatasetCache. A non-positive ttl keeps the first
// successful load for the life of the process.
func NewDatasetCache(source store.DatasetSource, ttl time.Duration, logger *slog.Logger) *DatasetCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetCache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With(slog.String("component", "dataset_cache"), slog.String("source", source.Name())),
	}
}

// Name implements store.DatasetSource.
func (c *DatasetCache) Name() string {
	return c.source.Name()
}

// LoadDataset implements store.DatasetSource.
func (c *DatasetCache) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	if ds, ok := c.fresh(); ok {
		return ds, nil
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	v, err, shared := c.group.Do("dataset", func() (interface{}, error) {
		if ds, ok := c.fresh(); ok {
			return ds, nil
		}
		// The load outlives one caller's cancellation; other callers may share it.
		ds, err := c.source.LoadDataset(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(ds)
		return ds, nil
	})
	if err != nil {
		log.Warn("dataset load failed", slog.String("error", redact.Error(err)))
		return nil, err
	}

	ds := v.(domain.Dataset)
	log.Debug("dataset loaded", slog.Int("row_count", len(ds)), slog.Bool("shared", shared))
	return ds, nil
}

// Invalidate drops the cached dataset.
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.valid = false
}

func (c *DatasetCache) fresh() (domain.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(c.loadedAt) >= c.ttl {
		return nil, false
	}
	return c.cached, true
}

func (c *DatasetCache) store(ds domain.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = ds
	c.loadedAt = c.now()
	c.valid = true
}
