package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/phrazzld/vocaexam/internal/redact"
)

// ErrDropped is wrapped by EmitEvent when at least one handler could not
// take the event.
var ErrDropped = errors.New("telemetry event dropped")

// Tracker fans user-action events out to registered sinks. A failing or
// panicking sink never affects the caller or the other sinks; its deliveries
// are counted as dropped.
type Tracker struct {
	mu       sync.RWMutex
	handlers []EventHandler
	dropped  atomic.Int64
	logger   *slog.Logger
}

var _ EventEmitter = (*Tracker)(nil)

// NewTracker creates a Tracker with no sinks.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{logger: logger.With("component", "telemetry")}
}

// RegisterHandler adds a sink.
func (t *Tracker) RegisterHandler(handler EventHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, handler)
}

// EmitEvent delivers event to every sink. The returned error, if any, wraps
// ErrDropped and is informational: the event has still reached every sink
// that accepted it.
func (t *Tracker) EmitEvent(ctx context.Context, event *UserActionEvent) error {
	t.mu.RLock()
	handlers := append([]EventHandler(nil), t.handlers...)
	t.mu.RUnlock()

	var errs []error
	for i, handler := range handlers {
		if err := deliver(ctx, handler, event); err != nil {
			t.dropped.Add(1)
			t.logger.Warn("telemetry sink rejected event",
				"sink_index", i,
				"event_id", event.ID,
				"event_name", event.Name,
				"dropped_total", t.dropped.Load(),
				"error", redact.Error(err))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrDropped, errors.Join(errs...))
	}
	return nil
}

// Dropped returns how many deliveries have failed since the Tracker was created.
func (t *Tracker) Dropped() int64 {
	return t.dropped.Load()
}

func deliver(ctx context.Context, handler EventHandler, event *UserActionEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return handler.HandleEvent(ctx, event)
}

// NopEmitter drops every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *UserActionEvent) error { return nil }
