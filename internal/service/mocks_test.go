package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/domain/layout"
	"github.com/phrazzld/vocaexam/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockDatasetSource mocks the store.DatasetSource interface
type MockDatasetSource struct {
	mock.Mock
}

func (m *MockDatasetSource) Name() string {
	return "mock"
}

func (m *MockDatasetSource) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Dataset), args.Error(1)
}

// recordingEmitter stores every emitted event
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.UserActionEvent
	err    error
}

func (r *recordingEmitter) EmitEvent(_ context.Context, event *events.UserActionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

func (r *recordingEmitter) last() *events.UserActionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// fakeRenderer records the last document and writes a fixed payload
type fakeRenderer struct {
	payload string
	err     error
	last    *layout.Document
}

func (f *fakeRenderer) Render(w io.Writer, doc layout.Document) error {
	f.last = &doc
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, f.payload)
	return err
}

var errBoom = errors.New("boom")

// sampleDataset holds two marked days:
//
//	day2: apple (banana, /cherry) apple | date dates
//	day1: fig | grape
func sampleDataset() domain.Dataset {
	return domain.Dataset{
		{
			DayMarker:   domain.Some("day2"),
			Headword:    domain.Some("apple"),
			Derivatives: domain.Some("(banana, /cherry)"),
			Writing:     domain.Some("apple"),
		},
		{DayMarker: domain.Some(""), Headword: domain.Some("date"), Writing: domain.Some("dates")},
		{DayMarker: domain.Some("day1"), Headword: domain.Some("fig")},
		{Headword: domain.Some("grape")},
	}
}
