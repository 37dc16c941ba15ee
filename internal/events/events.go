package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names emitted by the exam service.
const (
	ExamPreviewGenerated = "exam_preview_generated"
	ExamShuffled         = "exam_shuffled"
	ExamPDFDownloaded    = "exam_pdf_downloaded"
)

// UserActionEvent records a single user action worth tracking.
type UserActionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Name identifies the action, e.g. exam_shuffled
	Name string `json:"name"`

	// Params contains the action parameters serialized as JSON
	Params json.RawMessage `json:"params"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalParams decodes the event parameters into the provided structure.
func (e *UserActionEvent) UnmarshalParams(v interface{}) error {
	return json.Unmarshal(e.Params, v)
}

// NewUserActionEvent creates a new UserActionEvent with the specified name and parameters.
func NewUserActionEvent(name string, params interface{}) (*UserActionEvent, error) {
	paramBytes, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	return &UserActionEvent{
		ID:        uuid.New(),
		Name:      name,
		Params:    paramBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *UserActionEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *UserActionEvent) error
}
