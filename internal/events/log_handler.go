package events

import (
	"context"
	"encoding/json"
	"log/slog"
)

// TrackingMessage is the log message of every tracked user action.
const TrackingMessage = "USER_ACTION_TRACKING"

// LogHandler writes events to a structured logger.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing through logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "user_action_tracking")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *UserActionEvent) error {
	var params map[string]interface{}
	if len(event.Params) > 0 {
		if err := json.Unmarshal(event.Params, &params); err != nil {
			return err
		}
	}

	h.logger.InfoContext(ctx, TrackingMessage,
		"event_id", event.ID.String(),
		"event_name", event.Name,
		"params", params,
		"created_at", event.CreatedAt)
	return nil
}
