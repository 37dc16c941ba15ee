package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/domain/extract"
	"github.com/phrazzld/vocaexam/internal/domain/layout"
	"github.com/phrazzld/vocaexam/internal/service"
)

// CreateExamRequest defines the payload for the exam creation endpoint.
type CreateExamRequest struct {
	// TargetDay is the study day to build the review exam for
	TargetDay int `json:"target_day" validate:"required,gte=1"`

	// Mode is "marker" (default) or "position"; matched case-insensitively
	Mode string `json:"mode"`

	// WordsPerDay is required in position mode
	WordsPerDay int `json:"words_per_day" validate:"omitempty,oneof=15 20 30"`

	// KeepOrder returns the words in dataset order instead of shuffled
	KeepOrder bool `json:"keep_order"`

	// Message is an optional draft encouragement message
	Message string `json:"message" validate:"max=2000"`
}

// ExportRequest defines the optional payload for the PDF export endpoint.
type ExportRequest struct {
	// Message overrides the session's draft message when present
	Message *string `json:"message" validate:"omitempty,max=2000"`
}

// ExamResponse is the JSON representation of an exam session.
type ExamResponse struct {
	ID          uuid.UUID         `json:"id"`
	TargetDay   int               `json:"target_day"`
	Mode        string            `json:"mode"`
	WordsPerDay int               `json:"words_per_day,omitempty"`
	Days        []int             `json:"days"`
	Title       string            `json:"title"`
	CountsLine  string            `json:"counts_line"`
	DayCounts   []domain.DayCount `json:"day_counts"`
	TotalCount  int               `json:"total_count"`
	Words       []string          `json:"words"`
	Rows        []layout.Row      `json:"rows"`
	Message     string            `json:"message,omitempty"`
	Warnings    []string          `json:"warnings"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// DaysResponse lists the days present in the dataset and the supported
// position-mode block sizes.
type DaysResponse struct {
	Days               []int `json:"days"`
	WordsPerDayOptions []int `json:"words_per_day_options"`
}

// examToResponse converts a service view to its API representation.
func examToResponse(view *service.ExamView) ExamResponse {
	return ExamResponse{
		ID:          view.ID,
		TargetDay:   view.TargetDay,
		Mode:        string(view.Mode),
		WordsPerDay: view.WordsPerDay,
		Days:        view.Days,
		Title:       view.Title,
		CountsLine:  view.CountsLine,
		DayCounts:   view.DayCounts,
		TotalCount:  view.TotalCount,
		Words:       view.Words,
		Rows:        view.Rows,
		Message:     view.Message,
		Warnings:    view.Warnings,
		UpdatedAt:   view.UpdatedAt,
	}
}

// newDaysResponse builds a DaysResponse, never serializing a null list.
func newDaysResponse(days []int) DaysResponse {
	if days == nil {
		days = []int{}
	}
	return DaysResponse{Days: days, WordsPerDayOptions: extract.WordsPerDayOptions()}
}
