package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/vocaexam/internal/api/shared"
	"github.com/phrazzld/vocaexam/internal/domain/extract"
	"github.com/phrazzld/vocaexam/internal/platform/logger"
	"github.com/phrazzld/vocaexam/internal/service"
)

// ExamHandler handles exam-related HTTP requests
type ExamHandler struct {
	examService service.ExamService
	logger      *slog.Logger
}

// NewExamHandler creates a new ExamHandler
func NewExamHandler(examService service.ExamService, logger *slog.Logger) *ExamHandler {
	if examService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("examService cannot be nil for ExamHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExamHandler")
	}

	return &ExamHandler{
		examService: examService,
		logger:      logger.With(slog.String("component", "exam_handler")),
	}
}

// CreateExam handles POST /exams requests.
// It resolves the review days for the target day and opens a new exam session.
func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateExamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	mode, err := extract.ParseMode(req.Mode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("creating exam",
		slog.Int("target_day", req.TargetDay),
		slog.String("mode", string(mode)),
		slog.Int("words_per_day", req.WordsPerDay))

	view, err := h.examService.Generate(r.Context(), service.GenerateRequest{
		TargetDay:   req.TargetDay,
		Mode:        mode,
		WordsPerDay: req.WordsPerDay,
		KeepOrder:   req.KeepOrder,
		Message:     req.Message,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create exam")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, examToResponse(view))
}

// GetExam handles GET /exams/{id} requests.
func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.examService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get exam")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, examToResponse(view))
}

// ShuffleExam handles POST /exams/{id}/shuffle requests.
// The word order changes; membership and per-day counts do not.
func (h *ExamHandler) ShuffleExam(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.examService.Shuffle(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to shuffle exam")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, examToResponse(view))
}

// PreviewExam handles GET /exams/{id}/preview requests with an HTML page.
func (h *ExamHandler) PreviewExam(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.examService.Preview(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to render preview")
		return
	}

	shared.RespondWithBytes(w, r, http.StatusOK, "text/html; charset=utf-8", "", page)
}

// ExportExam handles POST /exams/{id}/pdf requests.
// The body is optional; a message in it replaces the session's draft message.
func (h *ExamHandler) ExportExam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ExportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	export, err := h.examService.Export(r.Context(), id, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export exam")
		return
	}

	log.Debug("sending exam pdf",
		slog.String("session_id", id.String()),
		slog.String("filename", export.Filename),
		slog.Int("word_count", export.WordCount))

	shared.RespondWithBytes(w, r, http.StatusOK, export.ContentType, export.Filename, export.Data)
}

// ListDays handles GET /days requests.
func (h *ExamHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.examService.AvailableDays(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list days")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newDaysResponse(days))
}
