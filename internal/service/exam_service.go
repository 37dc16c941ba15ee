package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/domain/extract"
	"github.com/phrazzld/vocaexam/internal/domain/layout"
	"github.com/phrazzld/vocaexam/internal/domain/schedule"
	"github.com/phrazzld/vocaexam/internal/events"
	"github.com/phrazzld/vocaexam/internal/platform/logger"
	"github.com/phrazzld/vocaexam/internal/redact"
	"github.com/phrazzld/vocaexam/internal/session"
	"github.com/phrazzld/vocaexam/internal/store"
)

// DefaultMessageMaxChars caps the encouragement message when no limit is configured.
const DefaultMessageMaxChars = 200

// DocumentRenderer writes a laid-out exam document in some output format.
type DocumentRenderer interface {
	Render(w io.Writer, doc layout.Document) error
}

// GenerateRequest describes a new exam.
type GenerateRequest struct {
	// TargetDay is the study day the exam is for. Must be at least 1.
	TargetDay int
	// Mode selects day addressing; empty means marker mode.
	Mode extract.Mode
	// WordsPerDay is the block size for position mode.
	WordsPerDay int
	// KeepOrder skips the initial shuffle.
	KeepOrder bool
	// Message is an optional draft encouragement message.
	Message string
}

// ExamView is the externally visible state of an exam session.
type ExamView struct {
	ID          uuid.UUID         `json:"id"`
	TargetDay   int               `json:"target_day"`
	Mode        extract.Mode      `json:"mode"`
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

// Export is a rendered printable exam.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	WordCount   int
}

// ExamService provides exam sheet operations.
type ExamService interface {
	// Generate resolves the review days, extracts their words, shuffles them
	// unless asked not to, and opens a session.
	Generate(ctx context.Context, req GenerateRequest) (*ExamView, error)

	// Get returns the current state of a session.
	Get(ctx context.Context, id uuid.UUID) (*ExamView, error)

	// Shuffle permutes the session's words; membership and counts are unchanged.
	Shuffle(ctx context.Context, id uuid.UUID) (*ExamView, error)

	// Preview renders the session as an HTML page.
	Preview(ctx context.Context, id uuid.UUID) ([]byte, error)

	// Export renders the session as a PDF with message after the table. A nil
	// message uses the session's draft message, then the configured default.
	Export(ctx context.Context, id uuid.UUID, message *string) (*Export, error)

	// AvailableDays lists the days named by the dataset's day markers.
	AvailableDays(ctx context.Context) ([]int, error)
}

// ExamServiceConfig configures an ExamService.
type ExamServiceConfig struct {
	FallbackSpan    int
	MessageMaxChars int
	DefaultMessage  string
	ShowDayCounts   bool
}

// ExamServiceDeps holds the collaborators of an ExamService.
type ExamServiceDeps struct {
	Dataset  store.DatasetSource
	Sessions session.Store
	PDF      DocumentRenderer
	Preview  DocumentRenderer
	Events   events.EventEmitter
	Logger   *slog.Logger

	// Shuffler and Now are optional and default to the global random source
	// and time.Now.
	Shuffler domain.Shuffler
	Now      func() time.Time
}

type examServiceImpl struct {
	cfg      ExamServiceConfig
	dataset  store.DatasetSource
	sessions session.Store
	pdf      DocumentRenderer
	preview  DocumentRenderer
	events   events.EventEmitter
	rng      domain.Shuffler
	now      func() time.Time
	logger   *slog.Logger
}

// NewExamService creates a new ExamService.
// It returns an error if any of the required dependencies are nil.
func NewExamService(cfg ExamServiceConfig, deps ExamServiceDeps) (ExamService, error) {
	if deps.Dataset == nil {
		return nil, domain.NewValidationError("dataset", "cannot be nil", domain.ErrValidation)
	}
	if deps.Sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if deps.PDF == nil {
		return nil, domain.NewValidationError("pdf", "cannot be nil", domain.ErrValidation)
	}
	if deps.Preview == nil {
		return nil, domain.NewValidationError("preview", "cannot be nil", domain.ErrValidation)
	}

	if cfg.FallbackSpan <= 0 {
		cfg.FallbackSpan = extract.DefaultFallbackSpan
	}
	if cfg.MessageMaxChars <= 0 {
		cfg.MessageMaxChars = DefaultMessageMaxChars
	}
	if deps.Events == nil {
		deps.Events = events.NopEmitter{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &examServiceImpl{
		cfg:      cfg,
		dataset:  deps.Dataset,
		sessions: deps.Sessions,
		pdf:      deps.PDF,
		preview:  deps.Preview,
		events:   deps.Events,
		rng:      deps.Shuffler,
		now:      deps.Now,
		logger:   deps.Logger.With(slog.String("component", "exam_service")),
	}, nil
}

// Generate implements ExamService.Generate.
func (s *examServiceImpl) Generate(ctx context.Context, req GenerateRequest) (*ExamView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	locator, err := s.validateGenerate(req)
	if err != nil {
		log.Debug("invalid generate request", slog.String("error", err.Error()))
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = extract.ModeMarker
	}
	if req.Mode == extract.ModeMarker {
		req.WordsPerDay = 0
	}

	var warnings []string
	ds, err := s.dataset.LoadDataset(ctx)
	if err != nil {
		log.Warn("dataset unavailable, generating empty exam",
			slog.String("error", redact.Error(err)),
			slog.String("source", s.dataset.Name()))
		ds = domain.Dataset{}
		warnings = append(warnings, WarningDatasetUnavailable)
	}

	days := schedule.ResolveDays(req.TargetDay)
	exam := extract.New(locator).Extract(ds, days)
	if len(exam.Words) == 0 {
		warnings = append(warnings, WarningNoWords)
	}
	if !req.KeepOrder {
		exam.Shuffle(s.rng)
	}

	sess := session.New(req.TargetDay, req.Mode, req.WordsPerDay, exam, s.now())
	sess.Message = req.Message
	sess.Warnings = warnings
	if err := s.sessions.Create(ctx, sess); err != nil {
		log.Error("failed to store session", slog.String("error", redact.Error(err)))
		return nil, NewExamServiceError("generate", "failed to store session", err)
	}

	log.Info("exam generated",
		slog.String("session_id", sess.ID.String()),
		slog.Int("target_day", req.TargetDay),
		slog.String("mode", string(req.Mode)),
		slog.Int("word_count", len(exam.Words)),
		slog.Int("total_count", exam.TotalCount()))

	s.emit(ctx, events.ExamPreviewGenerated, map[string]int{
		"day":            req.TargetDay,
		"message_length": utf8.RuneCountInString(req.Message),
	})
	return s.view(sess), nil
}

func (s *examServiceImpl) validateGenerate(req GenerateRequest) (extract.Locator, error) {
	if req.TargetDay < 1 {
		return nil, domain.NewValidationError("target_day", "must be at least 1",
			errors.Join(domain.ErrValidation, domain.ErrInvalidTargetDay))
	}
	if err := s.validateMessage(req.Message); err != nil {
		return nil, err
	}

	switch req.Mode {
	case "", extract.ModeMarker:
		return extract.NewMarkerLocator(s.cfg.FallbackSpan), nil
	case extract.ModePosition:
		locator, err := extract.NewPositionLocator(req.WordsPerDay)
		if err != nil {
			return nil, domain.NewValidationError("words_per_day",
				fmt.Sprintf("must be one of %v", extract.WordsPerDayOptions()),
				errors.Join(domain.ErrValidation, err))
		}
		return locator, nil
	default:
		return nil, domain.NewValidationError("mode", "must be marker or position",
			errors.Join(domain.ErrValidation, domain.ErrInvalidMode))
	}
}

func (s *examServiceImpl) validateMessage(message string) error {
	if utf8.RuneCountInString(message) > s.cfg.MessageMaxChars {
		return domain.NewValidationError("message",
			"must be at most "+strconv.Itoa(s.cfg.MessageMaxChars)+" characters",
			errors.Join(domain.ErrValidation, domain.ErrMessageTooLong))
	}
	return nil
}

// Get implements ExamService.Get.
func (s *examServiceImpl) Get(ctx context.Context, id uuid.UUID) (*ExamView, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Shuffle implements ExamService.Shuffle.
func (s *examServiceImpl) Shuffle(ctx context.Context, id uuid.UUID) (*ExamView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Exam.Shuffle(s.rng)
	sess.UpdatedAt = s.now()
	if err := s.sessions.Replace(ctx, sess); err != nil {
		return nil, err
	}

	log.Debug("exam shuffled", slog.String("session_id", id.String()))
	s.emit(ctx, events.ExamShuffled, map[string]int{"day": sess.TargetDay})
	return s.view(sess), nil
}

// Preview implements ExamService.Preview.
func (s *examServiceImpl) Preview(ctx context.Context, id uuid.UUID) ([]byte, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.preview.Render(&buf, s.document(sess, sess.Message)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to render preview",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", id.String()))
		return nil, NewExamServiceError("preview", "failed to render preview", errors.Join(ErrRenderFailed, err))
	}
	return buf.Bytes(), nil
}

// Export implements ExamService.Export.
func (s *examServiceImpl) Export(ctx context.Context, id uuid.UUID, message *string) (*Export, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if message != nil {
		if err := s.validateMessage(*message); err != nil {
			return nil, err
		}
	}

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	text := sess.Message
	if message != nil {
		text = *message
	}
	if text == "" {
		text = s.cfg.DefaultMessage
	}

	var buf bytes.Buffer
	if err := s.pdf.Render(&buf, s.document(sess, text)); err != nil {
		log.Error("failed to render pdf",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", id.String()))
		return nil, NewExamServiceError("export", "failed to render pdf", errors.Join(ErrRenderFailed, err))
	}

	log.Info("exam exported",
		slog.String("session_id", id.String()),
		slog.Int("target_day", sess.TargetDay),
		slog.Int("bytes", buf.Len()))
	s.emit(ctx, events.ExamPDFDownloaded, map[string]int{
		"day":        sess.TargetDay,
		"word_count": len(sess.Exam.Words),
	})

	return &Export{
		Filename:    ExportFilename(sess.TargetDay),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
		WordCount:   len(sess.Exam.Words),
	}, nil
}

// AvailableDays implements ExamService.AvailableDays.
func (s *examServiceImpl) AvailableDays(ctx context.Context) ([]int, error) {
	ds, err := s.dataset.LoadDataset(ctx)
	if err != nil {
		return nil, NewExamServiceError("available_days", "failed to load dataset", err)
	}
	return extract.AvailableDays(ds), nil
}

// ExportFilename is the download name of the PDF for targetDay.
func ExportFilename(targetDay int) string {
	return "day" + strconv.Itoa(targetDay) + "_시험지.pdf"
}

func (s *examServiceImpl) document(sess *session.Session, message string) layout.Document {
	return layout.NewDocument(sess.Exam, message, layout.DocumentOptions{ShowDayCounts: s.cfg.ShowDayCounts})
}

func (s *examServiceImpl) view(sess *session.Session) *ExamView {
	warnings := sess.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	words := sess.Exam.Words
	if words == nil {
		words = []string{}
	}
	return &ExamView{
		ID:          sess.ID,
		TargetDay:   sess.TargetDay,
		Mode:        sess.Mode,
		WordsPerDay: sess.WordsPerDay,
		Days:        sess.Exam.Days(),
		Title:       layout.Title(sess.Exam.Days()),
		CountsLine:  layout.CountsLine(sess.Exam.DayCounts),
		DayCounts:   sess.Exam.DayCounts,
		TotalCount:  sess.Exam.TotalCount(),
		Words:       words,
		Rows:        layout.ToTwoColumn(words),
		Message:     sess.Message,
		Warnings:    warnings,
		UpdatedAt:   sess.UpdatedAt,
	}
}

// emit sends a telemetry event. Failures never reach the caller.
func (s *examServiceImpl) emit(ctx context.Context, name string, params map[string]int) {
	event, err := events.NewUserActionEvent(name, params)
	if err == nil {
		err = s.events.EmitEvent(ctx, event)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("telemetry event dropped",
			slog.String("event_name", name),
			slog.String("error", err.Error()))
	}
}
