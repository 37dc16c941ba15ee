package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apiMiddleware "github.com/phrazzld/vocaexam/internal/api/middleware"
	"github.com/phrazzld/vocaexam/internal/config"
	"github.com/phrazzld/vocaexam/internal/events"
	"github.com/phrazzld/vocaexam/internal/platform/datasource"
	"github.com/phrazzld/vocaexam/internal/platform/pdf"
	"github.com/phrazzld/vocaexam/internal/platform/preview"
	"github.com/phrazzld/vocaexam/internal/service"
	"github.com/phrazzld/vocaexam/internal/session"
	"golang.org/x/sync/errgroup"
)

// limiterIdleTimeout is how long an export client's limiter is kept unused.
const limiterIdleTimeout = 30 * time.Minute

// applicationOptions tunes startup behavior.
type applicationOptions struct {
	// migrate applies pending migrations when the dataset source is sql.
	migrate bool
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	dataset *datasource.Opened

	// Session state and throttling
	sessions      *session.MemoryStore
	exportLimiter *apiMiddleware.RateLimiter

	// Service interfaces
	examService service.ExamService

	// Event system
	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts applicationOptions,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.dataset, err = datasource.Open(ctx, cfg.Dataset, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset source: %w", err)
	}
	if opts.migrate && app.dataset.DB != nil {
		if err := app.dataset.Migrate(ctx, "up", logger); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}
	logger.Info("Dataset source opened", "source", app.dataset.Source.Name())

	cache := service.NewDatasetCache(
		app.dataset.Source,
		time.Duration(cfg.Dataset.CacheSeconds)*time.Second,
		logger,
	)

	pdfRenderer, err := pdf.NewRenderer(pdf.Fonts{
		Regular:   cfg.PDF.RegularFont,
		Bold:      cfg.PDF.BoldFont,
		AllowCore: cfg.PDF.AllowCoreFont,
	})
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize pdf renderer (set pdf.regular_font to a Hangul TrueType font): %w", err)
	}
	if cfg.PDF.RegularFont == "" {
		logger.Warn("Rendering PDFs with the core font; Korean text will not render")
	}

	app.sessions = session.NewMemoryStore(time.Duration(cfg.Session.TTLMinutes)*time.Minute, logger)
	app.exportLimiter = apiMiddleware.NewRateLimiter(cfg.Export.RatePerSecond, cfg.Export.Burst)

	// Initialize event emitter with the tracking log handler
	emitter := events.NewTracker(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))
	app.eventEmitter = emitter

	app.examService, err = service.NewExamService(
		service.ExamServiceConfig{
			FallbackSpan:    cfg.Exam.FallbackSpan,
			MessageMaxChars: cfg.Exam.MessageMaxChars,
			DefaultMessage:  cfg.Exam.DefaultMessage,
			ShowDayCounts:   cfg.Exam.ShowDayCounts,
		},
		service.ExamServiceDeps{
			Dataset:  cache,
			Sessions: app.sessions,
			PDF:      pdfRenderer,
			Preview:  preview.NewRenderer(),
			Events:   app.eventEmitter,
			Logger:   logger,
		},
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create exam service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server and its background sweepers, handling
// lifecycle and cleanup. It returns when ctx is done or the server fails.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	router := app.setupRouter()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.startHTTPServer(gctx, router)
	})
	g.Go(func() error {
		app.sessions.RunSweeper(gctx, sweepInterval(app.config.Session.TTLMinutes))
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(limiterIdleTimeout)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if removed := app.exportLimiter.Forget(limiterIdleTimeout); removed > 0 {
					app.logger.Debug("idle export limiters removed", "removed", removed)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// sweepInterval is a quarter of the session TTL, at least one minute.
func sweepInterval(ttlMinutes int) time.Duration {
	interval := time.Duration(ttlMinutes) * time.Minute / 4
	if interval < time.Minute {
		return time.Minute
	}
	return interval
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.dataset != nil {
		if err := app.dataset.Close(); err != nil {
			app.logger.Error("Error closing dataset source", "error", err)
		}
		app.dataset = nil
	}

	app.logger.Info("Application shutdown completed")
}
