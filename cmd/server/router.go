package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/vocaexam/internal/api"
	apiMiddleware "github.com/phrazzld/vocaexam/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	examHandler := api.NewExamHandler(app.examService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/days", examHandler.ListDays)

		r.Post("/exams", examHandler.CreateExam)
		r.Get("/exams/{id}", examHandler.GetExam)
		r.Post("/exams/{id}/shuffle", examHandler.ShuffleExam)
		r.Get("/exams/{id}/preview", examHandler.PreviewExam)
		r.With(app.exportLimiter.Middleware).Post("/exams/{id}/pdf", examHandler.ExportExam)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
