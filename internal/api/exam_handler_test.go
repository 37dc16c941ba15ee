package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/vocaexam/internal/api/shared"
	"github.com/phrazzld/vocaexam/internal/domain"
	"github.com/phrazzld/vocaexam/internal/domain/extract"
	"github.com/phrazzld/vocaexam/internal/domain/layout"
	"github.com/phrazzld/vocaexam/internal/service"
	"github.com/phrazzld/vocaexam/internal/session"
	"github.com/phrazzld/vocaexam/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExamService is a mock implementation of the ExamService interface
type mockExamService struct {
	generateFn      func(ctx context.Context, req service.GenerateRequest) (*service.ExamView, error)
	getFn           func(ctx context.Context, id uuid.UUID) (*service.ExamView, error)
	shuffleFn       func(ctx context.Context, id uuid.UUID) (*service.ExamView, error)
	previewFn       func(ctx context.Context, id uuid.UUID) ([]byte, error)
	exportFn        func(ctx context.Context, id uuid.UUID, message *string) (*service.Export, error)
	availableDaysFn func(ctx context.Context) ([]int, error)
}

func (m *mockExamService) Generate(ctx context.Context, req service.GenerateRequest) (*service.ExamView, error) {
	return m.generateFn(ctx, req)
}

func (m *mockExamService) Get(ctx context.Context, id uuid.UUID) (*service.ExamView, error) {
	return m.getFn(ctx, id)
}

func (m *mockExamService) Shuffle(ctx context.Context, id uuid.UUID) (*service.ExamView, error) {
	return m.shuffleFn(ctx, id)
}

func (m *mockExamService) Preview(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return m.previewFn(ctx, id)
}

func (m *mockExamService) Export(ctx context.Context, id uuid.UUID, message *string) (*service.Export, error) {
	return m.exportFn(ctx, id, message)
}

func (m *mockExamService) AvailableDays(ctx context.Context) ([]int, error) {
	return m.availableDaysFn(ctx)
}

func newTestRouter(svc service.ExamService) http.Handler {
	h := NewExamHandler(svc, slog.Default())
	r := chi.NewRouter()
	r.Get("/days", h.ListDays)
	r.Post("/exams", h.CreateExam)
	r.Get("/exams/{id}", h.GetExam)
	r.Post("/exams/{id}/shuffle", h.ShuffleExam)
	r.Get("/exams/{id}/preview", h.PreviewExam)
	r.Post("/exams/{id}/pdf", h.ExportExam)
	return r
}

func sampleView(id uuid.UUID) *service.ExamView {
	words := []string{"apple", "banana", "fig"}
	counts := []domain.DayCount{{Day: 3, Count: 2}, {Day: 2, Count: 1}}
	return &service.ExamView{
		ID:         id,
		TargetDay:  3,
		Mode:       extract.ModeMarker,
		Days:       []int{3, 2},
		Title:      layout.Title([]int{3, 2}),
		CountsLine: layout.CountsLine(counts),
		DayCounts:  counts,
		TotalCount: 3,
		Words:      words,
		Rows:       layout.ToTwoColumn(words),
		Warnings:   []string{},
		UpdatedAt:  time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestNewExamHandler_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExamHandler(nil, slog.Default()) })
	assert.Panics(t, func() { NewExamHandler(&mockExamService{}, nil) })
}

func TestCreateExam(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedReq    *service.GenerateRequest
		expectedError  string
	}{
		{
			name:           "marker mode default",
			body:           `{"target_day":3}`,
			expectedStatus: http.StatusCreated,
			expectedReq:    &service.GenerateRequest{TargetDay: 3, Mode: extract.ModeMarker},
		},
		{
			name:           "position mode case-insensitive",
			body:           `{"target_day":3,"mode":"Position","words_per_day":20,"keep_order":true,"message":"화이팅"}`,
			expectedStatus: http.StatusCreated,
			expectedReq: &service.GenerateRequest{
				TargetDay: 3, Mode: extract.ModePosition, WordsPerDay: 20, KeepOrder: true, Message: "화이팅",
			},
		},
		{
			name:           "missing target day",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid target_day: required field",
		},
		{
			name:           "unsupported words per day",
			body:           `{"target_day":3,"mode":"position","words_per_day":25}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid words_per_day: invalid value",
		},
		{
			name:           "unknown mode",
			body:           `{"target_day":3,"mode":"random"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid mode",
		},
		{
			name:           "malformed json",
			body:           `{"target_day":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request format",
		},
		{
			name:       "service validation error",
			body:       `{"target_day":3,"message":"long"}`,
			serviceErr: domain.NewValidationError("message", "must be at most 250 characters",
				errors.Join(domain.ErrValidation, domain.ErrMessageTooLong)),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid message: must be at most 250 characters",
		},
		{
			name:           "session store failure",
			body:           `{"target_day":3}`,
			serviceErr:     service.NewExamServiceError("generate", "failed to store session", errors.New("disk")),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to create exam",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got *service.GenerateRequest
			svc := &mockExamService{
				generateFn: func(ctx context.Context, req service.GenerateRequest) (*service.ExamView, error) {
					got = &req
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return sampleView(id), nil
				},
			}

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/exams", strings.NewReader(tc.body))
			newTestRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedReq != nil {
				require.NotNil(t, got)
				assert.Equal(t, *tc.expectedReq, *got)
			}
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rr).Error)
				return
			}

			var resp ExamResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, id, resp.ID)
			assert.Equal(t, "Day3,2", resp.Title)
			assert.Equal(t, []string{"apple", "banana", "fig"}, resp.Words)
			assert.Len(t, resp.Rows, 2)
			assert.Equal(t, 3, resp.TotalCount)
		})
	}
}

func TestGetExam(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		path           string
		err            error
		expectedStatus int
	}{
		{name: "found", path: "/exams/" + id.String(), expectedStatus: http.StatusOK},
		{name: "invalid id", path: "/exams/not-a-uuid", expectedStatus: http.StatusBadRequest},
		{
			name:           "expired session",
			path:           "/exams/" + id.String(),
			err:            session.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockExamService{
				getFn: func(ctx context.Context, got uuid.UUID) (*service.ExamView, error) {
					assert.Equal(t, id, got)
					if tc.err != nil {
						return nil, tc.err
					}
					return sampleView(id), nil
				},
			}

			rr := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestShuffleExam(t *testing.T) {
	id := uuid.New()
	calls := 0
	svc := &mockExamService{
		shuffleFn: func(ctx context.Context, got uuid.UUID) (*service.ExamView, error) {
			calls++
			view := sampleView(got)
			view.Words = []string{"fig", "apple", "banana"}
			return view, nil
		},
	}

	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/exams/"+id.String()+"/shuffle", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, calls)
	var resp ExamResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, []string{"fig", "apple", "banana"}, resp.Words)
}

func TestPreviewExam(t *testing.T) {
	id := uuid.New()

	t.Run("html page", func(t *testing.T) {
		svc := &mockExamService{
			previewFn: func(ctx context.Context, got uuid.UUID) ([]byte, error) {
				return []byte("<h1>Day3,2</h1>"), nil
			},
		}
		rr := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/exams/"+id.String()+"/preview", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>Day3,2</h1>", rr.Body.String())
	})

	t.Run("render failure", func(t *testing.T) {
		svc := &mockExamService{
			previewFn: func(ctx context.Context, got uuid.UUID) ([]byte, error) {
				return nil, service.NewExamServiceError("preview", "failed to render preview", service.ErrRenderFailed)
			},
		}
		rr := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/exams/"+id.String()+"/preview", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to render exam", decodeError(t, rr).Error)
	})
}

func TestExportExam(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name            string
		body            string
		expectedMessage *string
		expectedStatus  int
	}{
		{name: "no body", body: "", expectedStatus: http.StatusOK},
		{name: "empty object", body: `{}`, expectedStatus: http.StatusOK},
		{
			name:            "message override",
			body:            `{"message":"잘했어요"}`,
			expectedMessage: strPtr("잘했어요"),
			expectedStatus:  http.StatusOK,
		},
		{
			name:            "explicit empty message",
			body:            `{"message":""}`,
			expectedMessage: strPtr(""),
			expectedStatus:  http.StatusOK,
		},
		{name: "bad json", body: `[`, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotMessage *string
			svc := &mockExamService{
				exportFn: func(ctx context.Context, got uuid.UUID, message *string) (*service.Export, error) {
					gotMessage = message
					return &service.Export{
						Filename:    service.ExportFilename(3),
						ContentType: "application/pdf",
						Data:        []byte("%PDF-1.3 test"),
						WordCount:   3,
					}, nil
				},
			}

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/exams/"+id.String()+"/pdf", strings.NewReader(tc.body))
			newTestRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tc.expectedMessage, gotMessage)
			assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
			assert.Equal(t, "%PDF-1.3 test", rr.Body.String())
		})
	}
}

func TestListDays(t *testing.T) {
	t.Run("days", func(t *testing.T) {
		svc := &mockExamService{
			availableDaysFn: func(ctx context.Context) ([]int, error) { return []int{1, 2, 5}, nil },
		}
		rr := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/days", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"days":[1,2,5],"words_per_day_options":[15,20,30]}`, rr.Body.String())
	})

	t.Run("empty dataset", func(t *testing.T) {
		svc := &mockExamService{
			availableDaysFn: func(ctx context.Context) ([]int, error) { return nil, nil },
		}
		rr := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/days", nil))

		assert.JSONEq(t, `{"days":[],"words_per_day_options":[15,20,30]}`, rr.Body.String())
	})

	t.Run("dataset unavailable", func(t *testing.T) {
		svc := &mockExamService{
			availableDaysFn: func(ctx context.Context) ([]int, error) {
				return nil, store.Unavailable("csv", "load", errors.New("open /srv/data/vocabulary.csv: no such file"))
			},
		}
		rr := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/days", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "Vocabulary dataset unavailable", resp.Error)
		assert.NotContains(t, rr.Body.String(), "/srv/data")
	})
}

func strPtr(s string) *string {
	return &s
}
