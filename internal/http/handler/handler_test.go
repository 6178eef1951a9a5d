package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"resumeapi/internal/http/middleware"
	"resumeapi/internal/model"
	"resumeapi/internal/repository/memory"
	"resumeapi/internal/service"
	serviceMocks "resumeapi/internal/service/mocks"
	"resumeapi/internal/storage"
	"resumeapi/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// candidateForm builds a multipart body with valid fields, overridden by fields.
// Fields overridden with "" are left out, as is the resume part when filename is empty.
func candidateForm(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	values := map[string]string{
		"full_name":       "Ada Lovelace",
		"dob":             "1990-05-01",
		"contact_email":   "ada@example.com",
		"contact_number":  "+1 (555) 123-4567",
		"contact_address": "London",
		"education":       "Mathematics",
		"graduation_year": "2012",
		"experience":      "3",
		"skills":          "Go, Rust",
	}
	for k, v := range fields {
		values[k] = v
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range values {
		if v == "" {
			continue
		}
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	t.Run("in-memory backend", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		b, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"status":"ok"}`, string(b))
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoot(t *testing.T) {
	mockSvc := new(serviceMocks.MockCandidateService)
	app := fiber.New()
	app.Get("/", Root(mockSvc))

	mockSvc.On("Count", mock.Anything).Return(2, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{
		"message": "Welcome to Mini Resume Management API",
		"total_candidates": 2,
		"docs": "/docs",
		"health": "/health"
	}`, string(b))
	mockSvc.AssertExpectations(t)
}

func TestListCandidates(t *testing.T) {
	mockSvc := new(serviceMocks.MockCandidateService)
	app := fiber.New()
	app.Get("/candidates", ListCandidates(mockSvc))

	t.Run("success with filters", func(t *testing.T) {
		expected := []model.CandidateSummary{{ID: 1, FullName: "Ada Lovelace", Skills: []string{"Go"}, ContactEmail: "ada@example.com"}}
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(f service.ListFilter) bool {
			return f.Skill == "go" && f.Name == "ada" &&
				f.Experience != nil && *f.Experience == 3 &&
				f.GraduationYear == nil
		})).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates?skill=go&experience=3&name=ada", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result, 1)
		assert.Equal(t, "Ada Lovelace", result[0]["full_name"])
		assert.NotContains(t, result[0], "dob")
		assert.NotContains(t, result[0], "resume_file_path")
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.ListFilter{}).Return([]model.CandidateSummary{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/candidates", nil))
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", string(b))
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid experience", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates?experience=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_EXPERIENCE", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid graduation year", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates?graduation_year=20x", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_GRADUATION_YEAR", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateCandidate(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		filename   string
		content    []byte
		setupMocks func(mockSvc *serviceMocks.MockCandidateService)
		wantStatus int
		wantCode   string
	}{
		{
			name:     "success",
			filename: "resume.pdf",
			content:  []byte("%PDF-1.4"),
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything,
					mock.MatchedBy(func(in service.CreateCandidateInput) bool {
						return in.FullName == "Ada Lovelace" && in.DateOfBirth == "1990-05-01" &&
							*in.Experience == 3 && *in.GraduationYear == 2012 && in.Skills == "Go, Rust"
					}),
					mock.MatchedBy(func(u service.ResumeUpload) bool {
						return u.Filename == "resume.pdf" && u.DeclaredSize == 8 && u.Reader != nil
					}),
				).Return(int64(7), nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:     "missing resume is left to the service",
			filename: "",
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything, mock.Anything,
					mock.MatchedBy(func(u service.ResumeUpload) bool { return u.Filename == "" && u.Reader == nil }),
				).Return(int64(0), service.ErrMissingFilename).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "FILE_REQUIRED",
		},
		{
			name:       "non-integer experience",
			fields:     map[string]string{"experience": "three"},
			filename:   "resume.pdf",
			content:    []byte("x"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORM",
		},
		{
			name:     "invalid email",
			fields:   map[string]string{"contact_email": "nope"},
			filename: "resume.pdf",
			content:  []byte("x"),
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), service.ErrInvalidEmail).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_EMAIL",
		},
		{
			name:     "invalid dob",
			filename: "resume.pdf",
			content:  []byte("x"),
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(int64(0), errors.Join(service.ErrInvalidDob, validation.ErrDobNotPast)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_DOB",
		},
		{
			name:     "invalid file type",
			filename: "resume.exe",
			content:  []byte("MZ"),
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), service.ErrInvalidFileType).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FILE_TYPE",
		},
		{
			name:     "file too large",
			filename: "resume.pdf",
			content:  []byte("x"),
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), service.ErrFileTooLarge).Once()
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "FILE_TOO_LARGE",
		},
		{
			name:     "storage failure",
			filename: "resume.pdf",
			content:  []byte("x"),
			setupMocks: func(mockSvc *serviceMocks.MockCandidateService) {
				mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Return(int64(0), errors.Join(service.ErrStorage, errors.New("disk full"))).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "STORAGE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCandidateService)
			app := fiber.New()
			app.Post("/candidates", CreateCandidate(mockSvc))
			if tt.setupMocks != nil {
				tt.setupMocks(mockSvc)
			}

			body, contentType := candidateForm(t, tt.fields, tt.filename, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/candidates", body)
			req.Header.Set("Content-Type", contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				res := decodeError(t, resp)
				assert.Equal(t, tt.wantCode, res.Error.Code)
				assert.Equal(t, res.Error.Message, res.Detail)
			} else {
				assert.Equal(t, "/candidates/7", resp.Header.Get(fiber.HeaderLocation))
				b, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, `{"message":"Candidate created successfully","id":7}`, string(b))
			}
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("storage failure does not leak internals", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCandidateService)
		app := fiber.New()
		app.Post("/candidates", CreateCandidate(mockSvc))
		mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(int64(0), errors.Join(service.ErrStorage, errors.New("/var/secret/path"))).Once()

		body, contentType := candidateForm(t, nil, "resume.pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/candidates", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, "failed to store resume", decodeError(t, resp).Detail)
	})

	t.Run("not multipart", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCandidateService)
		app := fiber.New()
		app.Post("/candidates", CreateCandidate(mockSvc))

		req := httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader(`{"full_name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_FORM", decodeError(t, resp).Error.Code)
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetCandidate(t *testing.T) {
	mockSvc := new(serviceMocks.MockCandidateService)
	app := fiber.New()
	app.Get("/candidates/:id", GetCandidate(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Candidate{
			ID:             1,
			FullName:       "Ada Lovelace",
			DateOfBirth:    "1990-05-01",
			Skills:         []string{"Go"},
			ResumeFilePath: "uploads/abc.pdf",
			CreatedAt:      time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		}
		mockSvc.On("Get", mock.Anything, int64(1)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Candidate
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, *expected, result)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(2)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates/2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.Equal(t, "Candidate not found", res.Detail)
		mockSvc.AssertExpectations(t)
	})

	for _, id := range []string{"0", "-4"} {
		t.Run("non-positive id "+id, func(t *testing.T) {
			want, _ := strconv.ParseInt(id, 10, 64)
			mockSvc.On("Get", mock.Anything, want).Return(nil, service.ErrNotFound).Once()

			req := httptest.NewRequest(http.MethodGet, "/candidates/"+id, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
			mockSvc.AssertExpectations(t)
		})
	}

	for _, id := range []string{"abc", "1.5"} {
		t.Run("invalid id "+id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/candidates/"+id, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
		})
	}

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(3)).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/candidates/3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteCandidate(t *testing.T) {
	mockSvc := new(serviceMocks.MockCandidateService)
	app := fiber.New()
	app.Delete("/candidates/:id", DeleteCandidate(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/candidates/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Empty(t, b)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(2)).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/candidates/2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("zero id", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(0)).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/candidates/0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/candidates/x", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(3)).Return(errors.New("delete error")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/candidates/3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func newMemoryApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := storage.NewLocal(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, Deps{
		Candidates: service.NewCandidateService(store, memory.NewCandidateMemory()),
	})
	return app
}

func TestCreateCandidate_RequiredFields(t *testing.T) {
	app := newMemoryApp(t)

	for _, field := range []string{"graduation_year", "experience", "contact_address", "education"} {
		t.Run("missing "+field, func(t *testing.T) {
			body, contentType := candidateForm(t, map[string]string{field: ""}, "resume.pdf", []byte("%PDF-1.4"))
			req := httptest.NewRequest(http.MethodPost, "/candidates", body)
			req.Header.Set("Content-Type", contentType)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			res := decodeError(t, resp)
			assert.Equal(t, "MISSING_FIELD", res.Error.Code)
			assert.Contains(t, res.Detail, field)
		})
	}

	t.Run("zero experience", func(t *testing.T) {
		body, contentType := candidateForm(t, map[string]string{"experience": "0"}, "resume.pdf", []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/candidates", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, resp.Header.Get(fiber.HeaderLocation), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.Candidate
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 0, got.Experience)
	})
}

func TestCandidateLookup_NonPositiveIDs(t *testing.T) {
	app := newMemoryApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/candidates/0"},
		{http.MethodGet, "/candidates/-1"},
		{http.MethodDelete, "/candidates/0"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			res := decodeError(t, resp)
			assert.Equal(t, "NOT_FOUND", res.Error.Code)
			assert.Equal(t, "Candidate not found", res.Detail)
		})
	}
}

func TestDocs(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", SwaggerUI())
	app.Get("/docs", Docs())
	app.Get("/openapi.yaml", OpenAPI())

	t.Run("docs redirects to swagger ui", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/swagger/index.html", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run("swagger ui index", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
		b, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(b), "Resume API")
	})

	t.Run("openapi document", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(b), "/candidates/{id}:")
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())

	mockSvc := new(serviceMocks.MockCandidateService)
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "routing_test_total", Help: "test"}))

	RegisterRoutes(app, Deps{
		Candidates:    mockSvc,
		Gatherer:      reg,
		CreateLimiter: middleware.RateLimiter(1, time.Minute),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.NotEmpty(t, res.RequestID)
		assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), res.RequestID)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(b), "routing_test_total")
	})

	t.Run("create is rate limited", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil).Once()

		for i, want := range []int{http.StatusCreated, http.StatusTooManyRequests} {
			body, contentType := candidateForm(t, nil, "resume.pdf", []byte("x"))
			req := httptest.NewRequest(http.MethodPost, "/candidates", body)
			req.Header.Set("Content-Type", contentType)
			resp, _ := app.Test(req)
			assert.Equal(t, want, resp.StatusCode, "request %d", i)
		}
		mockSvc.AssertExpectations(t)
	})
}
