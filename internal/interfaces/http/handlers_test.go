package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/config"
	"github.com/garyjia/docsynth/internal/container"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/worker"
)

type fakeQueue struct {
	jobs []*models.BatchJob
	err  error
}

func (q *fakeQueue) Submit(job *models.BatchJob) error {
	if q.err != nil {
		return q.err
	}
	job.Status = models.BatchStatusQueued
	q.jobs = append(q.jobs, job)
	return nil
}

type fakeJobs struct {
	byID map[string]*models.BatchJob
}

func (f *fakeJobs) GetByID(id string) (*models.BatchJob, error) {
	return f.byID[id], nil
}

func (f *fakeJobs) List(limit int) ([]*models.BatchJob, error) {
	var out []*models.BatchJob
	for _, j := range f.byID {
		out = append(out, j)
	}
	return out, nil
}

type fakeBatches struct{}

func (fakeBatches) ListByJob(jobID string) ([]*models.BatchReport, error) {
	return []*models.BatchReport{{BatchID: "b1", Class: models.ClassTaxForm, Requested: 2, Succeeded: 2}}, nil
}

type fakeTemplates struct{}

func (fakeTemplates) ListTemplates(class models.DocumentClass) ([]models.TemplateHandle, error) {
	return []models.TemplateHandle{{Name: "w2.html", Class: class}}, nil
}

func (fakeTemplates) Preview(class models.DocumentClass, seed uint64) (*container.Preview, error) {
	if seed == 13 {
		return nil, errors.New("render failed")
	}
	return &container.Preview{
		Template: models.TemplateHandle{Name: "w2.html", Class: class},
		HTML:     "<html>preview</html>",
	}, nil
}

type testEnv struct {
	router *gin.Engine
	queue  *fakeQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	queue := &fakeQueue{}
	jobs := &fakeJobs{byID: map[string]*models.BatchJob{
		"job-1": {ID: "job-1", Status: models.BatchStatusCompleted, Counts: map[string]int{"tax-form": 2}},
	}}

	handlers := NewHandlers(Deps{
		Queue:      queue,
		Jobs:       jobs,
		Batches:    fakeBatches{},
		Templates:  fakeTemplates{},
		OutputRoot: "/data/out",
		MaxCount:   100,
		Version:    "test",
	}, zap.NewNop())

	server := NewServer(config.Default().Server, handlers, zap.NewNop())
	return &testEnv{router: server.Router(), queue: queue}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestSubmitBatch(t *testing.T) {
	t.Run("expands all classes", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/v1/batches", SubmitBatchRequest{Class: "all", Count: 5, OutputDir: "run1"})

		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, env.queue.jobs, 1)
		job := env.queue.jobs[0]
		assert.Equal(t, map[string]int{"tax-form": 5, "pay-statement": 5, "miscellaneous": 5}, job.Counts)
		assert.Equal(t, filepath.Join("/data/out", "run1"), job.OutputRoot)
		assert.NotEmpty(t, job.ID)
	})

	t.Run("per-class counts with legacy names", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/v1/batches", SubmitBatchRequest{Counts: map[string]int{"w2": 3, "paystub": 1}})

		require.Equal(t, http.StatusAccepted, w.Code)
		job := env.queue.jobs[0]
		assert.Equal(t, map[string]int{"tax-form": 3, "pay-statement": 1}, job.Counts)
		assert.Equal(t, filepath.Join("/data/out", job.ID), job.OutputRoot)
	})

	tests := []struct {
		name string
		body SubmitBatchRequest
	}{
		{name: "unknown class", body: SubmitBatchRequest{Class: "passport", Count: 1}},
		{name: "negative count", body: SubmitBatchRequest{Class: "tax-form", Count: -1}},
		{name: "count over limit", body: SubmitBatchRequest{Class: "tax-form", Count: 101}},
		{name: "absolute output dir", body: SubmitBatchRequest{Class: "tax-form", Count: 1, OutputDir: "/etc"}},
		{name: "escaping output dir", body: SubmitBatchRequest{Class: "tax-form", Count: 1, OutputDir: "../x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do(http.MethodPost, "/api/v1/batches", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, decode(t, w).Success)
			assert.Empty(t, env.queue.jobs)
		})
	}

	t.Run("queue full", func(t *testing.T) {
		env := newTestEnv(t)
		env.queue.err = worker.ErrQueueFull

		w := env.do(http.MethodPost, "/api/v1/batches", SubmitBatchRequest{Class: "tax-form", Count: 1})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBatch(t *testing.T) {
	env := newTestEnv(t)

	t.Run("found", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/batches/job-1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data models.BatchJob `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, models.BatchStatusCompleted, body.Data.Status)
		require.Len(t, body.Data.Reports, 1)
		assert.Equal(t, 2, body.Data.Reports[0].Succeeded)
	})

	t.Run("missing", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/batches/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBatches(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/batches?limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestTemplatesAndPreview(t *testing.T) {
	env := newTestEnv(t)

	t.Run("list templates", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/templates/tax-form", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown class", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/preview/passport", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("html preview", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/preview/misc?seed=7", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "<html>preview</html>", w.Body.String())
	})

	t.Run("json preview", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/preview/tax-form?format=json", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "w2.html")
	})

	t.Run("invalid seed", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/preview/tax-form?seed=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("preview failure", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/preview/tax-form?seed=13", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	t.Run("assigned when missing", func(t *testing.T) {
		w := env.do(http.MethodGet, "/health", nil)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("echoes caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "req-123")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
	})
}

func TestServerAddress(t *testing.T) {
	cfg := config.Default().Server
	cfg.Host, cfg.Port = "127.0.0.1", 9090
	assert.Equal(t, "127.0.0.1:9090", NewServer(cfg, NewHandlers(Deps{}, zap.NewNop()), zap.NewNop()).Address())
}
