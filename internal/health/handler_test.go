// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	healthy = pingFunc(func(context.Context) error { return nil })
	broken  = pingFunc(func(context.Context) error { return errors.New("down") })
)

func readiness(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     []Check
		wantCode   int
		wantStatus string
	}{
		{
			name:       "all healthy",
			checks:     []Check{{Name: "database", Checker: healthy}, {Name: "classifier", Checker: healthy, Optional: true}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "optional failing",
			checks:     []Check{{Name: "database", Checker: healthy}, {Name: "classifier", Checker: broken, Optional: true}},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name:       "required failing",
			checks:     []Check{{Name: "database", Checker: broken}, {Name: "classifier", Checker: broken, Optional: true}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unavailable",
		},
		{
			name:       "required not configured",
			checks:     []Check{{Name: "database"}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, body := readiness(t, NewHandler(tt.checks...))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, body.Status)
			require.Len(t, body.Checks, len(tt.checks))
			for i, c := range tt.checks {
				assert.Equal(t, c.Name, body.Checks[i].Name)
			}
		})
	}
}

func TestShutdownFlipsProbes(t *testing.T) {
	t.Parallel()

	h := NewHandler(Check{Name: "database", Checker: healthy})
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	assert.Equal(t, http.StatusOK, get("/livez").Code)
	assert.Equal(t, http.StatusOK, get("/healthz").Code)

	h.SetReady(false)
	rec := get("/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")

	h.SetReady(true)
	h.SetShutdown(true)
	rec = get("/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "shutting_down")
	assert.Equal(t, http.StatusServiceUnavailable, get("/livez").Code)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusOK, summarize(nil))
	assert.Equal(t, StatusDegraded, summarize([]HealthCheck{
		{Name: "database", Healthy: true},
		{Name: "classifier", Optional: true},
	}))
	assert.Equal(t, StatusUnavailable, summarize([]HealthCheck{
		{Name: "classifier", Optional: true},
		{Name: "database"},
	}))
}

func TestUnconfiguredCheckerMessage(t *testing.T) {
	t.Parallel()

	_, body := readiness(t, NewHandler(Check{Name: "redis"}))
	require.Len(t, body.Checks, 1)
	assert.False(t, body.Checks[0].Healthy)
	assert.Equal(t, "not configured", body.Checks[0].Message)
}
