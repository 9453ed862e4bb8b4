package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPut, "/orders/o1/status", nil)
	req.Header.Set(ActorIDHeader, "v1")
	req.Header.Set(ActorRoleHeader, "vendor")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, float64(http.StatusConflict), line["status"])
	assert.Equal(t, "v1", line["actor_id"])
	assert.Equal(t, "vendor", line["actor_role"])
	assert.NotContains(t, line, "trace_id")
}

func TestLevelFor(t *testing.T) {
	testCases := []struct {
		status int
		want   slog.Level
	}{
		{status: http.StatusOK, want: slog.LevelInfo},
		{status: http.StatusNotFound, want: slog.LevelWarn},
		{status: http.StatusServiceUnavailable, want: slog.LevelError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, levelFor(tc.status), tc.status)
	}
}

func TestMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/orders/{order_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/orders/{order_id}", "403", "customer")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/orders/o1", nil)
	req.Header.Set(ActorRoleHeader, "customer")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRoleLabel(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "none", roleLabel(req))

	req.Header.Set(ActorRoleHeader, "superuser")
	assert.Equal(t, "none", roleLabel(req))

	req.Header.Set(ActorRoleHeader, "admin")
	assert.Equal(t, "admin", roleLabel(req))
}
