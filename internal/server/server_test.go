package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgserver "github.com/DjordjeVuckovic/torrent-hunter/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDep struct {
	name    string
	healthy bool
}

func (f fakeDep) Name() string                 { return f.name }
func (f fakeDep) Healthy(context.Context) bool { return f.healthy }

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthChecks(t *testing.T) {
	cfg := &Config{Port: "8080", CorsOrigins: []string{"*"}}

	healthy := New(cfg, pkgserver.NewOkHealthChecker()).SetupMiddlewares().SetupHealthChecks("/health")
	assert.Equal(t, http.StatusOK, get(healthy, "/health").Code)

	degraded := New(cfg, pkgserver.NewCompositeHealthChecker(fakeDep{"pg", true}, fakeDep{"es", false})).
		SetupHealthChecks("/health")
	rec := get(degraded, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Healthy      bool            `json:"healthy"`
		Dependencies map[string]bool `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Healthy)
	assert.Equal(t, map[string]bool{"pg": true, "es": false}, body.Dependencies)
}

func TestServer_RequestID(t *testing.T) {
	s := New(&Config{Port: "8080", CorsOrigins: []string{"*"}}, pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupHealthChecks("/health")

	rec := get(s, "/health")
	assert.Len(t, rec.Header().Get("X-Request-Id"), 36)
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	s := New(&Config{Port: "8080"}, pkgserver.NewOkHealthChecker()).SetupMetrics("/metrics", reg)

	rec := get(s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "probe_total 1")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_HTTP2", "true")
	t.Setenv("CORS_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("REQUEST_TIMEOUT", "4s")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.UseHttp2)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CorsOrigins)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, GracefulShutdownTimeout, cfg.ShutdownTimeout)

	t.Setenv("PORT", "70000")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestServer_RequestTimeout(t *testing.T) {
	cfg := &Config{Port: "8080", CorsOrigins: []string{"*"}, RequestTimeout: time.Minute}
	s := New(cfg, pkgserver.NewOkHealthChecker()).SetupMiddlewares()

	var deadline time.Time
	var ok bool
	s.Echo.GET("/probe-deadline", func(c echo.Context) error {
		deadline, ok = c.Request().Context().Deadline()
		return c.NoContent(http.StatusNoContent)
	})

	rec := get(s, "/probe-deadline")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}
