package webserver

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/foodhub/config"
	"github.com/talkincode/foodhub/internal/app"
	"github.com/talkincode/foodhub/internal/repository"
)

var registerOnce sync.Once

type pingPayload struct {
	Name string `json:"name" validate:"required"`
}

func newTestServer(t *testing.T) *WebServer {
	t.Helper()
	registerOnce.Do(func() {
		GET("/test/appctx", func(c echo.Context) error {
			appCtx, ok := c.Get(AppContextKey).(app.AppContext)
			if !ok {
				return c.String(http.StatusInternalServerError, "missing")
			}
			return c.String(http.StatusOK, appCtx.Config().System.Appid)
		})
		POST("/test/validate", func(c echo.Context) error {
			var p pingPayload
			if err := c.Bind(&p); err != nil {
				return c.NoContent(http.StatusBadRequest)
			}
			if err := c.Validate(&p); err != nil {
				return c.NoContent(http.StatusBadRequest)
			}
			return c.NoContent(http.StatusOK)
		})
	})

	cfg := config.DefaultAppConfig()
	a := app.NewApplication(cfg)
	store, err := repository.OpenBoltStore(filepath.Join(t.TempDir(), "foodhub.bolt"))
	require.NoError(t, err)
	a.OverrideStore(store)
	t.Cleanup(a.Release)
	return NewWebServer(a)
}

func TestAppContextInjected(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/appctx", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FoodHub", rec.Body.String())
	assert.Contains(t, Routes(), "GET /test/appctx")
}

func TestValidator(t *testing.T) {
	s := newTestServer(t)
	for body, want := range map[string]int{
		`{"name":"x"}`: http.StatusOK,
		`{"name":""}`:  http.StatusBadRequest,
		`{}`:           http.StatusBadRequest,
	} {
		req := httptest.NewRequest(http.MethodPost, "/test/validate", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, body)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test/appctx", nil)
		req.Header.Set(echo.HeaderOrigin, "https://sudhakar6233.github.io")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPut)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://sudhakar6233.github.io", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodDelete)
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test/appctx", nil)
		req.Header.Set(echo.HeaderOrigin, "https://evil.example")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/appctx", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "foodhub_requests_total")
	assert.Contains(t, rec.Body.String(), "foodhub_store_up")
}
