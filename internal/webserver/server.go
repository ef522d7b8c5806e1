package webserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/talkincode/foodhub/internal/app"
	"go.uber.org/zap"
)

// AppContextKey is where handlers find the app.AppContext on echo.Context
const AppContextKey = "appctx"

const metricsPath = "/metrics"

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
}

var routes []route

func add(method, path string, h echo.HandlerFunc) {
	routes = append(routes, route{method: method, path: path, handler: h})
}

func GET(path string, h echo.HandlerFunc)    { add(http.MethodGet, path, h) }
func POST(path string, h echo.HandlerFunc)   { add(http.MethodPost, path, h) }
func PUT(path string, h echo.HandlerFunc)    { add(http.MethodPut, path, h) }
func DELETE(path string, h echo.HandlerFunc) { add(http.MethodDelete, path, h) }

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

type WebServer struct {
	root    *echo.Echo
	appCtx  app.AppContext
	metrics *prometheus.Registry
}

// NewWebServer builds the echo instance with every route registered so far.
// Each server has its own metrics registry.
func NewWebServer(appCtx app.AppContext) *WebServer {
	s := &WebServer{
		root:    echo.New(),
		appCtx:  appCtx,
		metrics: prometheus.NewRegistry(),
	}
	cfg := appCtx.Config()
	s.metrics.MustRegister(appCtx.Collectors()...)

	e := s.root
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = &requestValidator{validator: validator.New()}

	skipMetrics := func(c echo.Context) bool {
		return c.Path() == metricsPath
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:     skipMetrics,
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP))
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Web.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "foodhub",
		Registerer: s.metrics,
		Skipper:    skipMetrics,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, s.appCtx)
			return next(c)
		}
	})

	e.GET(metricsPath, echo.WrapHandler(promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{})))
	for _, r := range routes {
		e.Add(r.method, r.path, r.handler)
	}
	return s
}

// Handler exposes the echo instance, mainly for httptest
func (s *WebServer) Handler() http.Handler {
	return s.root
}

// Start blocks until the server stops
func (s *WebServer) Start() error {
	addr := s.appCtx.Config().Addr()
	zap.S().Infof("Start web server %s", addr)
	if err := s.root.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "web server")
	}
	return nil
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Routes lists registered method/path pairs
func Routes() []string {
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		out = append(out, strings.Join([]string{r.method, r.path}, " "))
	}
	return out
}
