package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/foodhub/internal/app"
	"github.com/talkincode/foodhub/internal/webserver"
)

var initOnce sync.Once

// Init registers every route with the web server registry
func Init() {
	initOnce.Do(func() {
		registerMenuRoutes()
		registerContactRoutes()
		registerOrderRoutes()
		registerHealthRoutes()
	})
}

// GetAppContext returns the application context injected by the web server
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// detached is the context for store and mail calls. A client that hangs up
// does not cancel a write that has already started.
func detached(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}

// message replies with {"message": msg}
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}

// text replies with a plain-text acknowledgment
func text(c echo.Context, status int, msg string) error {
	return c.String(status, msg)
}

func registerHealthRoutes() {
	webserver.GET("/health", health)
}

func health(c echo.Context) error {
	if err := GetAppContext(c).Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
