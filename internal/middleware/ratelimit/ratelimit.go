package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Policy allows Max requests per client IP within Window.
type Policy struct {
	Max     int
	Window  time.Duration
	Message string
}

var (
	Login = Policy{
		Max:     5,
		Window:  15 * time.Minute,
		Message: "Too many login attempts, please try again later",
	}
	Enquiry = Policy{
		Max:     10,
		Window:  time.Hour,
		Message: "Too many enquiries submitted, please try again later",
	}
	API = Policy{
		Max:     100,
		Window:  time.Minute,
		Message: "Too many requests, please try again later",
	}
)

// New builds a token bucket limiter: a full bucket of Max requests that
// refills at Max per Window.
func New(p Policy) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(p.Max) / p.Window.Seconds()),
		Burst:     p.Max,
		ExpiresIn: p.Window,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(p.Window.Seconds())))
			return echo.NewHTTPError(http.StatusTooManyRequests, p.Message)
		},
	})
}
