package middleware

import (
	"github.com/Eursukkul/shareit/internal/metrics"
	"github.com/labstack/echo/v4"
)

// Metrics counts requests by route template rather than raw path.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}
			metrics.IncHTTP(c.Request().Method, c.Path(), status)
			return err
		}
	}
}
