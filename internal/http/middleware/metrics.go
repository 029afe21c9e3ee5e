package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/metrics"
	echo "github.com/labstack/echo/v4"
)

// Metrics records request count and latency per route. It must sit outside
// RequestLogger so errors are already rendered when the status is read.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			route := c.Path()
			if route == "" || status == http.StatusNotFound {
				route = "unmatched"
			}
			method := c.Request().Method

			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
