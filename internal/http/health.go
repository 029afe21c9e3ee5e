package http

import (
	"net/http"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/model"
	echo "github.com/labstack/echo/v4"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type healthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func healthHandler(now func() time.Time) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, model.OK(healthStatus{
			Status:    "OK",
			Timestamp: now().UTC().Format(isoMillis),
		}))
	}
}
