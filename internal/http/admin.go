package http

import (
	"net/http"
	"strconv"

	"github.com/horsepowerelectrical/contact-api/internal/model"
	echo "github.com/labstack/echo/v4"
)

type statusReq struct {
	Status string `json:"status" form:"status"`
}

// loginHandler only checks the credential pair; it issues no session.
func loginHandler(a Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.AdminCredentials
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, model.Fail(msgInvalidBody))
		}

		id, err := a.Authenticate(req.Email, req.Password)
		if err != nil {
			return respondError(c, err, msgInternal)
		}

		return c.JSON(http.StatusOK, model.Envelope{
			Success: true,
			Message: "Login successful",
			User:    &id,
		})
	}
}

func listSubmissionsHandler(svc SubmissionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		subs, err := svc.List(c.Request().Context())
		if err != nil {
			return respondError(c, err, msgListFailed)
		}
		return c.JSON(http.StatusOK, model.OK(subs))
	}
}

func statsHandler(svc SubmissionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, err := svc.Stats(c.Request().Context())
		if err != nil {
			return respondError(c, err, msgStatsFailed)
		}
		return c.JSON(http.StatusOK, model.OK(st))
	}
}

func updateStatusHandler(svc SubmissionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, model.Fail(msgInvalidID))
		}

		var req statusReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, model.Fail(msgInvalidBody))
		}

		if err := svc.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
			return respondError(c, err, msgUpdateFailed)
		}

		return c.JSON(http.StatusOK, model.Envelope{
			Success: true,
			Message: "Status updated successfully",
		})
	}
}
