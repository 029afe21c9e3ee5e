package http

import (
	"errors"
	"net/http"

	"github.com/horsepowerelectrical/contact-api/internal/apperr"
	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/horsepowerelectrical/contact-api/internal/service/auth"
	"github.com/horsepowerelectrical/contact-api/internal/service/submission"
	echo "github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgRouteNotFound = "Route not found"
	msgInternal      = "Internal server error"
	msgInvalidBody   = "Invalid request body"
	msgInvalidID     = "Invalid submission id"
	msgBodyTooLarge  = "Request body too large"
	msgInvalidCreds  = "Invalid credentials"
	msgMissingCreds  = "Email and password are required"
	msgMissingFields = "Missing required fields"
	msgInvalidEmail  = "Invalid email format"
	msgInvalidStatus = "Invalid status. Must be new, read, or processed"
	msgSaveFailed    = "Failed to save contact submission"
	msgListFailed    = "Failed to fetch submissions"
	msgStatsFailed   = "Failed to fetch statistics"
	msgUpdateFailed  = "Failed to update status"
)

func validationMessage(err error) string {
	switch {
	case errors.Is(err, submission.ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, submission.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, submission.ErrInvalidStatus):
		return msgInvalidStatus
	case errors.Is(err, auth.ErrMissingCredentials):
		return msgMissingCreds
	default:
		return apperr.Message(err)
	}
}

// respondError renders service errors. Untagged errors are returned to echo
// and end up as a generic 500 in httpErrorHandler.
func respondError(c echo.Context, err error, storeFallback string) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return c.JSON(http.StatusBadRequest, model.Fail(validationMessage(err)))
	case apperr.KindAuth:
		return c.JSON(http.StatusUnauthorized, model.Fail(msgInvalidCreds))
	case apperr.KindStore:
		msg := apperr.Message(err)
		if msg == "" {
			msg = storeFallback
		}
		return c.JSON(http.StatusInternalServerError, model.Fail(msg))
	default:
		return err
	}
}

func httpErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch {
			case he.Code == http.StatusNotFound, he.Code == http.StatusMethodNotAllowed:
				status, msg = http.StatusNotFound, msgRouteNotFound
			case he.Code == http.StatusRequestEntityTooLarge:
				status, msg = he.Code, msgBodyTooLarge
			case he.Code < http.StatusInternalServerError:
				status, msg = he.Code, http.StatusText(he.Code)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, model.Fail(msg))
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}
