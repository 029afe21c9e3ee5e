package http

import (
	"net/http"

	"github.com/horsepowerelectrical/contact-api/internal/model"
	echo "github.com/labstack/echo/v4"
)

type contactReq struct {
	Name    string `json:"name"    form:"name"`
	Email   string `json:"email"   form:"email"`
	Phone   string `json:"phone"   form:"phone"`
	Service string `json:"service" form:"service"`
	Message string `json:"message" form:"message"`
}

func contactHandler(svc SubmissionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req contactReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, model.Fail(msgInvalidBody))
		}

		_, err := svc.Submit(c.Request().Context(), model.SubmissionDraft{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Service: req.Service,
			Message: req.Message,
		})
		if err != nil {
			return respondError(c, err, msgSaveFailed)
		}

		return c.JSON(http.StatusOK, model.Envelope{
			Success: true,
			Message: "Contact form submitted successfully",
		})
	}
}
