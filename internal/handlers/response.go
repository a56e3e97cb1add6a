package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps the error taxonomy onto HTTP statuses.
// Conflicts return 400, not 409.
func RespondServiceError(c *gin.Context, err error) {
	switch apierr.KindOf(err) {
	case apierr.KindNotFound:
		RespondError(c, http.StatusNotFound, "not_found", err)
	case apierr.KindConflict:
		RespondError(c, http.StatusBadRequest, "conflict", err)
	case apierr.KindInvalid:
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
