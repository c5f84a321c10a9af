package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/media"
)

// statusFor maps a service error onto an HTTP status and a message safe to
// show to the client. what names the entity for 404s, e.g. "User".
func statusFor(err error, what string) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid email or password"
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusBadRequest, what + " already exists"
	case errors.Is(err, media.ErrUnsupportedFileType), errors.Is(err, media.ErrFileTooLarge):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, what + " not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// writeError responds with {"message": ...}. Internal errors are logged with
// the request id and never echoed.
func (h *handler) writeError(c *gin.Context, err error, what string) {
	status, msg := statusFor(err, what)
	if status == http.StatusInternalServerError {
		h.log.Error(c.Request.Context(), "request failed",
			"request_id", c.GetString(requestIDKey),
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(status, gin.H{"message": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
