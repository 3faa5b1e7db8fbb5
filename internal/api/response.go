package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socratai/socratai/internal/auth"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/quiz"
)

// retryAfterSeconds is advertised when question generation is down.
const retryAfterSeconds = "30"

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
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps an error kind to its HTTP status. Unknown
// errors are logged and reported without detail.
func RespondServiceError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, quiz.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, quiz.ErrUnauthorized):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, quiz.ErrValidation):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, quiz.ErrGenerationUnavailable):
		c.Header("Retry-After", retryAfterSeconds)
		RespondError(c, http.StatusServiceUnavailable, "generation_unavailable",
			errors.New("question generation is unavailable, try again later"))
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}
