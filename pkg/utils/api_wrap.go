package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID, _ := c.Get("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID.(string),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID, _ := c.Get("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID.(string),
	})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP responses.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found, send /start first")
	case errors.Is(err, ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidInputForStage):
		RespondError(c, http.StatusUnprocessableEntity, "Input not valid for the current dialogue stage")
	case errors.Is(err, ErrProviderUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "Place search is temporarily unavailable")
	case errors.Is(err, ErrProviderRejected):
		RespondError(c, http.StatusBadGateway, "Place search failed")
	case errors.Is(err, ErrMissingPreconditions):
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	case errors.Is(err, ErrDatabaseError):
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
