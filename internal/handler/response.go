package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/llm"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response for work started in the background.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// The message is the French sentence shown in the UI, using the vertical's
// copy for empty and format failures.
func MapDomainError(err error, msgs domain.Messages) (status int, code, msg string) {
	msg = domain.UserMessage(err, msgs)

	var rateErr *llm.RateLimitError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Élément introuvable."
	case errors.Is(err, domain.ErrUnknownVertical):
		return http.StatusNotFound, "UNKNOWN_VERTICAL", "Onglet inconnu."
	case errors.Is(err, domain.ErrUnknownModel):
		return http.StatusBadRequest, "UNKNOWN_MODEL", "Modèle inconnu (gemini ou deepseek)."
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable, "NOT_CONFIGURED", msg
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", msg
	case errors.Is(err, domain.ErrEmptyResult):
		return http.StatusUnprocessableEntity, "EMPTY_RESULT", msg
	case errors.Is(err, domain.ErrFormat):
		return http.StatusBadGateway, "FORMAT_ERROR", msg
	case isUpstream(err):
		return http.StatusBadGateway, "UPSTREAM_ERROR", msg
	case errors.Is(err, domain.ErrLocalIO):
		return http.StatusBadRequest, "LOCAL_IO_ERROR", msg
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", msg
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", msg
	case errors.Is(err, domain.ErrBatchInProgress):
		return http.StatusConflict, "BATCH_IN_PROGRESS", msg
	case errors.Is(err, domain.ErrMissingTitle):
		return http.StatusBadRequest, "MISSING_TITLE", msg
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", msg
	}
}

func isUpstream(err error) bool {
	var upErr *domain.UpstreamError
	return errors.As(err, &upErr)
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, logger *zap.Logger, err error, msgs domain.Messages) {
	status, code, msg := MapDomainError(err, msgs)
	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) && rateErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
	}
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		logger.Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
