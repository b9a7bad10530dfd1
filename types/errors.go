package types

import "net/http"

const (
	ERROR_FORBIDDEN      = "forbidden"
	ERROR_RATE_LIMITED   = "rate_limit_exceeded"
	ERROR_AI_UNAVAILABLE = "ai_unavailable"
	ERROR_GENERATION     = "generation_failed"
	ERROR_INTERNAL       = "internal_error"
)

// APIError is a boundary error carrying a machine-readable code and the
// HTTP status it maps to. Internal error detail never crosses the API.
type APIError struct {
	Code    string `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *APIError {
	return &APIError{Code: ERROR_FORBIDDEN, Status: http.StatusForbidden, Message: message}
}

func NewRateLimitError(message string) *APIError {
	return &APIError{Code: ERROR_RATE_LIMITED, Status: http.StatusTooManyRequests, Message: message}
}

func NewAIUnavailableError() *APIError {
	return &APIError{
		Code:    ERROR_AI_UNAVAILABLE,
		Status:  http.StatusServiceUnavailable,
		Message: "AI feature is not configured.",
	}
}

func NewInternalError(message string) *APIError {
	return &APIError{Code: ERROR_INTERNAL, Status: http.StatusInternalServerError, Message: message}
}

func NewGenerationError(err error) *APIError {
	return &APIError{Code: ERROR_GENERATION, Status: http.StatusBadGateway, Message: err.Error()}
}
