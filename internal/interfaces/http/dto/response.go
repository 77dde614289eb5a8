package dto

import (
	"net/http"
	"time"
)

// ErrorResponse is the error body returned by every failing endpoint
type ErrorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	Path        string            `json:"path"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// NewErrorResponse builds an error body for the given HTTP status
func NewErrorResponse(status int, message, path string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      path,
	}
}

// NewValidationErrorResponse builds a 400 body carrying field-level errors
func NewValidationErrorResponse(message, path string, fieldErrors map[string]string) ErrorResponse {
	resp := NewErrorResponse(http.StatusBadRequest, message, path)
	resp.FieldErrors = fieldErrors
	return resp
}

// NewListResponse wraps a page of items under the resource's own key,
// e.g. {"payments": [...], "total": 42}
func NewListResponse(key string, items any, total int64) map[string]any {
	return map[string]any{
		key:     items,
		"total": total,
	}
}
