package dto

import (
	"net/http"
	"strings"
)

// Error codes used by the API surface. Domain packages emit their own
// codes; anything not listed here falls back to a 400 or 500.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "ALREADY_EXISTS"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// statusByCode maps domain and API error codes to HTTP status codes.
var statusByCode = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeInternalError: http.StatusInternalServerError,

	"MEDICATION_NOT_FOUND":  http.StatusNotFound,
	"ENTRY_NOT_FOUND":       http.StatusNotFound,
	"MOVEMENT_NOT_FOUND":    http.StatusNotFound,
	"INSTALLMENT_NOT_FOUND": http.StatusNotFound,
	"CATEGORY_NOT_FOUND":    http.StatusNotFound,

	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unknown INVALID_* codes map to 400; everything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
