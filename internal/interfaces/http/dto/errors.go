package dto

import "net/http"

// Error codes used by the HTTP layer itself. Domain error codes pass
// through to the client unchanged.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Codes not
// listed here fall back to 400 for domain errors, 500 otherwise.
var errorCodeHTTPStatus = map[string]int{
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"FORBIDDEN":            http.StatusForbidden,
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"LAST_ADMIN":           http.StatusConflict,
	"INSUFFICIENT_BALANCE": http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INVALID_FORMAT":       http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unknown codes map to 400: domain errors are caller mistakes unless
// listed otherwise.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
