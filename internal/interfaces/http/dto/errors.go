package dto

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
)

// UnknownErrorDetails is sent in details when the failure carries no upstream payload
const UnknownErrorDetails = "Unknown error"

// Error codes. Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal = "ERR_INTERNAL"
	ErrCodeNotFound = "ERR_NOT_FOUND"

	// ErrCodeUpstreamFailed is used when the storefront answered with an error status
	ErrCodeUpstreamFailed = "ERR_UPSTREAM_FAILED"
	// ErrCodeUpstreamUnavailable is used when the storefront could not be reached
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	// ErrCodeUpstreamInvalid is used when the storefront response could not be understood
	ErrCodeUpstreamInvalid = "ERR_UPSTREAM_INVALID_RESPONSE"
	// ErrCodeNotConfigured is used when no store connection is configured
	ErrCodeNotConfigured = "ERR_NOT_CONFIGURED"
)

// ErrorResponse is the failure envelope shared by every data endpoint.
// Details holds the upstream fault body verbatim, or UnknownErrorDetails.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details"`
	Code    string `json:"code,omitempty"`
}

// NewErrorResponse builds the failure envelope for err
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Error:   "Internal server error",
		Details: UnknownErrorDetails,
		Code:    ErrorCodeFor(err),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	if details, ok := fulfillment.UpstreamDetails(err); ok {
		resp.Details = json.RawMessage(details)
	}
	return resp
}

// NewNotFoundResponse builds the envelope for an unknown API path
func NewNotFoundResponse(path string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   "Not found: " + path,
		Details: UnknownErrorDetails,
		Code:    ErrCodeNotFound,
	}
}

// ErrorCodeFor classifies err against the fulfillment sentinels
func ErrorCodeFor(err error) string {
	switch {
	case errors.Is(err, fulfillment.ErrUpstreamRequestFailed):
		return ErrCodeUpstreamFailed
	case errors.Is(err, fulfillment.ErrUpstreamUnavailable):
		return ErrCodeUpstreamUnavailable
	case errors.Is(err, fulfillment.ErrUpstreamInvalidResponse):
		return ErrCodeUpstreamInvalid
	case errors.Is(err, fulfillment.ErrSourceNotConfigured):
		return ErrCodeNotConfigured
	default:
		return ErrCodeInternal
	}
}

// GetHTTPStatus returns the HTTP status for an error code. Every failure of a
// data endpoint is reported as 500; only unknown routes get 404.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
