package fulfillment

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrSourceNotConfigured     = errors.New("fulfillment: order source not configured")
	ErrUpstreamUnavailable     = errors.New("fulfillment: upstream temporarily unavailable")
	ErrUpstreamRequestFailed   = errors.New("fulfillment: upstream request failed")
	ErrUpstreamInvalidResponse = errors.New("fulfillment: invalid upstream response")
)

// UpstreamError is returned when the storefront answers a page request with an
// error status. Details keeps the fault body exactly as the upstream sent it.
type UpstreamError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

// Error implements error
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Unwrap lets errors.Is match ErrUpstreamRequestFailed
func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamRequestFailed
}

// UpstreamDetails extracts the upstream fault payload from err, if any.
func UpstreamDetails(err error) (json.RawMessage, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) && len(upstreamErr.Details) > 0 {
		return upstreamErr.Details, true
	}
	return nil, false
}
