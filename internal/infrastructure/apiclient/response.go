package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the typed error raised for any non-success backend response.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 backend response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 backend response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// extractMessage pulls a human-readable message out of an error body.
// It accepts either a top-level {"message": ...} or the enveloped
// {"error": {"message": ...}} shape, and falls back to a generic string.
func extractMessage(body []byte, status int) string {
	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		return flat.Message
	}

	var enveloped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &enveloped); err == nil && enveloped.Error.Message != "" {
		return enveloped.Error.Message
	}

	return fmt.Sprintf("API error: %d", status)
}

// Decode unmarshals a successful response body into T. No schema validation
// is performed beyond JSON well-formedness; shape mismatches surface as
// zero-valued fields, matching the backend-trusting contract.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, fmt.Errorf("nil response")
	}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("decoding response body: %w", err)
	}
	return out, nil
}
