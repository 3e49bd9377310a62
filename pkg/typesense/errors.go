package typesense

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors mirroring the status codes returned by the Typesense API.
// Match them with errors.Is.
var (
	ErrConfig              = errors.New("typesense: invalid configuration")
	ErrTimeout             = errors.New("typesense: request timed out")
	ErrConnection          = errors.New("typesense: connection error")
	ErrRequestMalformed    = errors.New("typesense: request malformed")
	ErrRequestUnauthorized = errors.New("typesense: request unauthorized")
	ErrRequestForbidden    = errors.New("typesense: request forbidden")
	ErrObjectNotFound      = errors.New("typesense: object not found")
	ErrObjectAlreadyExists = errors.New("typesense: object already exists")
	ErrObjectUnprocessable = errors.New("typesense: object unprocessable")
	ErrServer              = errors.New("typesense: server error")
	ErrServiceUnavailable  = fmt.Errorf("typesense: service unavailable: %w", ErrServer)
)

// APIError is returned for every response outside the 2xx range. It unwraps
// to the sentinel matching its status code, so callers can write
// errors.Is(err, typesense.ErrObjectNotFound).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("typesense: api error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 400:
		return ErrRequestMalformed
	case e.StatusCode == 401:
		return ErrRequestUnauthorized
	case e.StatusCode == 403:
		return ErrRequestForbidden
	case e.StatusCode == 404:
		return ErrObjectNotFound
	case e.StatusCode == 409:
		return ErrObjectAlreadyExists
	case e.StatusCode == 422:
		return ErrObjectUnprocessable
	case e.StatusCode == 503:
		return ErrServiceUnavailable
	case e.StatusCode >= 500:
		return ErrServer
	default:
		return nil
	}
}

// apiErrorMessage pulls the "message" field out of an error response body.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return "API error"
	}
	return payload.Message
}

// retryable reports whether an attempt error is transient. Only network
// failures, timeouts and 5xx responses are retried; every other API error
// fails the call immediately.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}
