package typesense

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{400, ErrRequestMalformed},
		{401, ErrRequestUnauthorized},
		{403, ErrRequestForbidden},
		{404, ErrObjectNotFound},
		{409, ErrObjectAlreadyExists},
		{422, ErrObjectUnprocessable},
		{500, ErrServer},
		{502, ErrServer},
		{503, ErrServiceUnavailable},
	}
	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status, Message: "x"}
		assert.ErrorIs(t, err, tt.sentinel, "status %d", tt.status)
	}

	// 503 is also a server error
	assert.ErrorIs(t, &APIError{StatusCode: 503}, ErrServer)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&APIError{StatusCode: 500}))
	assert.True(t, retryable(&APIError{StatusCode: 503}))
	assert.False(t, retryable(&APIError{StatusCode: 404}))
	assert.False(t, retryable(&APIError{StatusCode: 409}))
	// network-level failures carry no status and stay retryable
	assert.True(t, retryable(errors.New("connection refused")))
	assert.True(t, retryable(ErrConnection))
	assert.True(t, retryable(ErrTimeout))
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "not found", apiErrorMessage([]byte(`{"message":"not found"}`)))
	assert.Equal(t, "API error", apiErrorMessage([]byte(`not json`)))
	assert.Equal(t, "API error", apiErrorMessage(nil))
}
