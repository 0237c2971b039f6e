package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get issues: %w", NewUpstreamHTTPError(404, "Component key 'x' not found", `{"errors":[]}`))

	assert.True(t, IsUpstreamHTTP(wrapped))
	assert.False(t, IsNoResponse(wrapped))
	assert.False(t, IsValidation(wrapped))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, `{"errors":[]}`, appErr.RawBody)
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "UPSTREAM_HTTP_ERROR: 403 - Insufficient privileges",
		NewUpstreamHTTPError(403, "Insufficient privileges", "").Error())
	assert.Equal(t, "VALIDATION_ERROR: invalid project_key: must not be empty",
		NewValidationError("project_key", "must not be empty").Error())
	assert.Equal(t, "NO_RESPONSE: no response from quality service (unexpected EOF)",
		NewNoResponseError(io.ErrUnexpectedEOF).Error())
}

func TestNoResponseUnwraps(t *testing.T) {
	err := NewNoResponseError(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.True(t, IsNoResponse(err))
}

func TestValidationCarriesField(t *testing.T) {
	err := NewValidationError("page_size", "must be between 1 and 500")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "page_size", err.Field)
	assert.False(t, IsNotFound(fmt.Errorf("plain")))
}
