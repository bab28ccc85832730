package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "bad_request", "nope")
	assert.Equal(t, "bad_request: nope", err.Error())

	wrapped := err.WithInternal(errors.New("boom"))
	assert.Equal(t, "bad_request: nope (boom)", wrapped.Error())
}

func TestError_WithHelpersCopy(t *testing.T) {
	custom := ErrBadRequest.WithMessage("currency is required")

	assert.Equal(t, "Invalid request", ErrBadRequest.Message, "sentinel must not be mutated")
	assert.Equal(t, "currency is required", custom.Message)
	assert.Equal(t, http.StatusBadRequest, custom.HTTPStatus)

	detailed := custom.WithDetails(map[string]any{"field": "currency"})
	assert.Nil(t, custom.Details)
	assert.Equal(t, "currency", detailed.Details["field"])
	assert.Equal(t, "currency is required", detailed.Message)
}

func TestError_IsAndAs(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("forwarding: %w", NewUpstream("workflow unavailable", cause))

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.False(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
}

func TestBody(t *testing.T) {
	status, body := Body(NewValidation(map[string]string{
		"phone": "required",
		"email": "invalid",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	errObj := body["error"].(map[string]any)
	assert.Equal(t, "validation_error", errObj["code"])
	assert.Equal(t, "Please check: email, phone", errObj["message"])
	assert.Equal(t, map[string]any{"phone": "required", "email": "invalid"}, errObj["details"])

	status, body = Body(errors.New("something private"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", body["error"].(map[string]any)["code"])
}
