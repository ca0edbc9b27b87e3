package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	clone := Clone(ErrValidation, "studentNo required")

	assert.Equal(t, "studentNo required", clone.Message)
	assert.Equal(t, ErrValidation.Code, clone.Code)
	assert.True(t, errors.Is(clone, ErrValidation))
	assert.False(t, errors.Is(clone, ErrTransport))
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	err := FromError(fmt.Errorf("boom"))

	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.EqualError(t, err, "internal server error: boom")
	assert.Nil(t, FromError(nil))
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", Wrap(errors.New("dial"), ErrTransport.Code, ErrTransport.Status, ErrTransport.Message))

	assert.True(t, HasCode(wrapped, ErrTransport.Code))
	assert.False(t, HasCode(wrapped, ErrApplication.Code))
	assert.False(t, HasCode(errors.New("plain"), ErrTransport.Code))
}
