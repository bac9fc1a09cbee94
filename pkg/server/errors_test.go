package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("node not covered")
	err := WrapErrorf(orig, ErrNotFound, "location %s is not covered", "A")

	assert.Equal(t, "location A is not covered: node not covered", err.Error())
	assert.ErrorIs(t, err, orig)
	assert.Equal(t, ErrNotFound, CodeOf(err))
	assert.Equal(t, ErrNotFound, CodeOf(fmt.Errorf("handler: %w", err)))

	var serr *Error
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "location A is not covered", serr.Message())
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf(ErrBadParamInput, "invalid algorithm")
	assert.Equal(t, "invalid algorithm", err.Error())
	assert.Equal(t, ErrBadParamInput, CodeOf(err))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("plain")))
}
