package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestDomainErrors_MatchSentinels(t *testing.T) {
	wrapped := fmt.Errorf("add joke: %w", NewValidationError("text", "is required"))
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.NotErrorIs(t, wrapped, ErrNotFound)

	assert.ErrorIs(t, NewNotFound("jokes"), ErrNotFound)

	cause := errors.New("disk I/O error")
	storeErr := NewStoreError("insert", cause)
	assert.ErrorIs(t, storeErr, ErrStore)
	assert.ErrorIs(t, storeErr, cause)
	assert.Equal(t, "store insert: disk I/O error", storeErr.Error())
}

func TestNewStoreError_NilStaysNil(t *testing.T) {
	assert.NoError(t, NewStoreError("insert", nil))
}

func TestFromDomain(t *testing.T) {
	httpErr, ok := FromDomain(NewValidationError("text", "is required"))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "text is required", httpErr.Message)
	assert.Equal(t, []FieldError{{Field: "text", Error: "is required"}}, httpErr.Errors)

	httpErr, ok = FromDomain(fmt.Errorf("random: %w", NewNotFound("jokes")))
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)

	_, ok = FromDomain(NewStoreError("list", errors.New("boom")))
	assert.False(t, ok)
}
