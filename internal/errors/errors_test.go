package errors

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("movie %d not found", 7)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, "movie 7 not found", err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	err := Wrap(os.ErrNotExist, CodeMissingSource, "general catalog missing")

	assert.True(t, Is(err, ErrMissingSource))
	assert.True(t, Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "general catalog missing")
}

func TestError_WrappedWithFmt(t *testing.T) {
	err := fmt.Errorf("load: %w", Unavailable("metadata disabled"))

	var domainErr *Error
	assert.True(t, As(err, &domainErr))
	assert.Equal(t, CodeUnavailable, domainErr.Code)
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	detailed := ErrValidation.WithDetails(map[string]string{"n": "too large"})

	assert.NotNil(t, detailed.Details)
	assert.Nil(t, ErrValidation.Details)
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeMissingSource, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}
