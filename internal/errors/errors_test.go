package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := Transport(fmt.Errorf("dial tcp: timeout"), "browse new releases")

	assert.True(t, Is(err, ErrTransport))
	assert.False(t, Is(err, ErrParse))
	assert.Equal(t, "browse new releases: dial tcp: timeout", err.Error())
}

func TestError_WrappedChain(t *testing.T) {
	inner := Parsef("bad release date %q", "20x4")
	outer := fmt.Errorf("filter: %w", inner)

	assert.True(t, Is(outer, ErrParse))
	assert.Equal(t, CodeParse, CodeOf(outer))
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("plain")))
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeTransport, http.StatusBadGateway},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeConfiguration, http.StatusServiceUnavailable},
		{CodeParse, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_WithDetailsKeepsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, CodeUnavailable, "snapshot").WithDetails(map[string]string{"run": "x"})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]string{"run": "x"}, err.Details)
}
