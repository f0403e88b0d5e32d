package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/pkg/platform/sentinel"
)

func TestIs(t *testing.T) {
	t.Run("matches own code", func(t *testing.T) {
		err := New(CodeNotFound, "resource not found")
		assert.True(t, Is(err, CodeNotFound))
		assert.False(t, Is(err, CodeUnauthorized))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeConflict, "email already exists"))
		assert.True(t, Is(err, CodeConflict))
	})

	t.Run("uncoded error matches nothing", func(t *testing.T) {
		assert.False(t, Is(errors.New("plain"), CodeInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(sentinel.ErrNotFound, CodeNotFound, "resource not found")
	require.True(t, errors.Is(err, sentinel.ErrNotFound))
	assert.True(t, Is(err, CodeNotFound))
	assert.Equal(t, "resource not found", MessageOf(err))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeBadRequest, CodeOf(New(CodeBadRequest, "bad")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeInvalidInput: http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeUpstream:     http.StatusInternalServerError,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}
