package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"bad request", BadRequest("x"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", Forbidden("x"), http.StatusForbidden},
		{"not found", NotFound("x"), http.StatusNotFound},
		{"conflict", Conflict("x"), http.StatusConflict},
		{"internal", New(KindInternal, "x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindConflict, "slug taken", cause)

	assert.Equal(t, "slug taken: duplicate key", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestFrom(t *testing.T) {
	original := NotFound("URL not found")
	wrapped := fmt.Errorf("deleting link: %w", original)

	extracted, ok := From(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, extracted.Kind)
	assert.Equal(t, "URL not found", extracted.Message)

	_, ok = From(errors.New("plain"))
	assert.False(t, ok)
}
