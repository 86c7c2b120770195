package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("no order items"), http.StatusBadRequest},
		{NotFound("order not found"), http.StatusNotFound},
		{Unauthenticated("invalid token"), http.StatusUnauthorized},
		{Forbidden("not authorized"), http.StatusForbidden},
		{Conflict("email already exists"), http.StatusConflict},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestMessage_HidesInternals(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("pq: relation missing")))
	assert.Equal(t, "order not found", Message(NotFound("order not found")))
}

func TestIs_MatchesWrappedSentinel(t *testing.T) {
	sentinel := NotFound("order not found")

	wrapped := fmt.Errorf("load order: %w", Wrap(sentinel, errors.New("sql: no rows")))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
	assert.Equal(t, "order not found", Message(wrapped))
}

func TestValidationf(t *testing.T) {
	err := Validationf("menu item with id %s not found", "item-9")
	assert.Equal(t, "menu item with id item-9 not found", err.Message)
	assert.Equal(t, KindValidation, KindOf(err))
}
