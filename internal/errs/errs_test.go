package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("pet %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("email %w", ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("%w: pending -> delivered", ErrInvalidStatusTransition), http.StatusConflict},
		{fmt.Errorf("pet is %w", ErrUnavailable), http.StatusConflict},
		{ErrNoFieldsToUpdate, http.StatusBadRequest},
		{fmt.Errorf("%w: scheduled_at must be in the future", ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: user does not exist", ErrInvalidReference), http.StatusUnprocessableEntity},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("only admins may change roles: %w", ErrForbidden), http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), fmt.Sprint(tt.err))
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "pet not found", PublicMessage(fmt.Errorf("pet %w", ErrNotFound)))
	assert.Equal(t, "Internal Server Error", PublicMessage(errors.New("socket closed")))
}
