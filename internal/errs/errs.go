// Package errs holds the sentinel errors shared by services and handlers
// and the single place that maps them onto HTTP status codes.
package errs

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrAlreadyExists           = errors.New("already exists")
	ErrNoFieldsToUpdate        = errors.New("no fields to update")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidReference        = errors.New("invalid reference")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrUnavailable             = errors.New("unavailable")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
)

// StatusCode picks the HTTP status for an error returned by a service.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrInvalidStatusTransition),
		errors.Is(err, ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrNoFieldsToUpdate), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides internal error details behind the status text.
func PublicMessage(err error) string {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
