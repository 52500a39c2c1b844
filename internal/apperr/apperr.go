// Package apperr defines the error kinds the domain core reports to the web
// layer. Handlers branch on these with errors.Is and decide the HTTP shape.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound means the referenced entity is absent or not visible to
	// the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller lacks authority over the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means a uniqueness or state invariant would be violated.
	ErrConflict = errors.New("conflict")

	// ErrInvalidDate means a supplied date string is not a calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// Status maps a domain error to an HTTP status code. Unknown errors map to
// 500 so handlers can pass anything through.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
