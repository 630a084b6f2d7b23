// Package apperrors defines the error taxonomy shared by services and
// controllers. Services return (or wrap) these sentinels; controllers map
// them to HTTP statuses without inspecting message text.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation covers malformed or missing input, rejected before any
	// write.
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers duplicate check-ins, double check-outs and unique
	// key collisions; existing state is unchanged.
	ErrConflict = errors.New("conflict")

	// ErrForbidden covers wrong role, wrong branch or a closed semester.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers unknown student/teacher/record ids.
	ErrNotFound = errors.New("not found")

	// ErrSemesterClosed is a specialization of ErrForbidden for marking into
	// a stopped or deactivated semester.
	ErrSemesterClosed = errors.New("semester attendance is closed")
)

// HTTPStatus maps a service error to a response code. Unrecognized errors
// are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrSemesterClosed):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
