// Package serviceerr defines the error kinds shared by the stores and
// the remote API client.
package serviceerr

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrNotFound = errors.New("not found")
var ErrUnavailable = errors.New("service unavailable")

// AuthError is a credential rejection from the remote service. Message
// carries the server-provided text when there is one.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// BookingError is a rejected booking mutation. Message carries the
// server-provided text when there is one.
type BookingError struct {
	Message string
}

func (e *BookingError) Error() string {
	return e.Message
}
