package client

import (
	"errors"
	"net/http"
)

// Error is returned for every failed call: transport failures carry a zero
// StatusCode, non-2xx responses carry the server's message when it sent one.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
