package errors

import "net/http"

// StorageFailure is what clients see when the backing store fails. The
// underlying cause is logged server-side and never sent.
func StorageFailure(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}
