package api

import "fmt"

// APIError is a non-200 backend response, surfaced unchanged to the caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// UploadError is a client-side validation failure of an upload. It is raised
// before any network call and is recoverable by correcting the input.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}
