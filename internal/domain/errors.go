package domain

import "fmt"

// Error types for consistent error handling across the app.

// ErrUnauthorized indicates the server rejected the session token.
// The HTTP client has already torn the session down when this is seen.
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "Unauthorized"
}

// ErrValidation indicates a draft failed client-side validation.
// Message is the first violated rule, suitable for inline display.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrAPI indicates a non-success response from the expense API.
// Message carries the response body text when the server sent one.
type ErrAPI struct {
	Method   string
	Resource string
	Status   int
	Message  string
}

func (e *ErrAPI) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("failed to %s %s", e.Method, e.Resource)
}

// ErrBusy indicates a controller already has a call in flight.
type ErrBusy struct {
	Operation string
}

func (e *ErrBusy) Error() string {
	return fmt.Sprintf("operation already in progress: %s", e.Operation)
}

// ErrDefaultCategory indicates an attempt to rename or delete a
// server-provided default category.
type ErrDefaultCategory struct {
	Name string
}

func (e *ErrDefaultCategory) Error() string {
	return fmt.Sprintf("default category cannot be changed: %s", e.Name)
}
