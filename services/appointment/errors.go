package appointment

import "fmt"

// ValidationError rejects a request before it reaches the queue (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// NotFoundError signals an unknown user, shop, or appointment (404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Message: msg}
}

// ConflictError signals that the requested slot is held by another
// booking (409). Only synchronous operations (update) surface it; the
// asynchronous commit path resolves conflicts silently.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

// EnqueueError signals that the queue was unreachable at accept time
// (500); the caller should retry the whole request.
type EnqueueError struct {
	Err error
}

func (e *EnqueueError) Error() string {
	return fmt.Sprintf("failed to queue appointment: %v", e.Err)
}

func (e *EnqueueError) Unwrap() error {
	return e.Err
}
