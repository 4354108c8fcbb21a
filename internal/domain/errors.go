package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// CompletedError indicates an operation on an already-completed session
	CompletedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *CompletedError) Error() string  { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *CompletedError) StatusCode() int  { return http.StatusConflict }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrSessionCompleted = errors.New("session already completed")
	ErrUnknownType      = errors.New("unknown document type")
)

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *CompletedError) Is(target error) bool  { return target == ErrSessionCompleted }

// StepErrors represents per-field validation failures for a single wizard
// step. It is returned as data, never raised: a non-empty map blocks forward
// navigation but leaves the session fully recoverable.
type StepErrors map[string]string

// Empty reports whether the step validated clean.
func (e StepErrors) Empty() bool { return len(e) == 0 }
