package apperr

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSort     = errors.New("invalid sort key")
	ErrInvalidOrder    = errors.New("invalid sort order")
	ErrInvalidQuality  = errors.New("invalid quality filter")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPage     = errors.New("invalid pagination")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidUser     = errors.New("invalid user id")

	ErrUnknownUser = errors.New("unknown user")

	ErrBackendUnavailable = errors.New("search backend unavailable")
	ErrCancelled          = errors.New("search cancelled")
	// ErrQueryTimeout is a backend deadline set by the service itself, not by the caller
	ErrQueryTimeout = errors.New("backend query timed out")
)

// ValidationError is a rejected request. It is always detected before any backend call.
type ValidationError struct {
	Param   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NewParamError builds a ValidationError for a single request parameter.
// kind should be one of the Err* validation sentinels so errors.Is keeps working.
func NewParamError(kind error, param, value string) *ValidationError {
	return &ValidationError{
		Param:   param,
		Value:   value,
		Message: fmt.Sprintf("%s=%q", param, value),
		Err:     kind,
	}
}

// IsValidation reports whether err is a rejected-request error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrUnknownUser && e.Resource == "user"
}

func NewUnknownUser(id int64) *NotFoundError {
	return &NotFoundError{Resource: "user", ID: fmt.Sprintf("%d", id)}
}

// BackendError is a failure while executing a compiled query.
// It matches ErrCancelled for context cancellation or deadline, ErrBackendUnavailable otherwise.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrCancelled:
		return e.cancelled()
	case ErrBackendUnavailable:
		return !e.cancelled()
	}
	return false
}

func (e *BackendError) cancelled() bool {
	return errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) || errors.Is(e.Err, ErrCancelled)
}

// NewBackend classifies an execution error. ctx is consulted because some drivers
// report an aborted call with their own error type instead of the context error.
func NewBackend(ctx context.Context, backend string, err error) error {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	if ctx != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return &BackendError{Backend: backend, Err: err}
}

// NewBackendTimeout reports a query that outlived the backend's own time limit while the
// caller was still waiting. It classifies as ErrBackendUnavailable, never ErrCancelled,
// so the context error of the expired query is flattened out of the chain.
func NewBackendTimeout(backend string, limit time.Duration, err error) error {
	return &BackendError{
		Backend: backend,
		Err:     fmt.Errorf("%w after %s: %v", ErrQueryTimeout, limit, err),
	}
}
