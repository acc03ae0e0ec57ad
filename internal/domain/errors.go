package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "no encontrado"
	}
	return fmt.Sprintf("%s no encontrado", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError is a local form error, raised before any call to the remote API.
// Index is the 1-based position of the offending list entry (0 when the error is not per-entry).
type ValidationError struct {
	Field string
	Index int
	Rule  string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" && e.Index == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Rule != "" {
		return e.Rule
	}
	if e.Field != "" {
		return fmt.Sprintf("%s no válido", e.Field)
	}
	return "error de validación"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("conflicto en %s", e.Resource)
	default:
		return "conflicto"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "no autorizado"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

// UpstreamError is a failed call to the remote flight API. Message is the remote
// body's message field verbatim; Fallback is used when the remote sent none.
type UpstreamError struct {
	Status   int
	Message  string
	Fallback string
	Err      error
}

func (e UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	if e.Status > 0 {
		return fmt.Sprintf("error del servicio remoto (%d)", e.Status)
	}
	return "error del servicio remoto"
}

func (e UpstreamError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "error interno"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// UpstreamStatus returns the remote HTTP status carried by err, or 0.
func UpstreamStatus(err error) int {
	var target UpstreamError
	if errors.As(err, &target) {
		return target.Status
	}
	return 0
}
