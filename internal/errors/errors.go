package errors

import (
	stderrors "errors"
	"fmt"

	"titrate/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the inner code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeInvalidState   = "INVALID_STATE"
	CodeEmptyResult    = "EMPTY_RESULT"
	CodeNotFound       = "NOT_FOUND"
	CodeDatabaseError  = "DATABASE_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

// ConfigInvalid reports a bad unit, ratio, kind or scenario value.
func ConfigInvalid(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    CodeConfigInvalid,
		Message: fmt.Sprintf(format, args...),
		Cause:   core.ErrConfiguration,
	}
}

// NotImplemented reports a titration type the calculator does not model.
func NotImplemented(message string) *AppError {
	return &AppError{
		Code:    CodeNotImplemented,
		Message: message,
		Cause:   core.ErrNotImplemented,
	}
}

// InvalidState reports a reaction state that matches no titration regime.
func InvalidState(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf(format, args...),
		Cause:   core.ErrInvalidState,
	}
}

// EmptyResult reports a sweep where every sample fell outside the pH scale.
func EmptyResult(message string) *AppError {
	return &AppError{
		Code:    CodeEmptyResult,
		Message: message,
		Cause:   core.ErrEmptyResult,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Cause:   core.ErrNotFound,
	}
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabaseError,
		Message: message,
		Cause:   cause,
	}
}

// FromDomain lifts a domain sentinel error into an AppError carrying the matching code
func FromDomain(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	code := CodeInternalError
	switch {
	case stderrors.Is(err, core.ErrConfiguration):
		code = CodeConfigInvalid
	case stderrors.Is(err, core.ErrNotImplemented):
		code = CodeNotImplemented
	case stderrors.Is(err, core.ErrInvalidState):
		code = CodeInvalidState
	case stderrors.Is(err, core.ErrEmptyResult):
		code = CodeEmptyResult
	case stderrors.Is(err, core.ErrNotFound):
		code = CodeNotFound
	}
	return &AppError{Code: code, Cause: err}
}
