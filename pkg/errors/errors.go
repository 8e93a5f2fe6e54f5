// Package errors defines the coded errors shared by the CLI and the API server.
//
// Library packages return plain wrapped errors. The pipeline and the command
// layer attach a [Code] where the caller can act on the failure category: the
// CLI prints [UserMessage], the API answers with [HTTPStatus] and the code as
// a JSON field.
//
// Empty documents are not errors: they produce an empty diagram.
//
//	err := errors.New(errors.ErrCodeInvalidRoot, "root %d out of range", i)
//	if errors.Is(err, errors.ErrCodeInvalidRoot) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidTheme, cause, "load theme %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable failure category.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme      Code = "INVALID_THEME"
	ErrCodeInvalidVizType    Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidParser     Code = "INVALID_PARSER"
	ErrCodeInvalidRoot       Code = "INVALID_ROOT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeInvalidTheme:      http.StatusBadRequest,
	ErrCodeInvalidVizType:    http.StatusBadRequest,
	ErrCodeInvalidParser:     http.StatusBadRequest,
	ErrCodeInvalidRoot:       http.StatusBadRequest,
	ErrCodeInvalidDimensions: http.StatusBadRequest,
	ErrCodeInvalidPath:       http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeFileNotFound:      http.StatusNotFound,
	ErrCodeUnsupported:       http.StatusNotImplemented,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// Status returns the HTTP status for c. Unknown codes are internal errors.
func (c Code) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a [Code], a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an error with code and a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "" if there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without the code prefix
// and cause, or err.Error() for any other error.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to the status the API responds with.
func HTTPStatus(err error) int {
	return GetCode(err).Status()
}
