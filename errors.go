package packrle

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// PackError is the error interface shared by everything this module returns.
// Every PackError descends from one of the sentinel errors below, so callers
// can always test for the general category with [errors.Is].
type PackError interface {
	error
	WithMessage(message string) PackError
	Wrap(err error) PackError
}

type basePackError string

const rootError = basePackError("")

var ErrMalformedStream = rootError.WithMessage("Malformed RLE stream")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrIOFailed = rootError.WithMessage("Input/output error")
var ErrNotFound = rootError.WithMessage("No such file or directory")
var ErrExists = rootError.WithMessage("File exists")

func (e basePackError) Error() string {
	return string(e)
}

func (e basePackError) WithMessage(message string) PackError {
	return customPackError{
		message:       message,
		originalError: e,
	}
}

func (e basePackError) Wrap(err error) PackError {
	return customPackError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customPackError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customPackError) Error() string {
	return e.message
}

func (e customPackError) WithMessage(message string) PackError {
	return customPackError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customPackError) Wrap(err error) PackError {
	return customPackError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customPackError) Unwrap() error {
	return e.originalError
}
