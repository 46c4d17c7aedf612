package pkg

import (
	"errors"
	"fmt"
)

var (
	ErrInternalServerError  = errors.New("internal server error")
	ErrDataNotFound         = errors.New("settlement data not found")
	ErrMalformedData        = errors.New("settlement data is malformed")
	ErrPartitionUnavailable = errors.New("partition unavailable")
	ErrInvalidQuery         = errors.New("invalid query")
)

var MessageInternalServerError string = "internal server error"

// Error carries the original cause, a human readable message and one of the
// sentinel codes above.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is lets errors.Is match on the code as well as on the wrapped cause.
func (e *Error) Is(target error) bool {
	return e.code != nil && e.code == target
}

func (e *Error) Code() error {
	return e.code
}

func (e *Error) Message() string {
	return e.msg
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code error, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

// ErrorCode returns the sentinel code of err, or ErrInternalServerError when err
// was not produced by WrapErrorf.
func ErrorCode(err error) error {
	var e *Error
	if errors.As(err, &e) && e.code != nil {
		return e.code
	}
	return ErrInternalServerError
}
