package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnknown                = errors.New("unknown")
	ErrGeneric                = errors.New("error")
	ErrUninitialized          = errors.New("page flip is not initialized")
	ErrNullParameter          = errors.New("required parameter is missing")
	ErrInvalidParameter       = errors.New("invalid parameter")
	ErrRenderer               = errors.New("renderer backend error")
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
	ErrPixelBufferInfo        = errors.New("invalid pixel buffer description")
	ErrPixelBufferData        = errors.New("pixel buffer data is too short")
	ErrNoSecondPage           = errors.New("second page does not exist")
	ErrNullPage               = errors.New("page does not exist")
)

// Status is the plain result code returned by page flip operations.
type Status int

const (
	StatusOK                     Status = 0
	StatusError                  Status = -1
	StatusUninit                 Status = -2
	StatusNullParameter          Status = -3
	StatusInvalidParameter       Status = -4
	StatusRendererError          Status = -5
	StatusUnsupportedPixelFormat Status = -12
	StatusPixelBufferInfo        Status = -13
	StatusPixelBufferData        Status = -14
	StatusNoSecondPage           Status = -15
	StatusNullPage               Status = -16
)

func (s Status) OK() bool {
	return s == StatusOK
}

// Err returns the sentinel error matching the status, nil for StatusOK.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusError:
		return ErrGeneric
	case StatusUninit:
		return ErrUninitialized
	case StatusNullParameter:
		return ErrNullParameter
	case StatusInvalidParameter:
		return ErrInvalidParameter
	case StatusRendererError:
		return ErrRenderer
	case StatusUnsupportedPixelFormat:
		return ErrUnsupportedPixelFormat
	case StatusPixelBufferInfo:
		return ErrPixelBufferInfo
	case StatusPixelBufferData:
		return ErrPixelBufferData
	case StatusNoSecondPage:
		return ErrNoSecondPage
	case StatusNullPage:
		return ErrNullPage
	}
	return ErrUnknown
}

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return s.Err().Error()
}

// Error carries a status code plus a human readable description.
type Error struct {
	Status  Status
	Message string
}

func NewError(status Status, format string, args ...interface{}) *Error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Status.String()
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Status.Err()
}

// LastError is the per-instance diagnostic slot holding the most
// recent failure.
type LastError struct {
	status  Status
	message string
}

// Set records status with an optional description and returns status so
// callers can write `return le.Set(...)`.
func (le *LastError) Set(status Status, format string, args ...interface{}) Status {
	le.status = status
	if format == "" {
		le.message = ""
	} else {
		le.message = fmt.Sprintf(format, args...)
	}
	return status
}

func (le *LastError) Status() Status {
	return le.status
}

func (le *LastError) Message() string {
	return le.message
}

// Err returns the recorded failure as an error, nil when nothing failed.
func (le *LastError) Err() error {
	if le.status == StatusOK {
		return nil
	}
	return &Error{Status: le.status, Message: le.message}
}

func (le *LastError) Clear() {
	le.status = StatusOK
	le.message = ""
}
