package weather

import (
	"errors"
	"fmt"
)

// ErrorType categorizes lookup failures
type ErrorType string

const (
	// ErrTypeValidation indicates a query rejected before any request is made
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeConfiguration indicates the client is not usable as configured
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeAuthentication indicates the service rejected the API key
	ErrTypeAuthentication ErrorType = "authentication"

	// ErrTypeRateLimit indicates the service is throttling requests
	ErrTypeRateLimit ErrorType = "rate_limit"

	// ErrTypeNetwork indicates the request never got a response
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request exceeded its deadline
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeDecode indicates a response body that could not be parsed
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeUpstream indicates any other non-success response
	ErrTypeUpstream ErrorType = "upstream"
)

// Error describes a failed lookup
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("weather %s error: %s", e.Type, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsType reports whether err is a weather *Error of type t
func IsType(err error, t ErrorType) bool {
	var we *Error
	return errors.As(err, &we) && we.Type == t
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

func newStatusError(t ErrorType, status int, message string) *Error {
	return &Error{Type: t, Message: message, StatusCode: status}
}
