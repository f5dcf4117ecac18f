package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType classifies why a rate fetch failed
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeNetwork
	ErrorTypeHTTPStatus
	ErrorTypeProvider
	ErrorTypeMalformedPayload
	ErrorTypeContextCancelled
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeHTTPStatus:
		return "http_status"
	case ErrorTypeProvider:
		return "provider"
	case ErrorTypeMalformedPayload:
		return "malformed_payload"
	case ErrorTypeContextCancelled:
		return "context_cancelled"
	default:
		return "unknown"
	}
}

// FetchError is returned by providers when rates could not be obtained.
// StatusCode and Body are only set for ErrorTypeHTTPStatus.
type FetchError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Body       string
	Cause      error
}

func (e *FetchError) Error() string {
	switch {
	case e.Type == ErrorTypeHTTPStatus:
		return fmt.Sprintf("%s: status %d: %s", e.Message, e.StatusCode, e.Body)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// classifyError returns the type carried by err, or ErrorTypeUnknown
func classifyError(err error) ErrorType {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Type
	}
	if errors.Is(err, context.Canceled) {
		return ErrorTypeContextCancelled
	}
	return ErrorTypeUnknown
}

func networkError(ctx context.Context, message string, cause error) *FetchError {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
		return &FetchError{Type: ErrorTypeContextCancelled, Message: "request cancelled", Cause: cause}
	}
	return &FetchError{Type: ErrorTypeNetwork, Message: message, Cause: cause}
}

func malformedPayload(format string, args ...interface{}) *FetchError {
	return &FetchError{Type: ErrorTypeMalformedPayload, Message: fmt.Sprintf(format, args...)}
}
