package notify

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

var (
	ErrNilClient        = errors.New("notification client is nil")
	ErrClosed           = errors.New("notification client is closed")
	ErrAlreadyListening = errors.New("notification client is already listening")
	ErrNoUserID         = errors.New("no user id for notification topic")
	ErrSubscriptionEnd  = errors.New("subscription ended")
)

// ParseError is a notification payload that failed validation or decoding.
// It affects only that message.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return "malformed notification at " + e.Path + ": " + e.Reason
	}
	return "malformed notification: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrorCode classifies connection failures
type ErrorCode int

const (
	ErrCodeUnreachable ErrorCode = iota
	ErrCodeRefused
	ErrCodeTimeout
	ErrCodeUnauthorized
)

// ConnectError is a connection failure with a hint for the user
type ConnectError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

func (e *ConnectError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ClassifyConnectError maps common dial and handshake failures to a ConnectError
func ClassifyConnectError(err error) *ConnectError {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ECONNREFUSED {
		return &ConnectError{
			Code:    ErrCodeRefused,
			Message: "Connection refused",
			Hint:    "Check that the notification broker is running and ws_url is correct",
			Err:     err,
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ConnectError{
			Code:    ErrCodeTimeout,
			Message: "Connection timed out",
			Hint:    "The broker did not answer in time; it will be retried",
			Err:     err,
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "forbidden") {
		return &ConnectError{
			Code:    ErrCodeUnauthorized,
			Message: "Broker rejected credentials",
			Hint:    "Refresh the token in TASKBOARD_TOKEN or the configured token file",
			Err:     err,
		}
	}

	return &ConnectError{
		Code:    ErrCodeUnreachable,
		Message: "Notification broker unreachable",
		Err:     err,
	}
}
