package client

import (
	"errors"
	"strings"
)

// ErrorKind classifies a failed remote call.
type ErrorKind string

const (
	// KindUnauthorized means the server no longer recognises the session.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindValidation means the server rejected the payload.
	KindValidation ErrorKind = "validation"
	// KindTransient covers network failures, timeouts and server errors.
	KindTransient ErrorKind = "transient"
)

// InvalidCredentialsMessage is shown when login is refused.
const InvalidCredentialsMessage = "Incorrect user ID or password. Please enter the correct user ID and password."

// ErrInvalidCredentials is wrapped by login failures with status 401 or 403.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RemoteError is returned by every Client operation that fails. Message is
// safe to show to the user.
type RemoteError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Retryable reports whether resubmitting the same request may succeed.
func (e *RemoteError) Retryable() bool {
	return e.Kind == KindTransient
}

// KindOf returns the kind of a RemoteError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsRetryable checks whether err is a retryable RemoteError.
func IsRetryable(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Retryable()
}

// IsSessionExpired is the single predicate for "the server lost this draft".
// Typed errors are classified by kind. Anything else falls back to looking for
// "401" or "session expired" in the message.
func IsSessionExpired(err error) bool {
	if err == nil {
		return false
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind == KindUnauthorized
	}
	return looksExpired(err.Error())
}

func looksExpired(msg string) bool {
	return strings.Contains(msg, "401") || mentionsSessionExpired(msg)
}

func mentionsSessionExpired(s string) bool {
	return strings.Contains(strings.ToLower(s), "session expired")
}

// MessageOf returns the user-facing message of a RemoteError in err's chain,
// or fallback.
func MessageOf(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
