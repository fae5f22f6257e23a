package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Key-value stores, the draft cache
// and the reference progress store return these (optionally wrapped) so
// callers can translate them into domain errors or user messages.
//
//   - ErrNotFound: key or record does not exist
//   - ErrExpired: session or verification code has expired
//   - ErrInvalidState: record in the wrong state for the requested operation
//   - ErrUnavailable: backing service temporarily unavailable
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
