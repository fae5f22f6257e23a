// Package httputil holds the JSON response and error envelope shared by the
// HTTP handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "signup/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// FieldError is implemented by validation errors that carry per-field
// messages. Its fields are returned under "errors".
type FieldError interface {
	error
	Fields() map[string][]string
}

type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeInvalidState:
		return http.StatusUnprocessableEntity
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the JSON error envelope. Internal errors
// never expose their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	if code == "" {
		code = dErrors.CodeInternal
	}
	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal && code != dErrors.CodeInvariantViolation {
		body.Message = dErrors.MessageOf(err, "")
		var fe FieldError
		if errors.As(err, &fe) {
			body.Errors = fe.Fields()
		}
	}
	WriteJSON(w, StatusFor(code), body)
}

// DecodeJSON reads a single JSON object from r into v. Unknown fields are
// allowed; trailing data is not.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	if dec.More() {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
