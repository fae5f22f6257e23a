// Package testutil builds requests against the progress service router and
// decodes its JSON envelopes.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorResponse mirrors the error envelope: a code, a user-facing message and
// optional per-field messages.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// NewJSONRequest encodes body as JSON. A nil body sends no payload.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		r = bytes.NewReader(raw)
	}
	return jsonRequest(method, path, r)
}

// NewRawRequest sends body verbatim, for malformed payload cases.
func NewRawRequest(method, path, body string) *http.Request {
	return jsonRequest(method, path, strings.NewReader(body))
}

func jsonRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithSession attaches a draft session id under header.
func WithSession(req *http.Request, header, sessionID string) *http.Request {
	req.Header.Set(header, sessionID)
	return req
}

// WithBearer attaches an access token.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "decode response body: %s", rr.Body.String())
	return &out
}

// AssertStatusAndError checks the status and error code and returns the
// decoded envelope for further assertions.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) *ErrorResponse {
	t.Helper()
	assert.Equal(t, status, rr.Code, "status")
	resp := UnmarshalResponse[ErrorResponse](t, rr)
	assert.Equal(t, code, resp.Error, "error code")
	return resp
}
