package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "signup/pkg/domain-errors"
)

type fieldErr map[string]string

func (f fieldErr) Error() string { return "validation failed" }

func (f fieldErr) Fields() map[string][]string {
	out := map[string][]string{}
	for k, v := range f {
		out[k] = []string{v}
	}
	return out
}

type envelope struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error omits message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		body := decode(t, w)
		if body.Error != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body.Error)
		}
		if body.Message != "" {
			t.Fatalf("expected message to be omitted for internal errors")
		}
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, http.ErrHandlerTimeout)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("unauthorized includes message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Session expired"))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
		if body := decode(t, w); body.Message != "Session expired" {
			t.Fatalf("expected message to be returned, got %q", body.Message)
		}
	})

	t.Run("validation error carries field messages", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := dErrors.Wrap(fieldErr{"zip": "Invalid ZIP format"}, dErrors.CodeValidation, "Please correct the highlighted fields.")
		WriteError(w, err)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		body := decode(t, w)
		if got := body.Errors["zip"]; len(got) != 1 || got[0] != "Invalid ZIP format" {
			t.Fatalf("expected zip field error, got %v", body.Errors)
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))
	if err := DecodeJSON(r, &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Email != "a@b.co" {
		t.Fatalf("expected email to decode, got %q", v.Email)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	if err := DecodeJSON(r, &v); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
	if err := DecodeJSON(r, &v); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected trailing data to be rejected, got %v", err)
	}
}
