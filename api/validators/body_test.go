package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("valid payload decodes", func(t *testing.T) {
		var payload samplePayload
		err := DecodeJSONBody(postJSON(`{"email":"a@example.com","name":"Asha"}`), &payload)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.Email != "a@example.com" || payload.Name != "Asha" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	})

	t.Run("malformed json is a validation error", func(t *testing.T) {
		var payload samplePayload
		err := DecodeJSONBody(postJSON(`{"email":`), &payload)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		var payload samplePayload
		err := DecodeJSONBody(postJSON(`{"email":"a@example.com","name":"Asha","extra":1}`), &payload)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("field failures name the json tag", func(t *testing.T) {
		var payload samplePayload
		err := DecodeJSONBody(postJSON(`{"email":"not-an-email","name":""}`), &payload)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("expected field details, got %v", typed.Details())
		}
		if _, found := details["email"]; !found {
			t.Fatalf("expected email failure in details, got %v", details)
		}
		if _, found := details["name"]; !found {
			t.Fatalf("expected name failure in details, got %v", details)
		}
	})
}
