package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeIntegrity, http.StatusConflict},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("root cause")
	err := Wrap(CodeDependency, cause, "loading account")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped error to match cause")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestWithRedirectMergesDetails(t *testing.T) {
	err := New(CodeForbidden, "vendor account required").
		WithDetails(map[string]any{"field": "role"}).
		WithRedirect("/vendor/login")

	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details())
	}
	if details["redirect_to"] != "/vendor/login" {
		t.Fatalf("expected redirect_to, got %v", details["redirect_to"])
	}
	if details["field"] != "role" {
		t.Fatal("expected prior details preserved")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeNotFound, stdErrors.New("row missing"), "product not found")
	dump := Dump(err)
	if dump.Code != CodeNotFound {
		t.Fatalf("expected NOT_FOUND code, got %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected at least two chain entries, got %d", len(dump.Chain))
	}
}
