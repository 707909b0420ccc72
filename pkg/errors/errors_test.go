package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := New(CodeNotFound, "product not found")
	if err.Code() != CodeNotFound {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeNotFound)
	}
	if err.Message() != "product not found" {
		t.Errorf("Message() = %q", err.Message())
	}
	if err.Error() != "NOT_FOUND: product not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "create product")

	if !stdErrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if err.Code() != CodeDependency {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeDependency)
	}
}

func TestWrapNilCause(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, nil, "boom")
	if err.Unwrap() != nil {
		t.Error("nil cause should stay nil")
	}
}

func TestAsFindsNestedError(t *testing.T) {
	t.Parallel()

	inner := New(CodeConflict, "sku already in use")
	outer := fmt.Errorf("placing order: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("As returned nil for wrapped coded error")
	}
	if typed.Code() != CodeConflict {
		t.Errorf("Code() = %v, want %v", typed.Code(), CodeConflict)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Error("As should return nil for uncoded errors")
	}
	if As(nil) != nil {
		t.Error("As(nil) should return nil")
	}
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	details := map[string]any{"requested": 6, "available": 5}
	err := New(CodeConflict, "insufficient stock").WithDetails(details)
	got, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("Details() = %T, want map", err.Details())
	}
	if got["available"] != 5 {
		t.Errorf("available = %v, want 5", got["available"])
	}
}

func TestMetadataFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeIdempotency, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Errorf("MetadataFor(%s).HTTPStatus = %d, want %d", tc.code, got, tc.status)
		}
	}

	if MetadataFor(Code("UNKNOWN")).HTTPStatus != http.StatusInternalServerError {
		t.Error("unknown codes should fall back to internal metadata")
	}
}
