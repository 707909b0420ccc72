package validators

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	var dest samplePayload
	if err := DecodeJSONBody(r, &dest); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if dest.Name != "Ada" {
		t.Errorf("Name = %q", dest.Name)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com","extra":1}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("unknown field accepted")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Errorf("want validation error, got %v", err)
	}
}

func TestDecodeJSONBodyUsesJSONTagNames(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","email":"not-an-email"}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("invalid email accepted")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("want coded error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("Details() = %T, want map[string]string", typed.Details())
	}
	if _, present := details["email"]; !present {
		t.Errorf("details should key on the json tag name, got %v", details)
	}
}

func TestParseQueryInt(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/?limit=25", nil)
	value, err := ParseQueryInt(r, "limit", 10, 1, 100)
	if err != nil || value != 25 {
		t.Errorf("ParseQueryInt = (%d, %v), want (25, nil)", value, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryInt(r, "limit", 10, 1, 100)
	if err != nil || value != 10 {
		t.Errorf("missing param = (%d, %v), want default 10", value, err)
	}

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	if _, err := ParseQueryInt(r, "limit", 10, 1, 100); err == nil {
		t.Error("out of range value accepted")
	}

	r = httptest.NewRequest("GET", "/?limit=abc", nil)
	if _, err := ParseQueryInt(r, "limit", 10, 1, 100); err == nil {
		t.Error("non-numeric value accepted")
	}
}

func TestParseQueryDecimal(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/?min_price=10.50", nil)
	value, err := ParseQueryDecimal(r, "min_price")
	if err != nil {
		t.Fatalf("ParseQueryDecimal: %v", err)
	}
	if value == nil || value.String() != "10.5" {
		t.Errorf("value = %v, want 10.5", value)
	}

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryDecimal(r, "min_price")
	if err != nil || value != nil {
		t.Errorf("missing param = (%v, %v), want (nil, nil)", value, err)
	}

	r = httptest.NewRequest("GET", "/?min_price=abc", nil)
	if _, err := ParseQueryDecimal(r, "min_price"); err == nil {
		t.Error("non-decimal value accepted")
	}
}

func withPathParam(key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(context.Background(), chi.RouteCtxKey, rctx)
}

func TestParsePathUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(withPathParam("storeId", id.String()))

	parsed, err := ParsePathUUID(r, "storeId")
	if err != nil {
		t.Fatalf("ParsePathUUID: %v", err)
	}
	if parsed != id {
		t.Errorf("parsed = %v, want %v", parsed, id)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(withPathParam("storeId", "not-a-uuid"))
	if _, err := ParsePathUUID(r, "storeId"); err == nil {
		t.Error("malformed uuid accepted")
	}
}

func TestParsePathInt(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(withPathParam("quantity", "3"))
	value, err := ParsePathInt(r, "quantity", 1)
	if err != nil || value != 3 {
		t.Errorf("ParsePathInt = (%d, %v), want (3, nil)", value, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(withPathParam("quantity", "0"))
	if _, err := ParsePathInt(r, "quantity", 1); err == nil {
		t.Error("below-minimum value accepted")
	}
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	if got := SanitizeString("  Main Street  ", 255); got != "Main Street" {
		t.Errorf("whitespace not trimmed: %q", got)
	}

	long := strings.Repeat("a", 300)
	if len(SanitizeString(long, 255)) != 255 {
		t.Error("length cap not applied")
	}
}
