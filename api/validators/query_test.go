package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/jcastellanos/pos-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/products/low-stock?threshold=25", nil)
	got, err := ParseQueryInt(r, "threshold", 10, 0, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

func TestParseQueryIntDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/products/low-stock", nil)
	got, err := ParseQueryInt(r, "threshold", 10, 0, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Fatalf("expected default 10, got %d", got)
	}
}

func TestParseQueryIntRejectsNonNumeric(t *testing.T) {
	r := httptest.NewRequest("GET", "/products/low-stock?threshold=lots", nil)
	_, err := ParseQueryInt(r, "threshold", 10, 0, 100000)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRequireQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/products/search?name=coffee", nil)
	got, err := RequireQuery(r, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "coffee" {
		t.Fatalf("expected coffee, got %q", got)
	}

	r = httptest.NewRequest("GET", "/products/search?name=%20%20", nil)
	if _, err := RequireQuery(r, "name"); err == nil {
		t.Fatal("expected error for blank value")
	}
}

func TestRequireQueryDecimal(t *testing.T) {
	r := httptest.NewRequest("GET", "/products/price-range?min=9.99", nil)
	got, err := RequireQueryDecimal(r, "min")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "9.99" {
		t.Fatalf("expected 9.99, got %s", got)
	}

	r = httptest.NewRequest("GET", "/products/price-range?min=cheap", nil)
	_, err = RequireQueryDecimal(r, "min")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
