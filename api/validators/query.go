package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/jcastellanos/pos-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// RequireQuery returns the trimmed query value, failing when it is absent or
// blank.
func RequireQuery(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}

// RequireQueryDecimal parses a required decimal query value such as a price
// bound.
func RequireQueryDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw, err := RequireQuery(r, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal number").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
