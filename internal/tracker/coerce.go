package tracker

// Form inputs arrive with loose types: amounts as JSON numbers or numeric
// strings, dates as RFC 3339 timestamps or bare calendar days. Everything
// is coerced here, at the boundary, so the rest of the code deals in
// decimal.Decimal and UTC time.Time only.

import (
	"errors"
	"strings"
	"time"

	"github.com/govalues/decimal"
)

var (
	ErrAmountRequired = errors.New("amount is required")
	ErrAmountInvalid  = errors.New("amount must be a valid number")
	ErrAmountNegative = errors.New("amount must be a positive number")
)

// ParseAmount coerces a raw JSON value (number or quoted numeric string)
// into an exact non-negative decimal.
func ParseAmount(raw []byte) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Decimal{}, ErrAmountRequired
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return decimal.Decimal{}, ErrAmountRequired
	}
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, ErrAmountInvalid
	}
	if d.IsNeg() {
		return decimal.Decimal{}, ErrAmountNegative
	}
	return d, nil
}

// ParseDate normalizes a client-supplied date string to UTC. An empty
// value defaults to now, matching the form behavior of the dashboard.
// Accepted layouts: RFC 3339 and bare YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("date must be RFC 3339 or YYYY-MM-DD")
}
