package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FormatOrderNumber renders "ORD-YYYYMMDD-NNNN" from the contract date and a
// one-based per-tenant sequence.
func FormatOrderNumber(contractDate time.Time, seq int64) string {
	return fmt.Sprintf("ORD-%s-%04d", contractDate.UTC().Format("20060102"), seq)
}

var ErrPaidAtRequired = errors.New("paidAt is required")

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// ParseDate accepts an ISO-8601 calendar date or an RFC3339 timestamp and
// returns it in UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid ISO-8601 date", raw)
}

// ParsePaidAt is ParseDate without an implicit "now": an empty value is an error.
func ParsePaidAt(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, ErrPaidAtRequired
	}
	return ParseDate(raw)
}
