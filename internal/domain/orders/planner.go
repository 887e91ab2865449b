package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxInstallments = 5
	// InstallmentCadenceDays is a fixed step, not calendar-month aware.
	InstallmentCadenceDays = 30
	moneyPlaces            = 2
)

var (
	ErrInstallmentCount = fmt.Errorf("installment count must be between 1 and %d", MaxInstallments)
	ErrNegativeTotal    = errors.New("total amount must not be negative")
	ErrChangedIndex     = errors.New("changed index is out of range")
)

// Warning codes returned by Redistribute.
const (
	WarnOverAllocated = "over_allocated"
	WarnSumMismatch   = "sum_mismatch"
)

type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PlannedInstallment struct {
	Sequence int
	Amount   decimal.Decimal
	DueDate  time.Time
}

// Generate splits total into count installments. All but the last receive the
// cent-floored share; the last receives the exact remainder.
func Generate(total decimal.Decimal, count int, baseDate time.Time) ([]PlannedInstallment, error) {
	if count < 1 || count > MaxInstallments {
		return nil, ErrInstallmentCount
	}
	if total.IsNegative() {
		return nil, ErrNegativeTotal
	}
	amounts := split(total, count)
	out := make([]PlannedInstallment, count)
	for i, amt := range amounts {
		out[i] = PlannedInstallment{
			Sequence: i + 1,
			Amount:   amt,
			DueDate:  DueDate(baseDate, i),
		}
	}
	return out, nil
}

func DueDate(baseDate time.Time, index int) time.Time {
	return baseDate.AddDate(0, 0, InstallmentCadenceDays*index)
}

// Redistribute sets amounts[changedIndex] to newAmount and spreads what is left
// of total across the following installments. The input slice is not modified.
// Over-allocation is reported as a warning and the following installments are zeroed.
func Redistribute(amounts []decimal.Decimal, changedIndex int, newAmount, total decimal.Decimal) ([]decimal.Decimal, []Warning, error) {
	if changedIndex < 0 || changedIndex >= len(amounts) {
		return nil, nil, ErrChangedIndex
	}
	out := make([]decimal.Decimal, len(amounts))
	copy(out, amounts)
	out[changedIndex] = newAmount

	var warnings []Warning
	tail := len(out) - changedIndex - 1
	if tail > 0 {
		remaining := total.Sub(Sum(out[:changedIndex+1]))
		if remaining.IsNegative() {
			warnings = append(warnings, Warning{
				Code:    WarnOverAllocated,
				Message: fmt.Sprintf("installments up to #%d exceed the order total by %s", changedIndex+1, remaining.Neg().StringFixed(moneyPlaces)),
			})
			for i := changedIndex + 1; i < len(out); i++ {
				out[i] = decimal.Zero
			}
		} else {
			copy(out[changedIndex+1:], split(remaining, tail))
		}
	}
	if sum := Sum(out); !sum.Equal(total) {
		warnings = append(warnings, Warning{
			Code:    WarnSumMismatch,
			Message: fmt.Sprintf("installments sum to %s but the order total is %s", sum.StringFixed(moneyPlaces), total.StringFixed(moneyPlaces)),
		})
	}
	return out, warnings, nil
}

// CheckSum returns a sum-mismatch warning when amounts do not add up to total.
func CheckSum(amounts []decimal.Decimal, total decimal.Decimal) []Warning {
	if len(amounts) == 0 {
		return nil
	}
	sum := Sum(amounts)
	if sum.Equal(total) {
		return nil
	}
	w := []Warning{{
		Code:    WarnSumMismatch,
		Message: fmt.Sprintf("installments sum to %s but the order total is %s", sum.StringFixed(moneyPlaces), total.StringFixed(moneyPlaces)),
	}}
	if sum.GreaterThan(total) {
		w = append(w, Warning{Code: WarnOverAllocated, Message: "installments exceed the order total"})
	}
	return w
}

func Sum(amounts []decimal.Decimal) decimal.Decimal {
	s := decimal.Zero
	for _, a := range amounts {
		s = s.Add(a)
	}
	return s
}

func split(total decimal.Decimal, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	base := total.Div(decimal.NewFromInt(int64(n))).RoundFloor(moneyPlaces)
	acc := decimal.Zero
	for i := 0; i < n-1; i++ {
		out[i] = base
		acc = acc.Add(base)
	}
	out[n-1] = total.Sub(acc)
	return out
}
