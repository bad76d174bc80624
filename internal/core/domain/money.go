package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money conversion errors, mapped to PAY_002 at the boundary.
var (
	ErrMalformedAmount = errors.New("amount is not a valid number")
	ErrNegativeAmount  = errors.New("amount must not be negative")
)

// Money is an immutable fixed-point amount with exactly two fractional
// digits. All arithmetic returns new values; stored amounts are never
// negative.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns the 0.00 amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// ParseMoney converts a raw numeric string into Money, rounding half-up
// to two fractional digits. Non-numeric input and negative results are
// rejected.
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, ErrMalformedAmount
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal quantizes an arbitrary decimal to two fractional
// digits (half-up) and rejects negative results.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	quantized := d.Round(2)
	if quantized.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: quantized}, nil
}

// MustMoney parses a literal amount and panics on failure. For pool
// configuration and tests only.
func MustMoney(raw string) Money {
	m, err := ParseMoney(raw)
	if err != nil {
		panic("domain: invalid money literal " + raw + ": " + err.Error())
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other. The result may be negative; callers guard with
// LessThan before subtracting stored balances.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt returns m * n. Exact: the factor is an integer, so no fractional
// digits are introduced.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equal reports whether m and other represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether m is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether m > 0.00.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two fractional digits, e.g. "87.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON encodes Money as a decimal string with two fractional digits.
// A string, not a number: float encoding would reintroduce drift.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted decimal strings and bare JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
