package investilearn

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value such as a price or a market cap.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string   { return m.cur }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsPositive() bool   { return m.value.IsPositive() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Neg() Money         { return Money{value: m.value.Neg(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat returns the value as float64 for chart payloads.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// Compact renders large amounts the way the dashboard header does:
// "$2.50T", "$150.30B", "$45.10M", plain below a million.
func (m Money) Compact() string {
	grapheme := m.currency().Grapheme
	abs := m.value.Abs()
	sign := ""
	if m.value.IsNegative() {
		sign = "-"
	}
	for _, scale := range []struct {
		shift  int32
		suffix string
	}{{-12, "T"}, {-9, "B"}, {-6, "M"}} {
		if abs.Shift(scale.shift).GreaterThanOrEqual(decimal.New(1, 0)) {
			return fmt.Sprintf("%s%s%s%s", sign, grapheme, abs.Shift(scale.shift).StringFixed(2), scale.suffix)
		}
	}
	return fmt.Sprintf("%s%s%s", sign, grapheme, abs.StringFixed(2))
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}
