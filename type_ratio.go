package investilearn

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Ratio is a nullable exact-decimal ratio value.
//
// Providers report fundamentals sparsely: a missing field and a genuine zero
// mean different things (a company can have a 0% margin). The zero value of
// Ratio is the missing value and renders as "N/A".
type Ratio struct {
	value decimal.Decimal
	valid bool
}

// R builds a valid Ratio from any numeric value.
func R[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Ratio {
	return Ratio{value: newDecimal(value), valid: true}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	panic("unreachable")
}

// Valid reports whether the ratio holds a value.
func (r Ratio) Valid() bool { return r.valid }

// Value returns the exact decimal value. Zero when not valid.
func (r Ratio) Value() decimal.Decimal { return r.value }

// Float64 returns the value as a float64 for callers that accept the loss.
func (r Ratio) Float64() float64 { return r.value.InexactFloat64() }

// Equal compares two ratios, treating two missing values as equal.
func (r Ratio) Equal(s Ratio) bool {
	if r.valid != s.valid {
		return false
	}
	return !r.valid || r.value.Equal(s.value)
}

// Scale100 returns the ratio multiplied by 100, used to turn the provider's
// fractional margins and returns into percent points.
func (r Ratio) Scale100() Ratio {
	if !r.valid {
		return r
	}
	return Ratio{value: r.value.Shift(2), valid: true}
}

// IsPercent reports whether a ratio key renders as a percentage.
// ROE, ROA and the margins are percent-valued; multiples and coverage are not.
func IsPercent(key string) bool {
	for _, term := range []string{"ROE", "ROA", "Margin"} {
		if strings.Contains(key, term) {
			return true
		}
	}
	return false
}

// Format renders the ratio for display under the given key:
// "15.50%" for percent ratios, "1.52" for plain ones, "N/A" when missing.
// A valid zero formats as "0.00", not "N/A".
func (r Ratio) Format(key string) string {
	if !r.valid {
		return "N/A"
	}
	s := r.value.StringFixed(2)
	if IsPercent(key) {
		return s + "%"
	}
	return s
}

// String renders the ratio as a plain number, "N/A" when missing.
func (r Ratio) String() string {
	if !r.valid {
		return "N/A"
	}
	return r.value.StringFixed(2)
}

// MarshalJSON renders a missing ratio as null and a valid one as a number.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return []byte(r.value.String()), nil
}
