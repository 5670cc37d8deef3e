package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places every measurement is stored with.
const Precision = 2

// Round rounds d to Precision places, halves away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Value is a water level or discharge reading held as an exact decimal.
// The zero Value is missing.
type Value struct {
	d     decimal.Decimal
	valid bool
}

// Missing returns the absent marker.
func Missing() Value {
	return Value{}
}

// NewValue rounds f half-up to Precision places. NaN and infinities are missing.
func NewValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{d: Round(decimal.NewFromFloat(f)), valid: true}
}

// NewValueFromDecimal rounds d half-up to Precision places.
func NewValueFromDecimal(d decimal.Decimal) Value {
	return Value{d: Round(d), valid: true}
}

// ParseValue decodes a spreadsheet cell. Thousands separators are ignored;
// blank or non-numeric text such as "欠測" or "-" yields a missing value.
func ParseValue(s string) Value {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Missing()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing()
	}
	return NewValue(f)
}

// Valid reports whether v holds a reading.
func (v Value) Valid() bool {
	return v.valid
}

// Decimal returns the stored decimal. It is zero for a missing value.
func (v Value) Decimal() decimal.Decimal {
	return v.d
}

// Float64 returns the nearest float64 and whether v is present.
func (v Value) Float64() (float64, bool) {
	if !v.valid {
		return math.NaN(), false
	}
	return v.d.InexactFloat64(), true
}

// Ptr returns nil for a missing value.
func (v Value) Ptr() *float64 {
	f, ok := v.Float64()
	if !ok {
		return nil
	}
	return &f
}

// Rounded re-applies the storage rounding.
func (v Value) Rounded() Value {
	if !v.valid {
		return v
	}
	return NewValueFromDecimal(v.d)
}

// Cmp compares two values. Missing values order after every present value
// and compare equal to each other.
func (v Value) Cmp(o Value) int {
	switch {
	case !v.valid && !o.valid:
		return 0
	case !v.valid:
		return 1
	case !o.valid:
		return -1
	}
	return v.d.Cmp(o.d)
}

// Equal reports whether both values are missing or hold the same reading.
func (v Value) Equal(o Value) bool {
	return v.valid == o.valid && (!v.valid || v.d.Equal(o.d))
}

// Add returns v+o. A missing operand makes the result missing.
func (v Value) Add(o Value) Value {
	if !v.valid || !o.valid {
		return Missing()
	}
	return Value{d: v.d.Add(o.d), valid: true}
}

func (v Value) String() string {
	if !v.valid {
		return ""
	}
	return v.d.StringFixed(Precision)
}

// Present filters out missing values, keeping order.
func Present(values []Value) []Value {
	out := make([]Value, 0, len(values))
	for _, v := range values {
		if v.valid {
			out = append(out, v)
		}
	}
	return out
}

// Sum adds the present values exactly. The second result is the number of
// values that contributed.
func Sum(values []Value) (decimal.Decimal, int) {
	sum := decimal.Zero
	n := 0
	for _, v := range values {
		if !v.valid {
			continue
		}
		sum = sum.Add(v.d)
		n++
	}
	return sum, n
}

// Mean is the exact mean of the present values rounded half-up, or missing
// when none are present.
func Mean(values []Value) Value {
	sum, n := Sum(values)
	if n == 0 {
		return Missing()
	}
	return NewValueFromDecimal(sum.Div(decimal.NewFromInt(int64(n))))
}
