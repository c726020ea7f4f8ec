// Package money provides the park currency type, the undefined-cost sentinel,
// and the expenditure categories used by the finance ledger.
package money

import (
	"fmt"
	"math"
	"strings"
)

// Money is a signed amount in minor currency units. Ten units make one
// display currency unit (£1.00 == 10).
type Money int64

// Undefined marks a cost that was never computed, typically because the
// action producing it was rejected. It is distinct from zero.
const Undefined Money = math.MinInt64

const (
	// UnitsPerPound is the number of minor units in one display unit.
	UnitsPerPound = 10

	// RefundNumerator and RefundDenominator scale a price into the amount
	// returned when the priced object is removed.
	RefundNumerator   = 3
	RefundDenominator = 4

	// RefurbishDivisor divides a ride's refund price into its refurbishment fee.
	RefurbishDivisor = 2
)

// IsDefined reports whether m holds a computed amount.
func (m Money) IsDefined() bool {
	return m != Undefined
}

// Add returns m + o. Undefined on either side yields Undefined.
//
// Postcondition: Returns Undefined iff m or o is Undefined.
func (m Money) Add(o Money) Money {
	if m == Undefined || o == Undefined {
		return Undefined
	}
	return m + o
}

// Refund returns the negative amount paid back when an object of the given
// price is removed.
//
// Precondition: price is defined.
// Postcondition: Returns -(price*3/4), truncated toward zero.
func Refund(price Money) Money {
	if price == Undefined {
		return Undefined
	}
	return -((price * RefundNumerator) / RefundDenominator)
}

// String implements fmt.Stringer using Format.
func (m Money) String() string {
	return Format(m)
}

// Format renders m as a display string such as "£1,234.50" or "-£3.00".
//
// Postcondition: Undefined renders as "undefined".
func Format(m Money) string {
	if m == Undefined {
		return "undefined"
	}
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / UnitsPerPound
	tenths := v % UnitsPerPound
	return fmt.Sprintf("%s£%s.%d0", sign, groupThousands(whole), tenths)
}

// groupThousands inserts comma separators into a non-negative integer.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
