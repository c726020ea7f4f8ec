package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "£0.00", Format(0))
	assert.Equal(t, "£1.50", Format(15))
	assert.Equal(t, "£1,234.50", Format(12345))
	assert.Equal(t, "-£3.00", Format(-30))
	assert.Equal(t, "£1,000,000.00", Format(10_000_000))
	assert.Equal(t, "undefined", Format(Undefined))
}

func TestRefund(t *testing.T) {
	assert.Equal(t, Money(-75), Refund(100))
	assert.Equal(t, Money(-7), Refund(10))
	assert.Equal(t, Money(0), Refund(0))
	assert.Equal(t, Undefined, Refund(Undefined))
}

func TestAdd_UndefinedAbsorbs(t *testing.T) {
	assert.Equal(t, Undefined, Money(10).Add(Undefined))
	assert.Equal(t, Undefined, Undefined.Add(0))
	assert.Equal(t, Money(25), Money(10).Add(15))
}

func TestExpenditureType_String(t *testing.T) {
	assert.Equal(t, "ride_construction", ExpenditureRideConstruction.String())
	assert.Equal(t, "landscaping", ExpenditureLandscaping.String())
	assert.Equal(t, "unknown", ExpenditureCount.String())
}

func TestProperty_Refund_NeverPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		price := Money(rapid.Int64Range(0, 1_000_000_000).Draw(t, "price"))
		r := Refund(price)
		if r > 0 {
			t.Fatalf("refund of %d is positive: %d", price, r)
		}
		if -r > price {
			t.Fatalf("refund %d exceeds price %d", r, price)
		}
	})
}

func TestProperty_Add_Undefined(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := Money(rapid.Int64Range(-1_000_000, 1_000_000).Draw(t, "a"))
		if a.Add(Undefined).IsDefined() {
			t.Fatalf("%d + Undefined must be Undefined", a)
		}
	})
}
