package park

import "github.com/cory-johannsen/parksim/internal/game/money"

// Finances tracks the park's cash and the running ledger per category.
// Ledger entries are negative for spending and positive for income.
type Finances struct {
	Cash        money.Money
	Expenditure [money.ExpenditureCount]money.Money
}

// CanAfford reports whether the park can pay cost. Refunds and zero costs
// are always affordable.
func (f *Finances) CanAfford(cost money.Money) bool {
	if !cost.IsDefined() || cost <= 0 {
		return true
	}
	return f.Cash >= cost
}

// Pay books cost under category, deducting it from cash. A negative cost is
// a refund and increases cash.
//
// Precondition: cost is defined; category < money.ExpenditureCount.
// Postcondition: Cash and the category ledger both move by -cost.
func (f *Finances) Pay(cost money.Money, category money.ExpenditureType) {
	f.Cash -= cost
	f.Expenditure[category] -= cost
}
