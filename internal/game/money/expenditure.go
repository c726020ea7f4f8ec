package money

// ExpenditureType is the finance ledger category an amount is booked under.
type ExpenditureType uint8

const (
	ExpenditureRideConstruction ExpenditureType = iota
	ExpenditureRideRunningCosts
	ExpenditureLandPurchase
	ExpenditureLandscaping
	ExpenditureParkEntranceTickets
	ExpenditureParkRideTickets
	ExpenditureShopSales
	ExpenditureShopStock
	ExpenditureFoodDrinkSales
	ExpenditureFoodDrinkStock
	ExpenditureWages
	ExpenditureMarketing
	ExpenditureResearch
	ExpenditureInterest

	// ExpenditureCount is the number of categories; not a valid category.
	ExpenditureCount
)

var expenditureNames = [ExpenditureCount]string{
	"ride_construction",
	"ride_running_costs",
	"land_purchase",
	"landscaping",
	"park_entrance_tickets",
	"park_ride_tickets",
	"shop_sales",
	"shop_stock",
	"food_drink_sales",
	"food_drink_stock",
	"wages",
	"marketing",
	"research",
	"interest",
}

// String returns the snake_case category name, or "unknown".
func (e ExpenditureType) String() string {
	if e >= ExpenditureCount {
		return "unknown"
	}
	return expenditureNames[e]
}
