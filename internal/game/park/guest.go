package park

// EntityID identifies a guest or staff member.
type EntityID uint16

// PeepState is a guest's current activity.
type PeepState uint8

const (
	PeepStateWalking PeepState = iota
	PeepStateQueuing
	PeepStateEnteringRide
	PeepStateOnRide
	PeepStateLeavingRide
	PeepStateWatching
	PeepStateSitting
)

// ShopItem identifies an item a guest can carry.
type ShopItem uint8

const (
	ItemBalloon ShopItem = iota
	ItemMap
	ItemUmbrella
	ItemVoucher
	ItemPhoto
	ItemPhoto2
	ItemPhoto3
	ItemPhoto4
	ItemDrink
	ItemBurger
)

// PhotoItems lists the photo items in slot order.
var PhotoItems = [4]ShopItem{ItemPhoto, ItemPhoto2, ItemPhoto3, ItemPhoto4}

// ShopItemSet is a bitset of carried items.
type ShopItemSet uint64

// VoucherType is what a carried voucher entitles the guest to.
type VoucherType uint8

const (
	VoucherParkEntryFree VoucherType = iota
	VoucherRideFree
	VoucherParkEntryHalfPrice
	VoucherFoodItemFree
)

// StandTimeLimit is the longest a watching guest keeps standing once the
// ride they watch disappears.
const StandTimeLimit = 50

// Guest is a park visitor and the ride references it remembers.
type Guest struct {
	ID            EntityID
	Name          string
	State         PeepState
	CurrentRide   RideID
	TimeToStand   uint8
	RidesBeenOn   RideSet
	Items         ShopItemSet
	VoucherType   VoucherType
	VoucherRideID RideID
	// PhotoRides holds the ride each photo slot depicts, aligned with PhotoItems.
	PhotoRides    [4]RideID
	HeadingToRide RideID
	FavouriteRide RideID
	Thoughts      ThoughtQueue
}

// NewGuest returns a walking guest with every ride reference cleared.
func NewGuest(name string) *Guest {
	return &Guest{
		Name:          name,
		State:         PeepStateWalking,
		CurrentRide:   RideIDNull,
		VoucherRideID: RideIDNull,
		PhotoRides:    [4]RideID{RideIDNull, RideIDNull, RideIDNull, RideIDNull},
		HeadingToRide: RideIDNull,
		FavouriteRide: RideIDNull,
	}
}

// HasItem reports whether the guest carries item.
func (g *Guest) HasItem(item ShopItem) bool {
	return g.Items&(1<<item) != 0
}

// GiveItem adds item to the guest's belongings.
func (g *Guest) GiveItem(item ShopItem) {
	g.Items |= 1 << item
}

// RemoveItem drops item from the guest's belongings.
func (g *Guest) RemoveItem(item ShopItem) {
	g.Items &^= 1 << item
}

// ForgetRide clears every reference g holds to ride id: ride history bit,
// watching target, free-ride voucher, photos, heading target, favourite,
// and thoughts about it.
//
// Postcondition: No field of g refers to id; Thoughts stays compacted.
func (g *Guest) ForgetRide(id RideID) {
	g.RidesBeenOn.Clear(id)

	if g.State == PeepStateWatching && g.CurrentRide == id {
		g.CurrentRide = RideIDNull
		if g.TimeToStand >= StandTimeLimit {
			g.TimeToStand = StandTimeLimit
		}
	}

	if g.VoucherRideID == id {
		if g.HasItem(ItemVoucher) && g.VoucherType == VoucherRideFree {
			g.RemoveItem(ItemVoucher)
		}
		g.VoucherRideID = RideIDNull
	}

	for slot, item := range PhotoItems {
		if g.PhotoRides[slot] != id {
			continue
		}
		g.RemoveItem(item)
		g.PhotoRides[slot] = RideIDNull
	}

	if g.HeadingToRide == id {
		g.HeadingToRide = RideIDNull
	}
	if g.FavouriteRide == id {
		g.FavouriteRide = RideIDNull
	}

	g.Thoughts.RemoveWhere(func(t Thought) bool {
		return t.Item == uint16(id)
	})
}
