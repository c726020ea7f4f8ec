package park

// CampaignType is a marketing campaign kind.
type CampaignType uint8

const (
	CampaignParkEntryFree CampaignType = iota
	CampaignRideFree
	CampaignParkEntryHalfPrice
	CampaignFoodOrDrinkFree
	CampaignPark
	CampaignRide
)

// TargetsRide reports whether campaigns of this kind advertise a single ride.
func (t CampaignType) TargetsRide() bool {
	return t == CampaignRideFree || t == CampaignRide
}

// Campaign is an active marketing campaign.
type Campaign struct {
	Type      CampaignType
	WeeksLeft uint8
	RideID    RideID
}

// NewsType classifies a news ticker item.
type NewsType uint8

const (
	NewsRide NewsType = iota
	NewsPeepOnRide
	NewsPeep
	NewsMoney
	NewsBlank
	NewsResearch
	NewsAward
)

// NewsItem is one news ticker entry. Assoc identifies the subject of the
// item, for ride news the ride id.
type NewsItem struct {
	Type     NewsType
	Assoc    uint32
	Text     string
	Disabled bool
}
