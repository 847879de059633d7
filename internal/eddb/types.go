package eddb

import (
	"sort"

	"ed-tradepair/internal/galaxy"
)

// Commodity is a tradeable good from the commodities dump.
// AveragePrice is the galactic average, kept for display only.
type Commodity struct {
	ID           int64
	Name         string
	AveragePrice int64
}

// System is a populated star system from the systems dump.
type System struct {
	ID          int64
	Name        string
	NeedsPermit bool
	X, Y, Z     float64
}

// Listing is one station's market entry for a commodity, in credits.
// A zero price means the station does not trade that side.
type Listing struct {
	BuyPrice  int64 // price the station sells at (what we pay to buy)
	SellPrice int64 // price the station pays us when we sell
}

// Station is a trading post from the stations dump, with its market listings
// keyed by commodity ID.
type Station struct {
	ID             int64
	Name           string
	SystemID       int64
	DistanceToStar float64 // light seconds from arrival point, 0 if unknown
	Listings       map[int64]Listing

	order []int64 // commodity IDs in ascending order, filled by the loader
}

// ListingOrder returns the station's commodity IDs in ascending order, so
// iteration over listings is deterministic. Stations built by the loader have
// the order precomputed; ad-hoc stations sort on each call.
func (s *Station) ListingOrder() []int64 {
	if s.order != nil {
		return s.order
	}
	return sortedListingIDs(s.Listings)
}

// FinalizeListings precomputes the listing iteration order. Call once after
// the listings map stops changing; the station is read-only afterwards.
func (s *Station) FinalizeListings() {
	s.order = sortedListingIDs(s.Listings)
}

func sortedListingIDs(listings map[int64]Listing) []int64 {
	ids := make([]int64, 0, len(listings))
	for id := range listings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Data holds the fully parsed market snapshot. All tables are loaded once
// and treated as read-only afterwards.
type Data struct {
	Systems          map[int64]*System
	SystemByName     map[string]int64 // lowercase name -> systemID
	Stations         map[int64]*Station
	StationsBySystem map[int64][]*Station
	Commodities      map[int64]*Commodity
	CommodityByName  map[string]int64 // lowercase name -> commodityID
	Galaxy           *galaxy.Galaxy
}

func newData() *Data {
	return &Data{
		Systems:          make(map[int64]*System),
		SystemByName:     make(map[string]int64),
		Stations:         make(map[int64]*Station),
		StationsBySystem: make(map[int64][]*Station),
		Commodities:      make(map[int64]*Commodity),
		CommodityByName:  make(map[string]int64),
		Galaxy:           galaxy.New(),
	}
}
