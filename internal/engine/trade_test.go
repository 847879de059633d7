package engine

import (
	"testing"

	"ed-tradepair/internal/eddb"
)

// station builds a test station with the given listings.
func station(id, systemID int64, listings map[int64]eddb.Listing) *eddb.Station {
	if listings == nil {
		listings = map[int64]eddb.Listing{}
	}
	return &eddb.Station{ID: id, SystemID: systemID, Listings: listings}
}

func TestBestTrade_PicksLargestMargin(t *testing.T) {
	src := station(1, 1, map[int64]eddb.Listing{
		100: {BuyPrice: 10},
		101: {BuyPrice: 50},
		102: {BuyPrice: 30},
	})
	dst := station(2, 2, map[int64]eddb.Listing{
		100: {SellPrice: 40}, // margin 30
		101: {SellPrice: 95}, // margin 45
		102: {SellPrice: 35}, // margin 5
	})

	id, profit := BestTrade(src, dst)
	if id != 101 || profit != 45 {
		t.Errorf("BestTrade = (%d, %d), want (101, 45)", id, profit)
	}
}

func TestBestTrade_NoEligibleCommodity(t *testing.T) {
	tests := []struct {
		name string
		src  *eddb.Station
		dst  *eddb.Station
	}{
		{
			name: "no overlap",
			src:  station(1, 1, map[int64]eddb.Listing{100: {BuyPrice: 10}}),
			dst:  station(2, 2, map[int64]eddb.Listing{101: {SellPrice: 50}}),
		},
		{
			name: "source does not sell",
			src:  station(1, 1, map[int64]eddb.Listing{100: {BuyPrice: 0, SellPrice: 5}}),
			dst:  station(2, 2, map[int64]eddb.Listing{100: {SellPrice: 50}}),
		},
		{
			name: "destination does not buy",
			src:  station(1, 1, map[int64]eddb.Listing{100: {BuyPrice: 10}}),
			dst:  station(2, 2, map[int64]eddb.Listing{100: {SellPrice: 0}}),
		},
		{
			name: "empty markets",
			src:  station(1, 1, nil),
			dst:  station(2, 2, nil),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id, profit := BestTrade(tt.src, tt.dst); id != 0 || profit != 0 {
				t.Errorf("BestTrade = (%d, %d), want (0, 0)", id, profit)
			}
		})
	}
}

func TestBestTrade_NegativeMarginsYieldNoTrade(t *testing.T) {
	src := station(1, 1, map[int64]eddb.Listing{100: {BuyPrice: 50}})
	dst := station(2, 2, map[int64]eddb.Listing{100: {SellPrice: 45}})

	if id, profit := BestTrade(src, dst); id != 0 || profit != 0 {
		t.Errorf("BestTrade = (%d, %d), want (0, 0) for a losing trade", id, profit)
	}
}

func TestBestTrade_ProfitNeverNegative(t *testing.T) {
	// Mixed margins: the positive one must win and profit must stay >= 0.
	src := station(1, 1, map[int64]eddb.Listing{
		100: {BuyPrice: 100},
		101: {BuyPrice: 10},
	})
	dst := station(2, 2, map[int64]eddb.Listing{
		100: {SellPrice: 20}, // margin -80
		101: {SellPrice: 11}, // margin 1
	})

	id, profit := BestTrade(src, dst)
	if profit < 0 {
		t.Fatalf("profit = %d, must never be negative", profit)
	}
	if id != 101 || profit != 1 {
		t.Errorf("BestTrade = (%d, %d), want (101, 1)", id, profit)
	}
}

func TestBestTrade_TieGoesToLowestCommodityID(t *testing.T) {
	src := station(1, 1, map[int64]eddb.Listing{
		100: {BuyPrice: 10},
		101: {BuyPrice: 20},
	})
	dst := station(2, 2, map[int64]eddb.Listing{
		100: {SellPrice: 40}, // margin 30
		101: {SellPrice: 50}, // margin 30
	})

	id, profit := BestTrade(src, dst)
	if id != 100 || profit != 30 {
		t.Errorf("BestTrade = (%d, %d), want first-seen (100, 30) on tie", id, profit)
	}
}

func TestBestTrade_Deterministic(t *testing.T) {
	src := station(1, 1, map[int64]eddb.Listing{
		100: {BuyPrice: 10}, 101: {BuyPrice: 20}, 102: {BuyPrice: 5},
		103: {BuyPrice: 7}, 104: {BuyPrice: 9},
	})
	dst := station(2, 2, map[int64]eddb.Listing{
		100: {SellPrice: 40}, 101: {SellPrice: 50}, 102: {SellPrice: 35},
		103: {SellPrice: 37}, 104: {SellPrice: 39},
	})

	firstID, firstProfit := BestTrade(src, dst)
	for i := 0; i < 50; i++ {
		id, profit := BestTrade(src, dst)
		if id != firstID || profit != firstProfit {
			t.Fatalf("BestTrade not deterministic: (%d,%d) then (%d,%d)", firstID, firstProfit, id, profit)
		}
	}
}
