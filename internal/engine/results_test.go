package engine

import (
	"testing"

	"ed-tradepair/internal/eddb"
	"ed-tradepair/internal/galaxy"
)

func snapshotFixture() *eddb.Data {
	g := galaxy.New()
	g.SetPosition(1, 0, 0, 0)
	g.SetPosition(2, 3, 4, 0)

	src := &eddb.Station{
		ID: 10, Name: "Lave Station", SystemID: 1,
		Listings: map[int64]eddb.Listing{100: {BuyPrice: 10}},
	}
	dst := &eddb.Station{
		ID: 20, Name: "Shifnalport", SystemID: 2,
		Listings: map[int64]eddb.Listing{100: {SellPrice: 50}},
	}
	return &eddb.Data{
		Systems: map[int64]*eddb.System{
			1: {ID: 1, Name: "Lave"},
			2: {ID: 2, Name: "Diso"},
		},
		Stations:    map[int64]*eddb.Station{10: src, 20: dst},
		Commodities: map[int64]*eddb.Commodity{100: {ID: 100, Name: "Tea"}},
		Galaxy:      g,
	}
}

func TestDescribe_FillsNamesAndPrices(t *testing.T) {
	data := snapshotFixture()
	candidates := []RouteCandidate{
		{SourceStationID: 10, DestStationID: 20, CommodityID: 100, ProfitPerUnit: 40},
	}

	results := Describe(data, candidates)
	if len(results) != 1 {
		t.Fatalf("Describe = %d results, want 1", len(results))
	}
	r := results[0]
	if r.SourceStation != "Lave Station" || r.SourceSystem != "Lave" {
		t.Errorf("source = %q/%q", r.SourceStation, r.SourceSystem)
	}
	if r.DestStation != "Shifnalport" || r.DestSystem != "Diso" {
		t.Errorf("destination = %q/%q", r.DestStation, r.DestSystem)
	}
	if r.Commodity != "Tea" || r.BuyPrice != 10 || r.SellPrice != 50 || r.ProfitPerUnit != 40 {
		t.Errorf("trade = %q buy %d sell %d profit %d", r.Commodity, r.BuyPrice, r.SellPrice, r.ProfitPerUnit)
	}
	if r.DistanceLy != 5 {
		t.Errorf("DistanceLy = %v, want 5", r.DistanceLy)
	}
}

func TestDescribe_ZeroProfitCandidateHasNoCommodity(t *testing.T) {
	data := snapshotFixture()
	results := Describe(data, []RouteCandidate{
		{SourceStationID: 10, DestStationID: 20, CommodityID: 0, ProfitPerUnit: 0},
	})
	if len(results) != 1 {
		t.Fatalf("Describe = %d results, want 1", len(results))
	}
	r := results[0]
	if r.Commodity != "" || r.BuyPrice != 0 || r.SellPrice != 0 {
		t.Errorf("zero-profit result should carry no trade details: %+v", r)
	}
}

func TestDescribe_SkipsUnknownStations(t *testing.T) {
	data := snapshotFixture()
	results := Describe(data, []RouteCandidate{
		{SourceStationID: 999, DestStationID: 20, CommodityID: 100, ProfitPerUnit: 40},
	})
	if len(results) != 0 {
		t.Errorf("Describe with unknown station = %d results, want 0", len(results))
	}
}
