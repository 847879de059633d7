package eddb

import "testing"

func TestStationsNear_RadiusAndPermit(t *testing.T) {
	data := loadFixture(t)

	// Within 10 ly of Lave: Lave itself and Diso, not Sol.
	stations := data.StationsNear(1, 10, false)
	ids := stationIDs(stations)
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Fatalf("StationsNear(Lave, 10) = %v, want [10 20]", ids)
	}

	// Sol is in range at 100 ly but permit-locked.
	stations = data.StationsNear(1, 150, false)
	for _, st := range stations {
		if st.SystemID == 3 {
			t.Fatal("permit-locked system included without includePermit")
		}
	}
	stations = data.StationsNear(1, 150, true)
	found := false
	for _, st := range stations {
		if st.ID == 30 {
			found = true
		}
	}
	if !found {
		t.Fatal("includePermit should admit Sol stations")
	}
}

func TestStationsNear_OrderIsDeterministic(t *testing.T) {
	data := loadFixture(t)
	first := stationIDs(data.StationsNear(1, 150, true))
	for i := 0; i < 10; i++ {
		again := stationIDs(data.StationsNear(1, 150, true))
		if len(again) != len(first) {
			t.Fatalf("result length changed: %v vs %v", again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("order changed between calls: %v vs %v", again, first)
			}
		}
	}
	// Closest system's stations come first.
	if first[0] != 10 {
		t.Errorf("first station = %d, want 10 (origin system)", first[0])
	}
}

func TestStationsNear_UnknownOrigin(t *testing.T) {
	data := loadFixture(t)
	if got := data.StationsNear(999, 100, true); len(got) != 0 {
		t.Errorf("StationsNear from unknown origin = %v, want empty", got)
	}
}

func TestAllStations_SortedByID(t *testing.T) {
	data := loadFixture(t)
	stations := data.AllStations()
	if len(stations) != 3 {
		t.Fatalf("AllStations = %d, want 3", len(stations))
	}
	for i := 1; i < len(stations); i++ {
		if stations[i-1].ID >= stations[i].ID {
			t.Fatalf("AllStations not sorted: %v", stationIDs(stations))
		}
	}
}

func TestFindCommodity(t *testing.T) {
	data := loadFixture(t)
	c, ok := data.FindCommodity("GOLD")
	if !ok || c.ID != 101 {
		t.Fatalf("FindCommodity(GOLD) = %v/%v", c, ok)
	}
	if _, ok := data.FindCommodity("Slaves"); ok {
		t.Error("unknown commodity should not resolve")
	}
}

func stationIDs(stations []*Station) []int64 {
	ids := make([]int64, len(stations))
	for i, st := range stations {
		ids[i] = st.ID
	}
	return ids
}
