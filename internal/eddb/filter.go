package eddb

import (
	"sort"
	"strings"
)

// FindSystem resolves a system by name, case-insensitively.
func (d *Data) FindSystem(name string) (*System, bool) {
	id, ok := d.SystemByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return d.Systems[id], true
}

// FindCommodity resolves a commodity by name, case-insensitively.
func (d *Data) FindCommodity(name string) (*Commodity, bool) {
	id, ok := d.CommodityByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return d.Commodities[id], true
}

// StationsIn returns the stations of a system, ordered by distance from the
// arrival star and then by ID.
func (d *Data) StationsIn(systemID int64) []*Station {
	stations := append([]*Station(nil), d.StationsBySystem[systemID]...)
	sortStations(stations, nil)
	return stations
}

// StationsNear returns all stations with market listings in systems within
// radius light years of the origin system. Permit-locked systems are skipped
// unless includePermit is set. The result is ordered by system distance from
// the origin, then distance from the star, then station ID, so repeated calls
// over the same snapshot produce the same candidate order.
func (d *Data) StationsNear(originSystemID int64, radius float64, includePermit bool) []*Station {
	inRange := d.Galaxy.WithinRange(originSystemID, radius)

	var stations []*Station
	for systemID := range inRange {
		if !includePermit && d.Galaxy.NeedsPermit(systemID) {
			continue
		}
		for _, st := range d.StationsBySystem[systemID] {
			if len(st.Listings) == 0 {
				continue
			}
			stations = append(stations, st)
		}
	}
	sortStations(stations, inRange)
	return stations
}

// AllStations returns every station with market listings, ordered by ID.
func (d *Data) AllStations() []*Station {
	var stations []*Station
	for _, st := range d.Stations {
		if len(st.Listings) == 0 {
			continue
		}
		stations = append(stations, st)
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations
}

// sortStations orders stations by system distance (when distances are given),
// then by in-system distance from the star, then by ID.
func sortStations(stations []*Station, systemDist map[int64]float64) {
	sort.Slice(stations, func(i, j int) bool {
		a, b := stations[i], stations[j]
		if systemDist != nil && a.SystemID != b.SystemID {
			da, db := systemDist[a.SystemID], systemDist[b.SystemID]
			if da != db {
				return da < db
			}
		}
		if a.DistanceToStar != b.DistanceToStar {
			return a.DistanceToStar < b.DistanceToStar
		}
		return a.ID < b.ID
	})
}
