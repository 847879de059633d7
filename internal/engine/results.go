package engine

import "ed-tradepair/internal/eddb"

// Describe enriches route candidates with station, system and commodity
// display names plus the prices behind the margin, for output and
// persistence. Candidates referencing stations missing from the snapshot are
// skipped.
func Describe(data *eddb.Data, candidates []RouteCandidate) []RouteResult {
	results := make([]RouteResult, 0, len(candidates))
	for _, c := range candidates {
		src, ok := data.Stations[c.SourceStationID]
		if !ok {
			continue
		}
		dst, ok := data.Stations[c.DestStationID]
		if !ok {
			continue
		}

		r := RouteResult{
			SourceStationID: c.SourceStationID,
			SourceStation:   src.Name,
			DestStationID:   c.DestStationID,
			DestStation:     dst.Name,
			CommodityID:     c.CommodityID,
			ProfitPerUnit:   c.ProfitPerUnit,
		}
		if sys, ok := data.Systems[src.SystemID]; ok {
			r.SourceSystem = sys.Name
		}
		if sys, ok := data.Systems[dst.SystemID]; ok {
			r.DestSystem = sys.Name
		}
		if c.CommodityID != 0 {
			if com, ok := data.Commodities[c.CommodityID]; ok {
				r.Commodity = com.Name
			}
			r.BuyPrice = src.Listings[c.CommodityID].BuyPrice
			r.SellPrice = dst.Listings[c.CommodityID].SellPrice
		}
		// -1 when either system position is missing from the snapshot.
		r.DistanceLy = data.Galaxy.Distance(src.SystemID, dst.SystemID)
		results = append(results, r)
	}
	return results
}
