package engine

import "time"

const (
	// DefaultMaxRoutes is the number of route candidates kept when the caller
	// does not specify a limit.
	DefaultMaxRoutes = 10
	// DefaultParallelThreshold is the source×destination pair count above
	// which FindRoutes switches to the parallel scan.
	DefaultParallelThreshold = 100_000
)

// EffectiveLimit returns the route limit, using defaultVal if v <= 0.
func EffectiveLimit(v, defaultVal int) int {
	if v <= 0 {
		return defaultVal
	}
	return v
}

// RouteCandidate is one potential single-hop trade: buy the commodity at the
// source station, sell it at the destination. CommodityID 0 means the pair
// has no profitable commodity; ProfitPerUnit is then 0. Candidates are
// created once and never mutated.
type RouteCandidate struct {
	SourceStationID int64
	DestStationID   int64
	CommodityID     int64
	ProfitPerUnit   int64
}

// Progress describes how far a sequential scan has advanced. Remaining is 0
// until at least one source station has completed.
type Progress struct {
	SourcesDone  int
	SourcesTotal int
	Percent      float64
	Remaining    time.Duration
}

// RouteResult is a RouteCandidate enriched with display names and prices for
// output and persistence.
type RouteResult struct {
	SourceStationID int64
	SourceStation   string
	SourceSystem    string
	DestStationID   int64
	DestStation     string
	DestSystem      string
	CommodityID     int64
	Commodity       string
	BuyPrice        int64
	SellPrice       int64
	ProfitPerUnit   int64
	DistanceLy      float64
}
