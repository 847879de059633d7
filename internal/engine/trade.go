package engine

import "ed-tradepair/internal/eddb"

// BestTrade returns the single most profitable commodity to buy at src and
// sell at dst, with its per-unit margin in credits. A commodity is eligible
// when src sells it (buy price > 0) and dst buys it (sell price > 0). Returns
// (0, 0) when no eligible commodity yields a positive margin. Among equal
// margins the commodity found first wins; iteration is ordered by commodity
// ID so the result is deterministic. Pure function of its two inputs.
func BestTrade(src, dst *eddb.Station) (commodityID int64, profit int64) {
	var bestID int64
	var bestMargin int64
	for _, id := range src.ListingOrder() {
		l := src.Listings[id]
		if l.BuyPrice <= 0 {
			continue
		}
		d, ok := dst.Listings[id]
		if !ok || d.SellPrice <= 0 {
			continue
		}
		margin := d.SellPrice - l.BuyPrice
		if bestID == 0 || margin > bestMargin {
			bestID = id
			bestMargin = margin
		}
	}
	if bestID == 0 || bestMargin <= 0 {
		return 0, 0
	}
	return bestID, bestMargin
}
