package db

import (
	"log"
	"time"

	"github.com/google/uuid"

	"ed-tradepair/internal/engine"
)

// ScanRecord represents one scan history entry.
type ScanRecord struct {
	ID           int64
	RunID        string
	Timestamp    string
	Origin       string
	Sources      int
	Destinations int
	Pairs        int
	Count        int
	TopProfit    int64
	DurationMs   int64
}

// InsertScan inserts a scan history record and returns its ID.
func (d *DB) InsertScan(origin string, sources, destinations, count int, topProfit int64, duration time.Duration) int64 {
	result, err := d.sql.Exec(
		`INSERT INTO scan_history (run_id, timestamp, origin, sources, destinations, pairs, count, top_profit, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().Format(time.RFC3339), origin,
		sources, destinations, sources*destinations, count, topProfit,
		duration.Milliseconds(),
	)
	if err != nil {
		log.Printf("[DB] InsertScan: %v", err)
		return 0
	}
	id, _ := result.LastInsertId()
	return id
}

// RecentScans returns the last N scan history records (newest first).
func (d *DB) RecentScans(limit int) []ScanRecord {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(
		`SELECT id, run_id, timestamp, origin, sources, destinations, pairs, count, top_profit, duration_ms
		 FROM scan_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return []ScanRecord{}
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var r ScanRecord
		rows.Scan(&r.ID, &r.RunID, &r.Timestamp, &r.Origin, &r.Sources, &r.Destinations,
			&r.Pairs, &r.Count, &r.TopProfit, &r.DurationMs)
		records = append(records, r)
	}
	if records == nil {
		return []ScanRecord{}
	}
	return records
}

// InsertRouteResults bulk-inserts route results linked to a scan history record.
func (d *DB) InsertRouteResults(scanID int64, results []engine.RouteResult) {
	if scanID == 0 || len(results) == 0 {
		return
	}

	tx, err := d.sql.Begin()
	if err != nil {
		log.Printf("[DB] InsertRouteResults begin tx: %v", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO route_results (
		scan_id, source_station_id, source_station, source_system,
		dest_station_id, dest_station, dest_system,
		commodity_id, commodity, buy_price, sell_price,
		profit_per_unit, distance_ly
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		log.Printf("[DB] InsertRouteResults prepare: %v", err)
		return
	}
	defer stmt.Close()

	for _, r := range results {
		stmt.Exec(
			scanID, r.SourceStationID, r.SourceStation, r.SourceSystem,
			r.DestStationID, r.DestStation, r.DestSystem,
			r.CommodityID, r.Commodity, r.BuyPrice, r.SellPrice,
			r.ProfitPerUnit, r.DistanceLy,
		)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("[DB] InsertRouteResults commit: %v", err)
	}
}

// GetRouteResults retrieves route results for a scan, best profit first.
func (d *DB) GetRouteResults(scanID int64) []engine.RouteResult {
	rows, err := d.sql.Query(`
		SELECT source_station_id, source_station, source_system,
			dest_station_id, dest_station, dest_system,
			commodity_id, commodity, buy_price, sell_price,
			profit_per_unit, distance_ly
		FROM route_results WHERE scan_id = ? ORDER BY id
	`, scanID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var results []engine.RouteResult
	for rows.Next() {
		var r engine.RouteResult
		rows.Scan(
			&r.SourceStationID, &r.SourceStation, &r.SourceSystem,
			&r.DestStationID, &r.DestStation, &r.DestSystem,
			&r.CommodityID, &r.Commodity, &r.BuyPrice, &r.SellPrice,
			&r.ProfitPerUnit, &r.DistanceLy,
		)
		results = append(results, r)
	}
	return results
}
