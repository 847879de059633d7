package eddb

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ed-tradepair/internal/logger"
)

// Dump file names as served by the archive.
const (
	systemsFile     = "systems_populated.json"
	stationsFile    = "stations.json"
	commoditiesFile = "commodities.json"
	listingsFile    = "listings.csv"
)

// Load downloads (if needed) and parses the market dump into a Data snapshot.
// When refresh is true every file is re-downloaded even if cached. A nil
// client is allowed as long as all dump files are already present.
func Load(ctx context.Context, dataDir string, client *Client, refresh bool) (*Data, error) {
	for _, name := range []string{systemsFile, stationsFile, commoditiesFile, listingsFile} {
		path := filepath.Join(dataDir, name)
		if !refresh {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if client == nil {
			return nil, fmt.Errorf("dump file %s missing and no client configured", name)
		}
		logger.Info("DUMP", fmt.Sprintf("Downloading %s...", name))
		if err := client.FetchFile(ctx, name, path); err != nil {
			return nil, fmt.Errorf("download %s: %w", name, err)
		}
	}

	data := newData()

	logger.Info("DUMP", "Loading commodities...")
	if err := data.loadCommodities(dataDir); err != nil {
		return nil, err
	}
	logger.Info("DUMP", "Loading systems...")
	if err := data.loadSystems(dataDir); err != nil {
		return nil, err
	}
	logger.Info("DUMP", "Loading stations...")
	if err := data.loadStations(dataDir); err != nil {
		return nil, err
	}
	logger.Info("DUMP", "Loading listings...")
	listings, err := data.loadListings(dataDir)
	if err != nil {
		return nil, err
	}

	logger.Section("Snapshot")
	logger.Stats("Systems", len(data.Systems))
	logger.Stats("Stations", len(data.Stations))
	logger.Stats("Commodities", len(data.Commodities))
	logger.Stats("Listings", listings)
	return data, nil
}

func (d *Data) loadCommodities(dir string) error {
	return readJSONArray(dir, commoditiesFile, func(raw json.RawMessage) error {
		var c struct {
			ID           int64  `json:"id"`
			Name         string `json:"name"`
			AveragePrice *int64 `json:"average_price"`
		}
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		if c.ID == 0 || c.Name == "" {
			return nil
		}
		avg := int64(0)
		if c.AveragePrice != nil {
			avg = *c.AveragePrice
		}
		d.Commodities[c.ID] = &Commodity{ID: c.ID, Name: c.Name, AveragePrice: avg}
		d.CommodityByName[strings.ToLower(c.Name)] = c.ID
		return nil
	})
}

func (d *Data) loadSystems(dir string) error {
	return readJSONArray(dir, systemsFile, func(raw json.RawMessage) error {
		var s struct {
			ID          int64   `json:"id"`
			Name        string  `json:"name"`
			X           float64 `json:"x"`
			Y           float64 `json:"y"`
			Z           float64 `json:"z"`
			NeedsPermit bool    `json:"needs_permit"`
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s.ID == 0 || s.Name == "" {
			return nil
		}
		d.Systems[s.ID] = &System{
			ID: s.ID, Name: s.Name, NeedsPermit: s.NeedsPermit,
			X: s.X, Y: s.Y, Z: s.Z,
		}
		d.SystemByName[strings.ToLower(s.Name)] = s.ID
		d.Galaxy.SetPosition(s.ID, s.X, s.Y, s.Z)
		d.Galaxy.SetPermit(s.ID, s.NeedsPermit)
		return nil
	})
}

func (d *Data) loadStations(dir string) error {
	return readJSONArray(dir, stationsFile, func(raw json.RawMessage) error {
		var s struct {
			ID             int64    `json:"id"`
			Name           string   `json:"name"`
			SystemID       int64    `json:"system_id"`
			DistanceToStar *float64 `json:"distance_to_star"`
			HasMarket      *bool    `json:"has_market"`
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s.ID == 0 || s.SystemID == 0 {
			return nil
		}
		// Outposts without a market can never appear in a trade pair.
		if s.HasMarket != nil && !*s.HasMarket {
			return nil
		}
		dist := 0.0
		if s.DistanceToStar != nil {
			dist = *s.DistanceToStar
		}
		st := &Station{
			ID: s.ID, Name: s.Name, SystemID: s.SystemID,
			DistanceToStar: dist,
			Listings:       make(map[int64]Listing),
		}
		d.Stations[s.ID] = st
		d.StationsBySystem[s.SystemID] = append(d.StationsBySystem[s.SystemID], st)
		return nil
	})
}

// loadListings reads the listings CSV and attaches prices to stations.
// Returns the number of listings attached. Rows for unknown stations or
// commodities are skipped, matching how partial dumps behave in practice.
func (d *Data) loadListings(dir string) (int, error) {
	f, err := os.Open(filepath.Join(dir, listingsFile))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read %s header: %w", listingsFile, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"station_id", "commodity_id", "buy_price", "sell_price"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("%s: missing column %q", listingsFile, required)
		}
	}

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		stationID, err1 := strconv.ParseInt(rec[col["station_id"]], 10, 64)
		commodityID, err2 := strconv.ParseInt(rec[col["commodity_id"]], 10, 64)
		buy, err3 := strconv.ParseInt(rec[col["buy_price"]], 10, 64)
		sell, err4 := strconv.ParseInt(rec[col["sell_price"]], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		st, ok := d.Stations[stationID]
		if !ok {
			continue
		}
		if _, ok := d.Commodities[commodityID]; !ok {
			continue
		}
		st.Listings[commodityID] = Listing{BuyPrice: buy, SellPrice: sell}
		count++
	}
	for _, st := range d.Stations {
		st.FinalizeListings()
	}
	return count, nil
}

// readJSONArray streams a top-level JSON array from a dump file, invoking fn
// per element. Malformed elements are skipped rather than failing the load.
func readJSONArray(dir, name string, fn func(json.RawMessage) error) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if _, err := dec.Token(); err != nil { // opening '['
		return fmt.Errorf("parse %s: %w", name, err)
	}
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if err := fn(raw); err != nil {
			continue
		}
	}
	return nil
}
