package db

import (
	"fmt"
	"strconv"

	"ed-tradepair/internal/config"
)

// LoadConfig reads the last-used settings from SQLite. If empty, returns
// defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["origin_system"]; ok {
		cfg.OriginSystem = v
	}
	if v, ok := m["source_radius"]; ok {
		cfg.SourceRadius, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["destination_radius"]; ok {
		cfg.DestinationRadius, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["top_routes"]; ok {
		cfg.TopRoutes, _ = strconv.Atoi(v)
	}
	if v, ok := m["workers"]; ok {
		cfg.Workers, _ = strconv.Atoi(v)
	}
	if v, ok := m["parallel_threshold"]; ok {
		cfg.ParallelThreshold, _ = strconv.Atoi(v)
	}
	if v, ok := m["include_permit"]; ok {
		cfg.IncludePermit, _ = strconv.ParseBool(v)
	}
	if v, ok := m["keep_unprofitable"]; ok {
		cfg.KeepUnprofitable, _ = strconv.ParseBool(v)
	}
	if v, ok := m["data_dir"]; ok {
		cfg.DataDir = v
	}
	if v, ok := m["dump_base_url"]; ok {
		cfg.DumpBaseURL = v
	}

	return cfg
}

// SaveConfig writes the settings to SQLite (upsert all fields).
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"origin_system":      cfg.OriginSystem,
		"source_radius":      fmt.Sprintf("%g", cfg.SourceRadius),
		"destination_radius": fmt.Sprintf("%g", cfg.DestinationRadius),
		"top_routes":         strconv.Itoa(cfg.TopRoutes),
		"workers":            strconv.Itoa(cfg.Workers),
		"parallel_threshold": strconv.Itoa(cfg.ParallelThreshold),
		"include_permit":     strconv.FormatBool(cfg.IncludePermit),
		"keep_unprofitable":  strconv.FormatBool(cfg.KeepUnprofitable),
		"data_dir":           cfg.DataDir,
		"dump_base_url":      cfg.DumpBaseURL,
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for k, v := range pairs {
		if _, err := stmt.Exec(k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
