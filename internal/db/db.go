package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ed-tradepair/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func dbPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "tradepair.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "tradepair.db")
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open() (*DB, error) {
	path := dbPath()
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS scan_history (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id       TEXT NOT NULL,
				timestamp    TEXT NOT NULL,
				origin       TEXT NOT NULL,
				sources      INTEGER NOT NULL,
				destinations INTEGER NOT NULL,
				pairs        INTEGER NOT NULL,
				count        INTEGER NOT NULL,
				top_profit   INTEGER NOT NULL,
				duration_ms  INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_scan_history_ts ON scan_history(timestamp);

			CREATE TABLE IF NOT EXISTS route_results (
				id                INTEGER PRIMARY KEY AUTOINCREMENT,
				scan_id           INTEGER NOT NULL REFERENCES scan_history(id),
				source_station_id INTEGER,
				source_station    TEXT,
				source_system     TEXT,
				dest_station_id   INTEGER,
				dest_station      TEXT,
				dest_system       TEXT,
				commodity_id      INTEGER,
				commodity         TEXT,
				buy_price         INTEGER,
				sell_price        INTEGER,
				profit_per_unit   INTEGER,
				distance_ly       REAL
			);
			CREATE INDEX IF NOT EXISTS idx_route_scan ON route_results(scan_id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	return nil
}
