// Package history persists station readings to SQLite so river detail
// pages can show recent trends. The store is optional; the service runs
// without it when no database path is configured.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/moriverguide/river-conditions-service/internal/aggregator"
)

const schema = `
CREATE TABLE IF NOT EXISTS gauge_readings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	river_id TEXT NOT NULL,
	site_id TEXT NOT NULL,
	gage_height REAL,
	discharge REAL,
	status TEXT,
	observed_at DATETIME NOT NULL,
	UNIQUE(site_id, observed_at)
);
CREATE INDEX IF NOT EXISTS idx_gauge_readings_river ON gauge_readings(river_id);
CREATE INDEX IF NOT EXISTS idx_gauge_readings_observed ON gauge_readings(observed_at);`

// Reading is one persisted station observation.
type Reading struct {
	SiteID     string    `json:"siteId"`
	GageHeight *float64  `json:"gageHeight"`
	Discharge  *float64  `json:"discharge"`
	Status     string    `json:"status,omitempty"`
	ObservedAt time.Time `json:"observedAt"`
}

// Store is a SQLite-backed reading archive. It implements
// aggregator.Recorder.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordSnapshot inserts one row per station that reported a gage height.
// Rows are keyed by (site, observation time), so re-recording an unchanged
// reading is an idempotent upsert. Returns the number of rows written.
func (s *Store) RecordSnapshot(ctx context.Context, data map[string]aggregator.RiverConditions) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin history transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO gauge_readings(river_id, site_id, gage_height, discharge, status, observed_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(site_id, observed_at) DO UPDATE SET
			gage_height=excluded.gage_height,
			discharge=excluded.discharge,
			status=excluded.status`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	var written int
	for riverID, rc := range data {
		for _, st := range rc.Stations {
			if st.GageHeight == nil || st.LastUpdated == nil {
				continue
			}
			observedAt, err := time.Parse(time.RFC3339, *st.LastUpdated)
			if err != nil {
				s.logger.Warn("skipping reading with unparsable timestamp",
					"site", st.ID, "timestamp", *st.LastUpdated)
				continue
			}
			var status string
			if st.Status != nil {
				status = string(st.Status.Status)
			}
			if _, err := stmt.ExecContext(ctx, riverID, st.ID, st.GageHeight, st.Discharge, status, observedAt.UTC()); err != nil {
				tx.Rollback()
				return 0, fmt.Errorf("insert reading for site %s: %w", st.ID, err)
			}
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit history transaction: %w", err)
	}
	return written, nil
}

// RiverHistory returns a river's readings observed since the given time,
// newest first.
func (s *Store) RiverHistory(ctx context.Context, riverID string, since time.Time) ([]Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT site_id, gage_height, discharge, status, observed_at
		FROM gauge_readings
		WHERE river_id = ? AND observed_at >= ?
		ORDER BY observed_at DESC`, riverID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query river history: %w", err)
	}
	defer rows.Close()

	var readings []Reading
	for rows.Next() {
		var r Reading
		var status sql.NullString
		if err := rows.Scan(&r.SiteID, &r.GageHeight, &r.Discharge, &status, &r.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.Status = status.String
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// Prune deletes readings observed before the cutoff and returns the
// number of rows removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM gauge_readings WHERE observed_at < ?`, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}
