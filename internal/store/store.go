// Package store persists probe records in a local SQLite database so the
// offline report tool can aggregate history without touching the sinks.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"pingwatch/internal/models"
)

// Store wraps sql.DB with the archive schema.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the archive database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive open failed: %w", err)
	}

	// WAL for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &Store{db: db}, nil
}

// InitSchema creates the archive tables.
func (s *Store) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS ping_records (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL,
        target_ip TEXT NOT NULL,
        hostname TEXT NOT NULL,
        target_group TEXT NOT NULL,
        status TEXT NOT NULL,
        latency_ms INTEGER NOT NULL,
        ttl INTEGER NOT NULL,
        ping_number INTEGER NOT NULL,
        pings_in_cycle INTEGER NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_ping_timestamp ON ping_records(timestamp);
    CREATE INDEX IF NOT EXISTS idx_ping_target ON ping_records(target_ip, hostname, timestamp);

    CREATE TABLE IF NOT EXISTS cycle_summaries (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL,
        target_ip TEXT NOT NULL,
        hostname TEXT NOT NULL,
        target_group TEXT NOT NULL,
        pings_sent INTEGER NOT NULL,
        pings_successful INTEGER NOT NULL,
        pings_failed INTEGER NOT NULL,
        packet_loss_pct REAL NOT NULL,
        avg_latency_ms REAL NOT NULL,
        min_latency_ms INTEGER NOT NULL,
        max_latency_ms INTEGER NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_summary_timestamp ON cycle_summaries(timestamp);
    CREATE INDEX IF NOT EXISTS idx_summary_target ON cycle_summaries(target_ip, hostname, timestamp);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("archive schema creation failed: %w", err)
	}

	return nil
}

// Name implements models.Sink.
func (s *Store) Name() string { return "archive" }

// Write inserts a cycle's records in one transaction. A record that fails
// to insert is skipped; the rest of the batch still commits.
func (s *Store) Write(ctx context.Context, records []models.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive transaction failed: %w", err)
	}

	var firstErr error

	for _, rec := range records {
		switch r := rec.(type) {
		case models.ProbeOutcome:
			_, err = tx.ExecContext(ctx, `
                INSERT INTO ping_records (timestamp, target_ip, hostname, target_group, status, latency_ms, ttl, ping_number, pings_in_cycle)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.Timestamp, r.TargetIP, r.Hostname, r.Group, r.Status, r.LatencyMS, r.TTL, r.PingNumber, r.PingsInCycle)
		case models.CycleSummary:
			_, err = tx.ExecContext(ctx, `
                INSERT INTO cycle_summaries (timestamp, target_ip, hostname, target_group, pings_sent, pings_successful, pings_failed, packet_loss_pct, avg_latency_ms, min_latency_ms, max_latency_ms)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.Timestamp, r.TargetIP, r.Hostname, r.Group, r.PingsSent, r.PingsSuccessful, r.PingsFailed, r.PacketLossPct, r.AvgLatencyMS, r.MinLatencyMS, r.MaxLatencyMS)
		default:
			continue
		}

		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive commit failed: %w", err)
	}

	if firstErr != nil {
		return fmt.Errorf("archive insert failed: %w", firstErr)
	}

	return nil
}

// Prune deletes rows older than the retention window.
func (s *Store) Prune(days int) error {
	if _, err := s.db.Exec(`DELETE FROM ping_records WHERE timestamp < datetime('now', '-' || ? || ' days')`, days); err != nil {
		return fmt.Errorf("archive prune failed: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM cycle_summaries WHERE timestamp < datetime('now', '-' || ? || ' days')`, days); err != nil {
		return fmt.Errorf("archive prune failed: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
