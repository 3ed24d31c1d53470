// Package audit persists one row per connection lifecycle event (accepted,
// negotiation failed, open with its wire mode, closed) to a local SQLite
// database for operational forensics. It is diagnostic only: it does not
// persist entity state or session content.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Event is one row of the connection audit trail.
type Event struct {
	ID           int64
	ConnectionID string
	RemoteAddr   string
	Stage        string
	Detail       string
	Timestamp    int64
}

// Log wraps a SQLite-backed append-only event store.
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite file at path and ensures
// the audit schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: enable WAL mode: %w", err)
	}

	l := &Log{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS connection_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		connection_id TEXT NOT NULL,
		remote_addr TEXT NOT NULL,
		stage TEXT NOT NULL,
		detail TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_connection_events_connection ON connection_events(connection_id, created_at);
	`
	_, err := l.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("audit: create schema: %w", err)
	}
	return nil
}

// Record appends one lifecycle event. connectionID identifies the socket
// across its lifetime; stage is a short label (e.g. "accepted",
// "negotiation_failed", "open", "closed").
func (l *Log) Record(connectionID, remoteAddr, stage, detail string) error {
	_, err := l.db.Exec(
		`INSERT INTO connection_events (connection_id, remote_addr, stage, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		connectionID, remoteAddr, stage, detail, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	return nil
}

// Recent returns the most recent n events, newest first.
func (l *Log) Recent(n int) ([]Event, error) {
	rows, err := l.db.Query(
		`SELECT id, connection_id, remote_addr, stage, detail, created_at
		 FROM connection_events ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.ConnectionID, &e.RemoteAddr, &e.Stage, &detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("audit: scan event: %w", err)
		}
		e.Detail = detail.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
