package db

import (
	"database/sql"
	"fmt"
	"time"
)

// LocalClient is the visit client name for the local terminal.
const LocalClient = "local"

// visitLayout is fixed-width so visited_at sorts chronologically as text.
const visitLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordVisit stores a visit for client at t.
func (db *DB) RecordVisit(client string, t time.Time) error {
	if client == "" {
		client = LocalClient
	}
	_, err := db.Exec(
		`INSERT INTO visits (client, visited_at) VALUES (?, ?)`,
		client, t.UTC().Format(visitLayout),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// LastVisit returns the most recent visit for client. ok is false when the
// client has never visited.
func (db *DB) LastVisit(client string) (t time.Time, ok bool, err error) {
	if client == "" {
		client = LocalClient
	}
	var raw string
	err = db.QueryRow(
		`SELECT visited_at FROM visits WHERE client = ? ORDER BY visited_at DESC, id DESC LIMIT 1`,
		client,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last visit: %w", err)
	}
	t, err = time.Parse(visitLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse visit time: %w", err)
	}
	return t.Local(), true, nil
}

// CountVisits returns how many visits client has made.
func (db *DB) CountVisits(client string) (int, error) {
	if client == "" {
		client = LocalClient
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM visits WHERE client = ?`, client).Scan(&n); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}
