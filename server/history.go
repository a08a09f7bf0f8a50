package server

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// createdAtLayout pads nanoseconds to a fixed width so rows within
// the same second still order correctly under the text ORDER BY.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// History is the SQLite-backed render history. Only metadata is
// stored; source documents never touch disk.
type History struct {
	db *sql.DB
}

// RenderRecord is one row of render metadata.
type RenderRecord struct {
	ID          string    `json:"id"`
	ConnID      string    `json:"conn_id"`
	CreatedAt   time.Time `json:"created_at"`
	DurationMS  float64   `json:"duration_ms"`
	OutputBytes int       `json:"output_bytes"`
	ErrorCount  int       `json:"error_count"`
}

// OpenHistory opens (or creates) the history database at the given
// path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS renders (
		id TEXT PRIMARY KEY,
		conn_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		duration_ms REAL NOT NULL,
		output_bytes INTEGER NOT NULL,
		error_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_renders_conn ON renders(conn_id);
	CREATE INDEX IF NOT EXISTS idx_renders_created ON renders(created_at);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Record inserts one render record.
func (h *History) Record(rec RenderRecord) error {
	_, err := h.db.Exec(
		`INSERT INTO renders (id, conn_id, created_at, duration_ms, output_bytes, error_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ConnID, rec.CreatedAt.UTC().Format(createdAtLayout),
		rec.DurationMS, rec.OutputBytes, rec.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("record render: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (h *History) Recent(limit int) ([]RenderRecord, error) {
	rows, err := h.db.Query(
		`SELECT id, conn_id, created_at, duration_ms, output_bytes, error_count
		 FROM renders ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query renders: %w", err)
	}
	defer rows.Close()

	var records []RenderRecord
	for rows.Next() {
		var rec RenderRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.ConnID, &created, &rec.DurationMS, &rec.OutputBytes, &rec.ErrorCount); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		if ts, err := time.Parse(createdAtLayout, created); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
