package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

type DB struct {
	x *sqlx.DB
}

// Open creates dataDir if needed and opens lifeboard.db inside it.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "lifeboard.db")
	x, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	d := &DB{x: x}
	if err := d.migrate(); err != nil {
		x.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS boards (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			board_id TEXT NOT NULL,
			type TEXT NOT NULL CHECK(type IN ('image','note','link')),
			content TEXT NOT NULL,
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			width REAL NOT NULL DEFAULT 200 CHECK(width >= 100),
			color TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_board ON items(board_id)`,
	}

	for _, m := range migrations {
		if _, err := d.x.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}

	_, err := d.x.Exec(
		"INSERT OR IGNORE INTO boards (id, name) VALUES (?, ?)",
		canvas.DefaultBoardID, canvas.DefaultBoardName,
	)
	if err != nil {
		return fmt.Errorf("seed default board: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.x.Close()
}
