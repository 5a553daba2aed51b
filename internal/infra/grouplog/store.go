// Package grouplog records the chat groups the bot joins and leaves, so operators can find the
// group id to put into the notification config.
package grouplog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Entry is one recorded join or leave.
type Entry struct {
	ID         int64
	GroupID    string
	Kind       string
	IsRoom     bool
	RecordedAt time.Time
}

type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the sqlite file at path and applies the migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create group log directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open group log database: %w", err)
	}
	conn.SetMaxOpenConns(1) // sqlite allows a single writer; also keeps :memory: on one connection

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate group log database: %w", err)
	}

	return &Store{conn: conn}, nil
}

func Migrate(db *sql.DB) error {
	migrator := sqlmigrator.New(db, darwin.SqliteDialect{})

	return migrator.Migrate(sqlFiles, "sql")
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}

	query := `INSERT INTO group_events (group_id, kind, is_room, recorded_at) VALUES (?, ?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, query, e.GroupID, e.Kind, e.IsRoom, e.RecordedAt.UTC()); err != nil {
		return fmt.Errorf("failed to record group event: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, group_id, kind, is_room, recorded_at
		FROM group_events
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`

	rows, err := s.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query group events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Kind, &e.IsRoom, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group event: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
