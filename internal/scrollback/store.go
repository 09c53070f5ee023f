// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/scrollback/store.go
// Summary: SQLite-backed line store for scrollable pane content.
//
// The store is written by a capture goroutine and read by the UI goroutine:
//   - Append inserts a batch in one transaction and trims to the line cap
//   - Window reads a contiguous range for the visible viewport
//   - Changed signals readers that new lines arrived

package scrollback

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    styled TEXT
);
`

// Span colors a rune range [Start, End) of a line.
type Span struct {
	Start     int    `json:"s"`
	End       int    `json:"e"`
	Color     uint32 `json:"c,omitempty"` // 0xRRGGBB, valid when HasColor
	HasColor  bool   `json:"hc,omitempty"`
	Bold      bool   `json:"b,omitempty"`
	Italic    bool   `json:"i,omitempty"`
	Underline bool   `json:"u,omitempty"`
}

// Line is one row of content.
type Line struct {
	Text  string
	Spans []Span
}

// Store keeps lines in SQLite. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	db       *sql.DB
	maxLines int
	count    int

	changed chan struct{}
}

// Open opens (or creates) the store at path. An empty path keeps the lines
// in memory. maxLines <= 0 disables trimming.
func Open(path string, maxLines int) (*Store, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=temp_store(MEMORY)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Store{
		db:       db,
		maxLines: maxLines,
		changed:  make(chan struct{}, 1),
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM lines").Scan(&s.count); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to count lines: %w", err)
	}
	if path != "" {
		log.Printf("[SCROLLBACK] Opened %s (%d lines)", path, s.count)
	}
	return s, nil
}

// Append stores lines in order, trimming the oldest past the line cap.
func (s *Store) Append(lines ...Line) error {
	if len(lines) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return fmt.Errorf("scrollback: store closed")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO lines (text, styled) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		var styled interface{}
		if len(line.Spans) > 0 {
			data, err := json.Marshal(line.Spans)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to encode spans: %w", err)
			}
			styled = string(data)
		}
		if _, err := stmt.Exec(line.Text, styled); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert line: %w", err)
		}
	}

	count := s.count + len(lines)
	if s.maxLines > 0 && count > s.maxLines {
		excess := count - s.maxLines
		if _, err := tx.Exec("DELETE FROM lines WHERE id IN (SELECT id FROM lines ORDER BY id LIMIT ?)", excess); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to trim lines: %w", err)
		}
		count = s.maxLines
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lines: %w", err)
	}
	s.count = count

	select {
	case s.changed <- struct{}{}:
	default:
	}
	return nil
}

// Count returns the number of stored lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Window returns up to n lines starting at offset (0 = oldest kept line).
func (s *Store) Window(offset, n int) ([]Line, error) {
	if n <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("scrollback: store closed")
	}

	rows, err := s.db.Query("SELECT text, styled FROM lines ORDER BY id LIMIT ? OFFSET ?", n, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query window: %w", err)
	}
	defer rows.Close()

	out := make([]Line, 0, n)
	for rows.Next() {
		var (
			line   Line
			styled sql.NullString
		)
		if err := rows.Scan(&line.Text, &styled); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		if styled.Valid && styled.String != "" {
			if err := json.Unmarshal([]byte(styled.String), &line.Spans); err != nil {
				log.Printf("[SCROLLBACK] Dropping malformed spans: %v", err)
				line.Spans = nil
			}
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// Changed is signalled (coalesced) after every successful Append.
func (s *Store) Changed() <-chan struct{} {
	return s.changed
}

// Close releases the database. Further calls fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
