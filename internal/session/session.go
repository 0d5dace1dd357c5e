// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the analysis results of one invocation in an
// in-process SQLite database. Nothing is written to disk; closing the
// session discards every result.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ErrDuplicate is returned by Append when a result for the same document
// name is already in the session.
var ErrDuplicate = errors.New("document already analyzed in this session")

// Session is an ordered collection of AnalysisResults keyed by document
// name. It is owned by a single caller and is not safe for concurrent use.
type Session struct {
	db *sql.DB
}

// New opens an empty in-memory session.
func New() (*Session, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Session{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database and discards all results.
func (s *Session) Close() error {
	return s.db.Close()
}

func (s *Session) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS results (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		analyzed_at TEXT NOT NULL,
		payload TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Append adds r at the end of the session. The document text is not kept.
func (s *Session) Append(r types.AnalysisResult) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling result %s: %w", r.Document.ID, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO results (name, analyzed_at, payload) VALUES (?, ?, ?)`,
		r.Document.ID, time.Now().UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%s: %w", r.Document.ID, ErrDuplicate)
		}
		return fmt.Errorf("inserting result %s: %w", r.Document.ID, err)
	}
	return nil
}

// Contains reports whether a result for the named document exists.
func (s *Session) Contains(name string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM results WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("checking %s: %w", name, err)
	}
	return n > 0, nil
}

// List returns every result in insertion order.
func (s *Session) List() ([]types.AnalysisResult, error) {
	rows, err := s.db.Query(`SELECT payload FROM results ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var out []types.AnalysisResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		var r types.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Len returns the number of results.
func (s *Session) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting results: %w", err)
	}
	return n, nil
}
