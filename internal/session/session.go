// Package session persists the CLI login: the user ID and the vendor ID resolved for it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sessionFile = "session.db"

type Session struct {
	UserID     string    `json:"userId"`
	VendorID   string    `json:"vendorId,omitempty"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

type Store struct {
	db *sql.DB
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wedmarket"), nil
}

func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFile), nil
}

// Open opens the session database at path, creating it and its directory when missing.
// An empty path selects DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	createTable := `
CREATE TABLE IF NOT EXISTS session (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  user_id TEXT NOT NULL,
  vendor_id TEXT,
  logged_in_at TEXT NOT NULL
);`

	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when nobody is logged in.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT user_id, COALESCE(vendor_id, ''), logged_in_at FROM session WHERE id = 1`)

	var sess Session
	var loggedIn string
	if err := row.Scan(&sess.UserID, &sess.VendorID, &loggedIn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339, loggedIn)
	if err != nil {
		return nil, fmt.Errorf("invalid session timestamp %q: %w", loggedIn, err)
	}
	sess.LoggedInAt = parsed
	return &sess, nil
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, sess Session) error {
	sess.UserID = strings.TrimSpace(sess.UserID)
	if sess.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if sess.LoggedInAt.IsZero() {
		sess.LoggedInAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO session (id, user_id, vendor_id, logged_in_at) VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, vendor_id = excluded.vendor_id, logged_in_at = excluded.logged_in_at`,
		sess.UserID,
		nullable(strings.TrimSpace(sess.VendorID)),
		sess.LoggedInAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
