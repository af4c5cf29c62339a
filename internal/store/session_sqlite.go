package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteSession stores the session in a small key/value table of a SQLite file.
type SQLiteSession struct {
	Path string

	db *sql.DB
}

func NewSQLiteSession(path string) *SQLiteSession {
	return &SQLiteSession{Path: path}
}

func (s *SQLiteSession) Init(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	if strings.TrimSpace(s.Path) == "" {
		return errors.New("session path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return err
	}
	// busy_timeout avoids "database is locked" when a CLI command runs next to the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate session db: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteSession) Read(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", errors.New("session not initialized")
	}
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, SessionKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *SQLiteSession) Write(ctx context.Context, userName string) error {
	if s.db == nil {
		return errors.New("session not initialized")
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return s.Clear(ctx)
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, SessionKey, userName)
	return err
}

func (s *SQLiteSession) Clear(ctx context.Context) error {
	if s.db == nil {
		return errors.New("session not initialized")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, SessionKey)
	return err
}

func (s *SQLiteSession) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
