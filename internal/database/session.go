package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is a scratch database that lives for one run of the program.
// Close removes it from disk.
type Session struct {
	DB  *sql.DB
	dir string
}

// OpenSession creates a fresh migrated database under baseDir (the system
// temp dir when empty).
func OpenSession(baseDir string) (*Session, error) {
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o700); err != nil {
			return nil, fmt.Errorf("mkdir session base: %w", err)
		}
	}
	dir, err := os.MkdirTemp(baseDir, "labdesk-session-")
	if err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	path := filepath.Join(dir, "session.db")

	if err := RunMigrations(path); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	db, err := Open(path)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("open session db: %w", err)
	}
	return &Session{DB: db, dir: dir}, nil
}

// Dir is the directory holding the session database.
func (s *Session) Dir() string { return s.dir }

// Close closes the database and deletes its directory.
func (s *Session) Close() error {
	return errors.Join(s.DB.Close(), os.RemoveAll(s.dir))
}
