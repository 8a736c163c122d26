package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// SessionStore persists the token and user together.
type SessionStore interface {
	Load(ctx context.Context) (string, *User, error)
	Save(ctx context.Context, token string, user *User) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the session in a key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and creates if needed) the session database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init session db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored session. A missing or partial session yields
// ("", nil, nil).
func (s *SQLiteStore) Load(ctx context.Context) (string, *User, error) {
	token, err := s.get(ctx, tokenKey)
	if err != nil {
		return "", nil, err
	}
	rawUser, err := s.get(ctx, userKey)
	if err != nil {
		return "", nil, err
	}
	if token == nil || rawUser == nil {
		return "", nil, nil
	}

	var user User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return "", nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return string(token), &user, nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string, user *User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", tokenKey, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, userKey, rawUser); err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", userKey, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, tokenKey, userKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}
