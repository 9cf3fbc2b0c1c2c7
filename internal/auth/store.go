package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"

	_ "github.com/lib/pq"  // Postgres driver.
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const storeOp = "auth.store"

const schema = `CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
)`

// ErrUnknownUser is returned by CredentialStore.PasswordHash for an unknown username
var ErrUnknownUser = errors.New("no such user")

// SQLStore keeps credentials in a users table on SQLite or Postgres
type SQLStore struct {
	db     *sql.DB
	driver string
}

var _ interfaces.CredentialStore = (*SQLStore)(nil)

// OpenSQLStore opens the database for driver ("sqlite" or "postgres") and creates the schema.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver == "sqlite" {
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a user. ErrUserExists is returned when the name is taken.
func (s *SQLStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO users(username, password_hash, created_at)
		VALUES(?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`), username, passwordHash, time.Now().UTC())
	if err != nil {
		return apperr.New(apperr.Network, storeOp, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.New(apperr.Network, storeOp, err)
	}
	if n == 0 {
		return ErrUserExists
	}
	return nil
}

// PasswordHash returns the stored bcrypt hash of username
func (s *SQLStore) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT password_hash FROM users WHERE username = ?`), username).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrUnknownUser
	}
	if err != nil {
		return "", apperr.New(apperr.Network, storeOp, err)
	}
	return hash, nil
}

// rebind rewrites ? placeholders to $n for postgres
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
