// Package storage is the postgres persistence layer for users and leads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// postgres driver
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a requested row does not exist or is soft
// deleted.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert collides with a unique constraint.
var ErrDuplicate = errors.New("already exists")

// Storage bundles the stores backed by a single database handle.
type Storage struct {
	Users UserStore
	Leads LeadStore

	db *sqlx.DB
}

// Connect opens a postgres connection pool and wraps it in a Storage. The
// context bounds the initial connectivity check.
func Connect(ctx context.Context, databaseURL string) (*Storage, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return New(db), nil
}

// New wraps an existing database handle. Tests use this with a mock driver.
func New(db *sqlx.DB) *Storage {
	return &Storage{
		Users: NewUserStore(db),
		Leads: NewLeadStore(db),
		db:    db,
	}
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
