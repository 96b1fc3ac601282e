// Package warehouse provides a read-only Postgres client for the curated
// inflation mart: the fact and intermediate tables the dashboard reads.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"infla/internal/config"

	_ "github.com/lib/pq" // register postgres driver
)

const (
	connectTimeout = 5 * time.Second
	queryTimeout   = 30 * time.Second
)

var (
	// ErrNotConfigured indicates required connection settings are missing.
	ErrNotConfigured = errors.New("warehouse: not configured")
	// ErrUnreachable indicates the warehouse could not be dialed or pinged.
	ErrUnreachable = errors.New("warehouse: unreachable")
	// ErrQuery indicates a query or row scan failed.
	ErrQuery = errors.New("warehouse: query failed")
)

// Client reads from the warehouse. It never writes.
type Client struct {
	db     *sql.DB
	schema string
}

// Open validates the connection settings, dials the warehouse, and verifies
// the connection with a bounded ping. Missing settings fail fast with
// ErrNotConfigured before any dial is attempted.
func Open(ctx context.Context, cfg config.WarehouseConfig) (*Client, error) {
	if cfg.Host == "" || cfg.Database == "" || cfg.User == "" {
		return nil, ErrNotConfigured
	}

	db, err := sql.Open("postgres", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	return &Client{db: db, schema: schema}, nil
}

// Close releases the database handle.
func (c *Client) Close() error {
	return c.db.Close()
}

// dsn builds a lib/pq keyword/value connection string.
func dsn(cfg config.WarehouseConfig) string {
	parts := []string{
		"host=" + cfg.Host,
		fmt.Sprintf("port=%d", cfg.Port),
		"dbname=" + cfg.Database,
		"user=" + cfg.User,
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+cfg.Password)
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	parts = append(parts, "sslmode="+sslmode)
	return strings.Join(parts, " ")
}
