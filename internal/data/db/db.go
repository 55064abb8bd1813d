// Package db opens the local sqlite database used for notification history.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "qaeval.db"

// OpenOptions tunes the sqlite connection.
type OpenOptions struct {
	// BusyTimeout is how long sqlite waits on a locked database before failing.
	BusyTimeout time.Duration
	// MaxOpenConns caps the pool. sqlite serializes writers so this stays small.
	MaxOpenConns int
	// PingAttempts is how many times Open pings before giving up.
	PingAttempts int
}

// DefaultOpenOptions returns the options used when config does not override them.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 2,
		PingAttempts: 3,
	}
}

// DB wraps the sqlite connection pool.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates dataDir if needed, opens qaeval.db inside it and applies
// pending migrations.
func Open(dataDir string, opts OpenOptions) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	defaults := DefaultOpenOptions()
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = defaults.BusyTimeout
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = defaults.MaxOpenConns
	}
	if opts.PingAttempts <= 0 {
		opts.PingAttempts = defaults.PingAttempts
	}

	path := filepath.Join(dataDir, FileName)
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		path, opts.BusyTimeout.Milliseconds())

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(opts.MaxOpenConns)

	if err := pingWithRetry(conn, opts.PingAttempts); err != nil {
		_ = conn.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrateUp(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &DB{conn: conn, path: path}, nil
}

func pingWithRetry(conn *sql.DB, attempts int) error {
	var err error
	backoff := 50 * time.Millisecond
	for i := range attempts {
		if err = conn.Ping(); err == nil {
			return nil
		}
		log.Debug().Err(err).Int("attempt", i+1).Msg("database ping failed")
		time.Sleep(backoff)
		backoff *= 2
	}
	return fmt.Errorf("ping database after %d attempts: %w", attempts, err)
}

// Conn returns the underlying pool.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close closes the pool.
func (d *DB) Close() error {
	return d.conn.Close()
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (d *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return inTx(ctx, d.conn, fn)
}
