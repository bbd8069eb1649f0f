// Package database owns the Postgres connection pool. A Gateway is constructed
// once in main and injected into every repo; there is no package-level pool.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/puddle/v2"
)

// ErrPoolClosed is returned when the gateway was never opened or has been closed.
var ErrPoolClosed = errors.New("database: connection pool is not initialized")

// ErrPoolExhausted is returned when no connection became free within the
// configured acquire timeout.
var ErrPoolExhausted = errors.New("database: connection pool exhausted")

// PoolConfig bounds the pool. Zero values fall back to the defaults below.
type PoolConfig struct {
	URL            string
	MinConns       int32
	MaxConns       int32
	AcquireTimeout time.Duration
}

const (
	defaultMinConns       = 1
	defaultMaxConns       = 20
	defaultAcquireTimeout = 5 * time.Second
)

// Gateway hands out one pooled connection per statement and releases it on every
// exit path. It satisfies the Exec/Query/QueryRow interface the repos accept.
type Gateway struct {
	mu             sync.RWMutex
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// Open builds the pool and verifies the database is reachable.
func Open(ctx context.Context, cfg PoolConfig) (*Gateway, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("database.Open: parse config: %w", err)
	}

	pcfg.MinConns = orDefault(cfg.MinConns, defaultMinConns)
	pcfg.MaxConns = orDefault(cfg.MaxConns, defaultMaxConns)
	if pcfg.MinConns > pcfg.MaxConns {
		return nil, fmt.Errorf("database.Open: min conns %d exceeds max conns %d", pcfg.MinConns, pcfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database.Open: ping: %w", err)
	}

	return NewGateway(pool, cfg.AcquireTimeout), nil
}

// NewGateway wraps an existing pool. Tests use it to share a pool opened by testutil.
func NewGateway(pool *pgxpool.Pool, acquireTimeout time.Duration) *Gateway {
	if acquireTimeout <= 0 {
		acquireTimeout = defaultAcquireTimeout
	}
	return &Gateway{pool: pool, acquireTimeout: acquireTimeout}
}

// Close releases every pooled connection. Later calls fail with ErrPoolClosed.
// The pool is detached under the lock and closed after it, so Stat and new
// acquires see a closed gateway at once instead of waiting for in-flight
// connections to be returned.
func (g *Gateway) Close() {
	g.mu.Lock()
	pool := g.pool
	g.pool = nil
	g.mu.Unlock()
	if pool != nil {
		pool.Close()
	}
}

// Ping checks connectivity through a pooled connection.
func (g *Gateway) Ping(ctx context.Context) error {
	conn, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return conn.Ping(ctx)
}

// Stat returns a snapshot of pool usage, or nil when the gateway is closed.
func (g *Gateway) Stat() *pgxpool.Stat {
	if g == nil {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pool == nil {
		return nil
	}
	return g.pool.Stat()
}

// Exec runs a statement that returns no rows.
func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	conn, err := g.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()
	return conn.Exec(ctx, sql, args...)
}

// Query runs a statement returning rows. The connection is released when the
// returned rows are closed, so callers must always Close them.
func (g *Gateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &releasingRows{Rows: rows, conn: conn}, nil
}

// QueryRow runs a statement expected to return at most one row. The connection
// is released once Scan returns.
func (g *Gateway) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := g.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &releasingRow{row: conn.QueryRow(ctx, sql, args...), conn: conn}
}

// acquire obtains a connection, bounded by the acquire timeout. A timeout that
// fires while the caller's own context is still live means the pool is saturated.
func (g *Gateway) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if g == nil {
		return nil, ErrPoolClosed
	}
	g.mu.RLock()
	pool := g.pool
	g.mu.RUnlock()
	if pool == nil {
		return nil, ErrPoolClosed
	}

	actx, cancel := context.WithTimeout(ctx, g.acquireTimeout)
	defer cancel()

	conn, err := pool.Acquire(actx)
	if err != nil {
		// Close may have run between reading g.pool and Acquire.
		if errors.Is(err, puddle.ErrClosedPool) {
			return nil, ErrPoolClosed
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrPoolExhausted, g.acquireTimeout)
		}
		return nil, err
	}
	return conn, nil
}

type releasingRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *releasingRow) Scan(dest ...any) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

type releasingRows struct {
	pgx.Rows
	conn *pgxpool.Conn
	once sync.Once
}

func (r *releasingRows) Close() {
	r.Rows.Close()
	r.once.Do(r.conn.Release)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func orDefault(v, def int32) int32 {
	if v <= 0 {
		return def
	}
	return v
}
