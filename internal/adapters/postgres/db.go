package postgres

import (
    "context"
    "fmt"
    "strconv"
    "time"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/sethvargo/go-retry"

    "pincheck/internal/ports"
)

type DB struct {
    Pool *pgxpool.Pool
}

var (
    _ ports.TokenRepository  = (*DB)(nil)
    _ ports.ResultRepository = (*DB)(nil)
    _ ports.TokenCompactor   = (*DB)(nil)
)

// Connect opens a pool and pings it, retrying with exponential backoff while
// the database comes up.
func Connect(ctx context.Context, url string) (*DB, error) {
    cfg, err := pgxpool.ParseConfig(url)
    if err != nil {
        return nil, err
    }
    cfg.MaxConns = 10
    cfg.HealthCheckPeriod = 30 * time.Second

    var pool *pgxpool.Pool
    backoff := retry.WithMaxRetries(5, retry.NewExponential(250*time.Millisecond))
    err = retry.Do(ctx, backoff, func(ctx context.Context) error {
        p, err := pgxpool.NewWithConfig(ctx, cfg)
        if err != nil {
            return err
        }
        if err := p.Ping(ctx); err != nil {
            p.Close()
            return retry.RetryableError(err)
        }
        pool = p
        return nil
    })
    if err != nil {
        return nil, fmt.Errorf("connect postgres: %w", err)
    }
    return &DB{Pool: pool}, nil
}

func (db *DB) Close() { db.Pool.Close() }

// pinLockSpace namespaces the advisory locks taken per PIN code.
const pinLockSpace int32 = 0x50494e

// lockCode serializes writers for one code until the transaction ends.
func lockCode(ctx context.Context, tx pgx.Tx, code string) error {
    n, err := strconv.ParseInt(code, 10, 32)
    if err != nil {
        return fmt.Errorf("lock code %q: %w", code, err)
    }
    _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, pinLockSpace, int32(n))
    return err
}

// inTx runs fn inside a transaction, committing on success.
func (db *DB) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
    tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
    if err != nil { return err }
    defer func() {
        if err != nil { _ = tx.Rollback(ctx) } else { err = tx.Commit(ctx) }
    }()
    return fn(tx)
}
