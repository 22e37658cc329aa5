package postgres

import (
    "context"
    "database/sql"
    "embed"
    "fmt"

    _ "github.com/jackc/pgx/v5/stdlib"
    "github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs a goose command (up, down, status, version, ...) against url
// using the embedded migrations.
func Migrate(ctx context.Context, url string, logger goose.Logger, command string, args ...string) error {
    db, err := sql.Open("pgx", url)
    if err != nil {
        return err
    }
    defer db.Close()

    goose.SetBaseFS(migrations)
    if logger != nil {
        goose.SetLogger(logger)
    }
    if err := goose.SetDialect("postgres"); err != nil {
        return err
    }
    if err := goose.RunContext(ctx, command, db, "migrations", args...); err != nil {
        return fmt.Errorf("goose %s: %w", command, err)
    }
    return nil
}
