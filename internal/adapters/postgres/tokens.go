package postgres

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5"

    "pincheck/internal/domain"
)

const tokenColumns = `code, owner_id, issued_at, expires_at, consumed_at, linked_result_id`

type rowScanner interface {
    Scan(dest ...any) error
}

func scanToken(row rowScanner) (domain.PinToken, error) {
    var t domain.PinToken
    err := row.Scan(&t.Code, &t.OwnerID, &t.IssuedAt, &t.ExpiresAt, &t.ConsumedAt, &t.LinkedResultID)
    return t, err
}

// TokenRepository

func (db *DB) InsertToken(ctx context.Context, tok domain.PinToken) error {
    return db.inTx(ctx, func(tx pgx.Tx) error {
        if err := lockCode(ctx, tx, tok.Code); err != nil {
            return err
        }

        var held bool
        err := tx.QueryRow(ctx, `
            SELECT EXISTS (SELECT 1 FROM scan_results WHERE pin_code = $1)
                OR EXISTS (SELECT 1 FROM pin_tokens WHERE code = $1)
        `, tok.Code).Scan(&held)
        if err != nil { return err }
        if held {
            return domain.ErrCodeInUse
        }

        _, err = tx.Exec(ctx, `
            INSERT INTO pin_tokens (code, owner_id, issued_at, expires_at)
            VALUES ($1, $2, $3, $4)
        `, tok.Code, tok.OwnerID, tok.IssuedAt, tok.ExpiresAt)
        return err
    })
}

func (db *DB) GetToken(ctx context.Context, code string) (domain.PinToken, bool, error) {
    tok, err := scanToken(db.Pool.QueryRow(ctx, `SELECT `+tokenColumns+` FROM pin_tokens WHERE code = $1`, code))
    if errors.Is(err, pgx.ErrNoRows) {
        return domain.PinToken{}, false, nil
    }
    if err != nil {
        return domain.PinToken{}, false, err
    }
    return tok, true, nil
}

// TokenCompactor

func (db *DB) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
    tag, err := db.Pool.Exec(ctx, `
        DELETE FROM pin_tokens WHERE consumed_at IS NULL AND expires_at <= $1
    `, cutoff)
    if err != nil {
        return 0, err
    }
    return int(tag.RowsAffected()), nil
}
