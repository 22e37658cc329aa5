package postgres

import (
    "context"
    "encoding/json"
    "errors"

    "github.com/jackc/pgx/v5"

    "pincheck/internal/domain"
    "pincheck/internal/ports"
)

const resultColumns = `id, pin_code, received_at, raw_findings::text, risk_score, risk_tier, linked, source_addr, hostname, os`

func scanResult(row rowScanner) (domain.ScanResult, error) {
    var (
        r    domain.ScanResult
        raw  string
        tier string
    )
    err := row.Scan(&r.ID, &r.PinCode, &r.ReceivedAt, &raw, &r.RiskScore, &tier, &r.Linked, &r.SourceAddr, &r.Hostname, &r.OS)
    r.RawFindings = json.RawMessage(raw)
    r.RiskTier = domain.RiskTier(tier)
    return r, err
}

// ResultRepository

func (db *DB) RecordResult(ctx context.Context, res domain.ScanResult, admit ports.Admission) (domain.ScanResult, error) {
    err := db.inTx(ctx, func(tx pgx.Tx) error {
        if err := lockCode(ctx, tx, res.PinCode); err != nil {
            return err
        }

        var tok *domain.PinToken
        t, err := scanToken(tx.QueryRow(ctx, `SELECT `+tokenColumns+` FROM pin_tokens WHERE code = $1`, res.PinCode))
        switch {
        case err == nil:
            tok = &t
        case !errors.Is(err, pgx.ErrNoRows):
            return err
        }

        var hasResult bool
        if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM scan_results WHERE pin_code = $1)`, res.PinCode).Scan(&hasResult); err != nil {
            return err
        }

        linked, err := admit(tok, hasResult)
        if err != nil {
            return err
        }
        res.Linked = linked

        if _, err := tx.Exec(ctx, `
            INSERT INTO scan_results (id, pin_code, received_at, raw_findings, risk_score, risk_tier, linked, source_addr, hostname, os)
            VALUES ($1, $2, $3, $4::json, $5, $6, $7, $8, $9, $10)
        `, res.ID, res.PinCode, res.ReceivedAt, string(res.RawFindings), res.RiskScore, string(res.RiskTier),
            res.Linked, res.SourceAddr, res.Hostname, res.OS); err != nil {
            return err
        }

        if tok != nil {
            if _, err := tx.Exec(ctx, `
                UPDATE pin_tokens SET consumed_at = $2, linked_result_id = $3 WHERE code = $1
            `, res.PinCode, res.ReceivedAt, res.ID); err != nil {
                return err
            }
        }
        return nil
    })
    if err != nil {
        return domain.ScanResult{}, err
    }
    return res, nil
}

func (db *DB) GetResult(ctx context.Context, code string) (domain.ScanResult, bool, error) {
    res, err := scanResult(db.Pool.QueryRow(ctx, `SELECT `+resultColumns+` FROM scan_results WHERE pin_code = $1`, code))
    if errors.Is(err, pgx.ErrNoRows) {
        return domain.ScanResult{}, false, nil
    }
    if err != nil {
        return domain.ScanResult{}, false, err
    }
    return res, true, nil
}

func (db *DB) ListRecent(ctx context.Context, limit int) ([]domain.ScanResult, error) {
    out := []domain.ScanResult{}
    if limit <= 0 {
        return out, nil
    }
    rows, err := db.Pool.Query(ctx, `
        SELECT `+resultColumns+` FROM scan_results
        ORDER BY received_at DESC, id ASC
        LIMIT $1
    `, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        res, err := scanResult(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}
