package ports

import (
    "context"
    "time"

    "pincheck/internal/domain"
)

// TokenRepository stores PIN tokens keyed by code.
type TokenRepository interface {
    // InsertToken stores tok unless its code is held by any stored token, in any
    // state, or by a stored result. Held codes yield domain.ErrCodeInUse. Only
    // compaction releases a code.
    InsertToken(ctx context.Context, tok domain.PinToken) error
    GetToken(ctx context.Context, code string) (tok domain.PinToken, found bool, err error)
}

// Admission is evaluated by a ResultRepository while the code is locked. tok is
// nil when no token exists for the code.
type Admission func(tok *domain.PinToken, hasResult bool) (linked bool, err error)

// ResultRepository stores scan results keyed by PIN code.
type ResultRepository interface {
    // RecordResult runs admit against the current token and result for
    // res.PinCode and, if admitted, stores res and marks the token consumed in
    // one atomic step. Concurrent calls for the same code are serialized.
    RecordResult(ctx context.Context, res domain.ScanResult, admit Admission) (domain.ScanResult, error)
    GetResult(ctx context.Context, code string) (res domain.ScanResult, found bool, err error)
    // ListRecent orders by ReceivedAt descending, then ID ascending.
    ListRecent(ctx context.Context, limit int) ([]domain.ScanResult, error)
}

// TokenCompactor evicts tokens that can no longer be consumed.
type TokenCompactor interface {
    // PurgeExpired deletes unconsumed tokens whose expiry is at or before cutoff.
    PurgeExpired(ctx context.Context, cutoff time.Time) (int, error)
}
