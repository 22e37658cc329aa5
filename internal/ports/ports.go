package ports

import (
    "context"

    "pincheck/internal/domain"
)

// Issuer mints PINs and answers liveness queries.
type Issuer interface {
    Issue(ctx context.Context, ownerID string) (domain.PinToken, error)
    Status(ctx context.Context, code string) (domain.PinState, error)
    // Lookup returns the stored token alongside its effective state. The token
    // is the zero value when the state is PinUnknown.
    Lookup(ctx context.Context, code string) (domain.PinToken, domain.PinState, error)
}

// Ledger ingests findings documents and serves stored results.
type Ledger interface {
    Submit(ctx context.Context, sub domain.Submission) (domain.ScanResult, error)
    Get(ctx context.Context, code string) (domain.ScanResult, error)
    ListRecent(ctx context.Context, limit int) ([]domain.ScanResult, error)
}

// Scorer turns a decoded findings document into a risk assessment.
type Scorer interface {
    Score(findings map[string]any) domain.Assessment
}

// Gateway is the read path used by the requester while polling.
type Gateway interface {
    CheckPin(ctx context.Context, code string) (domain.PinCheck, error)
    FetchResult(ctx context.Context, code string) (domain.ResultLookup, error)
    Recent(ctx context.Context, limit int) ([]domain.ScanResult, error)
}
