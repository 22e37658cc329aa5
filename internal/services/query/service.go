package query

import (
    "context"
    "errors"

    "pincheck/internal/domain"
    "pincheck/internal/ports"
)

const (
    DefaultRecentLimit = 20
    MaxRecentLimit     = 100
)

// Service composes issuer state and ledger contents for requesters polling
// by PIN. It never mutates either.
type Service struct {
    pins         ports.Issuer
    ledger       ports.Ledger
    defaultLimit int
    maxLimit     int
}

var _ ports.Gateway = (*Service)(nil)

type Option func(*Service)

// WithLimits overrides the default and maximum page size for Recent.
// Non-positive values keep the current setting.
func WithLimits(def, max int) Option {
    return func(s *Service) {
        if max > 0 {
            s.maxLimit = max
        }
        if def > 0 {
            s.defaultLimit = def
        }
    }
}

func New(pins ports.Issuer, ledger ports.Ledger, opts ...Option) *Service {
    s := &Service{pins: pins, ledger: ledger, defaultLimit: DefaultRecentLimit, maxLimit: MaxRecentLimit}
    for _, opt := range opts {
        opt(s)
    }
    s.defaultLimit = min(s.defaultLimit, s.maxLimit)
    return s
}

func (s *Service) CheckPin(ctx context.Context, code string) (domain.PinCheck, error) {
    out := domain.PinCheck{Code: code, State: domain.PinUnknown}
    if !domain.ValidCode(code) {
        return out, nil
    }
    tok, state, err := s.pins.Lookup(ctx, code)
    if err != nil {
        return out, err
    }
    hasResult, err := s.hasResult(ctx, code)
    if err != nil {
        return out, err
    }
    out.State = state
    out.HasResult = hasResult
    if state != domain.PinUnknown {
        out.Exists = true
        out.Token = &tok
    }
    return out, nil
}

// FetchResult returns a stored result when there is one, even for codes that
// were never issued. Otherwise a live or consumed token means the upload is
// still pending and an expired one means it never will arrive.
func (s *Service) FetchResult(ctx context.Context, code string) (domain.ResultLookup, error) {
    if !domain.ValidCode(code) {
        return domain.ResultLookup{Outcome: domain.FetchNotFound}, nil
    }
    res, err := s.ledger.Get(ctx, code)
    switch {
    case err == nil:
        return domain.ResultLookup{Outcome: domain.FetchFound, Result: &res}, nil
    case !errors.Is(err, domain.ErrNotFound):
        return domain.ResultLookup{}, err
    }

    state, err := s.pins.Status(ctx, code)
    if err != nil {
        return domain.ResultLookup{}, err
    }
    switch state {
    case domain.PinActive, domain.PinConsumed:
        return domain.ResultLookup{Outcome: domain.FetchPending}, nil
    case domain.PinExpired:
        return domain.ResultLookup{Outcome: domain.FetchExpired}, nil
    default:
        return domain.ResultLookup{Outcome: domain.FetchNotFound}, nil
    }
}

// Recent returns the newest results. A non-positive limit selects the default
// and larger requests are capped.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.ScanResult, error) {
    if limit <= 0 {
        limit = s.defaultLimit
    }
    if limit > s.maxLimit {
        limit = s.maxLimit
    }
    return s.ledger.ListRecent(ctx, limit)
}

func (s *Service) hasResult(ctx context.Context, code string) (bool, error) {
    _, err := s.ledger.Get(ctx, code)
    if errors.Is(err, domain.ErrNotFound) {
        return false, nil
    }
    return err == nil, err
}
