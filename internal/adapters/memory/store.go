package memory

import (
    "context"
    "sort"
    "sync"
    "time"

    "pincheck/internal/domain"
    "pincheck/internal/ports"
)

// Store keeps tokens and results for the lifetime of the process. One RWMutex
// guards both maps so a result write and its token transition are a single step.
type Store struct {
    mu      sync.RWMutex
    tokens  map[string]domain.PinToken
    results map[string]domain.ScanResult
}

var (
    _ ports.TokenRepository  = (*Store)(nil)
    _ ports.ResultRepository = (*Store)(nil)
    _ ports.TokenCompactor   = (*Store)(nil)
)

func New() *Store {
    return &Store{
        tokens:  make(map[string]domain.PinToken),
        results: make(map[string]domain.ScanResult),
    }
}

// TokenRepository

func (s *Store) InsertToken(_ context.Context, tok domain.PinToken) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    if _, ok := s.results[tok.Code]; ok {
        return domain.ErrCodeInUse
    }
    if _, ok := s.tokens[tok.Code]; ok {
        return domain.ErrCodeInUse
    }
    s.tokens[tok.Code] = tok
    return nil
}

func (s *Store) GetToken(_ context.Context, code string) (domain.PinToken, bool, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    tok, ok := s.tokens[code]
    return tok, ok, nil
}

// ResultRepository

func (s *Store) RecordResult(_ context.Context, res domain.ScanResult, admit ports.Admission) (domain.ScanResult, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    var tok *domain.PinToken
    if t, ok := s.tokens[res.PinCode]; ok {
        tok = &t
    }
    _, hasResult := s.results[res.PinCode]

    linked, err := admit(tok, hasResult)
    if err != nil {
        return domain.ScanResult{}, err
    }
    res.Linked = linked
    s.results[res.PinCode] = res

    if tok != nil {
        consumedAt := res.ReceivedAt
        resultID := res.ID
        tok.ConsumedAt = &consumedAt
        tok.LinkedResultID = &resultID
        s.tokens[res.PinCode] = *tok
    }
    return res, nil
}

func (s *Store) GetResult(_ context.Context, code string) (domain.ScanResult, bool, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    res, ok := s.results[code]
    return res, ok, nil
}

func (s *Store) ListRecent(_ context.Context, limit int) ([]domain.ScanResult, error) {
    if limit <= 0 {
        return []domain.ScanResult{}, nil
    }
    s.mu.RLock()
    out := make([]domain.ScanResult, 0, len(s.results))
    for _, res := range s.results {
        out = append(out, res)
    }
    s.mu.RUnlock()

    sort.Slice(out, func(i, j int) bool {
        if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
            return out[i].ReceivedAt.After(out[j].ReceivedAt)
        }
        return out[i].ID < out[j].ID
    })
    if len(out) > limit {
        out = out[:limit]
    }
    return out, nil
}

// TokenCompactor

func (s *Store) PurgeExpired(_ context.Context, cutoff time.Time) (int, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    n := 0
    for code, tok := range s.tokens {
        if tok.Consumed() || tok.ExpiresAt.After(cutoff) {
            continue
        }
        delete(s.tokens, code)
        n++
    }
    return n, nil
}
