package query

import (
    "context"
    "encoding/json"
    "fmt"
    "testing"
    "time"

    "github.com/jonboulle/clockwork"

    "pincheck/internal/adapters/memory"
    "pincheck/internal/domain"
    "pincheck/internal/ports"
    "pincheck/internal/services/ledger"
    "pincheck/internal/services/pins"
    "pincheck/internal/services/risk"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*clockwork.FakeClock, *pins.Service, *ledger.Service, *Service) {
    t.Helper()
    clock := clockwork.NewFakeClockAt(epoch)
    store := memory.New()
    p := pins.New(store, pins.WithClock(clock), pins.WithTTL(time.Hour))
    l := ledger.New(store, risk.New(), ledger.WithClock(clock))
    return clock, p, l, New(p, l)
}

func TestCheckPin(t *testing.T) {
    clock, p, l, q := setup(t)
    ctx := context.Background()

    got, err := q.CheckPin(ctx, "not-a-pin")
    if err != nil || got.Exists || got.State != domain.PinUnknown {
        t.Fatalf("malformed: %+v %v", got, err)
    }
    got, _ = q.CheckPin(ctx, "123456")
    if got.Exists || got.State != domain.PinUnknown || got.HasResult {
        t.Fatalf("never issued: %+v", got)
    }

    tok, _ := p.Issue(ctx, "owner-1")
    got, _ = q.CheckPin(ctx, tok.Code)
    if !got.Exists || got.State != domain.PinActive || got.HasResult || got.Token == nil {
        t.Fatalf("active: %+v", got)
    }

    if _, err := l.Submit(ctx, domain.Submission{PinCode: tok.Code, Findings: json.RawMessage(`{}`)}); err != nil {
        t.Fatal(err)
    }
    clock.Advance(2 * time.Hour)
    got, _ = q.CheckPin(ctx, tok.Code)
    if !got.Exists || got.State != domain.PinConsumed || !got.HasResult {
        t.Fatalf("consumed: %+v", got)
    }
}

func TestFetchResultOutcomes(t *testing.T) {
    clock, p, l, q := setup(t)
    ctx := context.Background()

    pending, _ := p.Issue(ctx, "")
    done, _ := p.Issue(ctx, "")
    if _, err := l.Submit(ctx, domain.Submission{PinCode: done.Code, Findings: json.RawMessage(`{"exploits":[{}]}`)}); err != nil {
        t.Fatal(err)
    }
    if _, err := l.Submit(ctx, domain.Submission{PinCode: "101010", Findings: json.RawMessage(`{}`)}); err != nil {
        t.Fatal(err)
    }

    tests := []struct {
        code string
        want domain.FetchOutcome
    }{
        {pending.Code, domain.FetchPending},
        {done.Code, domain.FetchFound},
        {"101010", domain.FetchFound},
        {"999998", domain.FetchNotFound},
        {"abc", domain.FetchNotFound},
    }
    for _, tt := range tests {
        got, err := q.FetchResult(ctx, tt.code)
        if err != nil {
            t.Fatal(err)
        }
        if got.Outcome != tt.want {
            t.Errorf("%s: outcome = %s, want %s", tt.code, got.Outcome, tt.want)
        }
        if (got.Result != nil) != (tt.want == domain.FetchFound) {
            t.Errorf("%s: result presence mismatch", tt.code)
        }
    }

    clock.Advance(time.Hour)
    got, _ := q.FetchResult(ctx, pending.Code)
    if got.Outcome != domain.FetchExpired {
        t.Fatalf("expired pending token: %s", got.Outcome)
    }
    got, _ = q.FetchResult(ctx, done.Code)
    if got.Outcome != domain.FetchFound || got.Result.RiskScore != 15 {
        t.Fatalf("consumed token past expiry: %+v", got)
    }
}

// pendingLedger reports nothing stored, as while an upload is still in flight
// for a consumed token.
type pendingLedger struct{ ports.Ledger }

func (pendingLedger) Get(context.Context, string) (domain.ScanResult, error) {
    return domain.ScanResult{}, domain.ErrNotFound
}

func TestFetchResultConsumedWithoutResultIsPending(t *testing.T) {
    clock := clockwork.NewFakeClockAt(epoch)
    store := memory.New()
    p := pins.New(store, pins.WithClock(clock))
    tok, _ := p.Issue(context.Background(), "")
    _, _ = store.RecordResult(context.Background(), domain.ScanResult{ID: "x", PinCode: tok.Code, ReceivedAt: epoch},
        func(*domain.PinToken, bool) (bool, error) { return true, nil })

    q := New(p, pendingLedger{})
    got, err := q.FetchResult(context.Background(), tok.Code)
    if err != nil || got.Outcome != domain.FetchPending {
        t.Fatalf("got %+v, %v", got, err)
    }
}

func TestRecentLimits(t *testing.T) {
    clock, p, l, _ := setup(t)
    ctx := context.Background()
    q := New(p, l, WithLimits(2, 3))
    for i := 0; i < 5; i++ {
        tok, err := p.Issue(ctx, fmt.Sprintf("owner-%d", i))
        if err != nil {
            t.Fatal(err)
        }
        if _, err := l.Submit(ctx, domain.Submission{PinCode: tok.Code, Findings: json.RawMessage(`{}`)}); err != nil {
            t.Fatal(err)
        }
        clock.Advance(time.Second)
    }

    tests := []struct {
        limit int
        want  int
    }{
        {0, 2},
        {-1, 2},
        {1, 1},
        {3, 3},
        {50, 3},
    }
    for _, tt := range tests {
        got, err := q.Recent(ctx, tt.limit)
        if err != nil {
            t.Fatal(err)
        }
        if len(got) != tt.want {
            t.Errorf("limit %d: got %d results, want %d", tt.limit, len(got), tt.want)
        }
    }
}

func TestWithLimitsCapsDefault(t *testing.T) {
    _, p, l, _ := setup(t)
    q := New(p, l, WithLimits(50, 10))
    if q.defaultLimit != 10 || q.maxLimit != 10 {
        t.Fatalf("limits = %d/%d", q.defaultLimit, q.maxLimit)
    }
    q = New(p, l, WithLimits(0, -1))
    if q.defaultLimit != DefaultRecentLimit || q.maxLimit != MaxRecentLimit {
        t.Fatalf("defaults changed: %d/%d", q.defaultLimit, q.maxLimit)
    }
}
