package ledger

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sync"
    "sync/atomic"
    "testing"
    "time"

    "github.com/jonboulle/clockwork"

    "pincheck/internal/adapters/memory"
    "pincheck/internal/domain"
    "pincheck/internal/services/pins"
    "pincheck/internal/services/risk"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
    clock  *clockwork.FakeClock
    store  *memory.Store
    pins   *pins.Service
    ledger *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
    t.Helper()
    clock := clockwork.NewFakeClockAt(epoch)
    store := memory.New()
    var seq atomic.Int64
    base := []Option{
        WithClock(clock),
        WithIDs(func() string { return fmt.Sprintf("scan-%03d", seq.Add(1)) }),
    }
    return &fixture{
        clock:  clock,
        store:  store,
        pins:   pins.New(store, pins.WithClock(clock)),
        ledger: New(store, risk.New(), append(base, opts...)...),
    }
}

func (f *fixture) issue(t *testing.T) string {
    t.Helper()
    tok, err := f.pins.Issue(context.Background(), "")
    if err != nil {
        t.Fatal(err)
    }
    return tok.Code
}

const sampleFindings = `{"exploits":[{"name":"Xeno"},{"name":"Fluxus"}],"processes":{"suspiciousCount":1},"network":{"vpnDetected":true},"system":{"hostname":"GAMING-PC","os":"Windows 11 Pro"}}`

func TestSubmitRecordsAndConsumes(t *testing.T) {
    f := newFixture(t)
    ctx := context.Background()
    code := f.issue(t)

    res, err := f.ledger.Submit(ctx, domain.Submission{PinCode: code, Findings: json.RawMessage(sampleFindings), SourceAddr: "203.0.113.7"})
    if err != nil {
        t.Fatal(err)
    }
    if res.ID != "scan-001" || res.PinCode != code || !res.Linked {
        t.Fatalf("unexpected result: %+v", res)
    }
    if res.RiskScore != 65 || res.RiskTier != domain.TierHigh {
        t.Fatalf("assessment = %d/%s", res.RiskScore, res.RiskTier)
    }
    if res.Hostname != "GAMING-PC" || res.OS != "Windows 11 Pro" || res.SourceAddr != "203.0.113.7" {
        t.Fatalf("descriptor = %q %q %q", res.Hostname, res.OS, res.SourceAddr)
    }
    if string(res.RawFindings) != sampleFindings {
        t.Fatalf("raw findings not verbatim: %s", res.RawFindings)
    }
    if !res.ReceivedAt.Equal(epoch) {
        t.Fatalf("receivedAt = %v", res.ReceivedAt)
    }

    state, _ := f.pins.Status(ctx, code)
    if state != domain.PinConsumed {
        t.Fatalf("pin state = %s", state)
    }
    tok, _, _ := f.store.GetToken(ctx, code)
    if tok.LinkedResultID == nil || *tok.LinkedResultID != res.ID {
        t.Fatalf("linked result = %v", tok.LinkedResultID)
    }

    got, err := f.ledger.Get(ctx, code)
    if err != nil || got.ID != res.ID {
        t.Fatalf("get = %+v, %v", got, err)
    }
}

func TestSubmitInvalidInput(t *testing.T) {
    f := newFixture(t)
    code := f.issue(t)
    tests := []struct {
        name     string
        pin      string
        findings string
    }{
        {"short pin", "12345", `{}`},
        {"letters", "12a456", `{}`},
        {"missing findings", code, ``},
        {"null findings", code, `null`},
        {"array findings", code, `[1,2]`},
        {"string findings", code, `"ok"`},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            _, err := f.ledger.Submit(context.Background(), domain.Submission{PinCode: tt.pin, Findings: json.RawMessage(tt.findings)})
            if !errors.Is(err, domain.ErrInvalidInput) {
                t.Fatalf("err = %v", err)
            }
        })
    }
    if state, _ := f.pins.Status(context.Background(), code); state != domain.PinActive {
        t.Fatalf("rejected uploads changed state to %s", state)
    }
}

func TestSubmitFirstWriteWins(t *testing.T) {
    f := newFixture(t)
    ctx := context.Background()
    code := f.issue(t)

    first, err := f.ledger.Submit(ctx, domain.Submission{PinCode: code, Findings: json.RawMessage(`{"exploits":[{}]}`)})
    if err != nil {
        t.Fatal(err)
    }
    f.clock.Advance(time.Minute)
    _, err = f.ledger.Submit(ctx, domain.Submission{PinCode: code, Findings: json.RawMessage(`{"exploits":[{},{},{},{},{},{}]}`)})
    if !errors.Is(err, domain.ErrAlreadyConsumed) {
        t.Fatalf("second submit err = %v", err)
    }

    stored, _ := f.ledger.Get(ctx, code)
    if stored.ID != first.ID || stored.RiskScore != 15 || string(stored.RawFindings) != `{"exploits":[{}]}` {
        t.Fatalf("first result changed: %+v", stored)
    }
}

func TestSubmitExpiredPin(t *testing.T) {
    f := newFixture(t)
    code := f.issue(t)
    f.clock.Advance(pins.DefaultTTL)

    _, err := f.ledger.Submit(context.Background(), domain.Submission{PinCode: code, Findings: json.RawMessage(`{}`)})
    if !errors.Is(err, domain.ErrTokenExpired) {
        t.Fatalf("err = %v", err)
    }
    if state, _ := f.pins.Status(context.Background(), code); state != domain.PinExpired {
        t.Fatalf("state = %s", state)
    }
}

func TestSubmitUnknownPinPolicy(t *testing.T) {
    lenient := newFixture(t)
    res, err := lenient.ledger.Submit(context.Background(), domain.Submission{PinCode: "123456", Findings: json.RawMessage(`{}`)})
    if err != nil {
        t.Fatalf("lenient: %v", err)
    }
    if res.Linked {
        t.Fatal("unknown pin result marked linked")
    }
    if state, _ := lenient.pins.Status(context.Background(), "123456"); state != domain.PinUnknown {
        t.Fatalf("unknown pin gained state %s", state)
    }

    strict := newFixture(t, WithUnknownPinPolicy(domain.PolicyStrict))
    _, err = strict.ledger.Submit(context.Background(), domain.Submission{PinCode: "123456", Findings: json.RawMessage(`{}`)})
    if !errors.Is(err, domain.ErrInvalidInput) {
        t.Fatalf("strict: %v", err)
    }
}

func TestSubmitConcurrentSamePin(t *testing.T) {
    f := newFixture(t)
    code := f.issue(t)

    const n = 64
    var (
        wg        sync.WaitGroup
        successes atomic.Int32
        conflicts atomic.Int32
        start     = make(chan struct{})
    )
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            <-start
            doc := fmt.Sprintf(`{"registry":{"modifiedCount":%d}}`, i)
            _, err := f.ledger.Submit(context.Background(), domain.Submission{PinCode: code, Findings: json.RawMessage(doc)})
            switch {
            case err == nil:
                successes.Add(1)
            case errors.Is(err, domain.ErrAlreadyConsumed):
                conflicts.Add(1)
            default:
                t.Errorf("unexpected error: %v", err)
            }
        }(i)
    }
    close(start)
    wg.Wait()

    if successes.Load() != 1 || conflicts.Load() != n-1 {
        t.Fatalf("successes = %d, conflicts = %d", successes.Load(), conflicts.Load())
    }
}

func TestListRecent(t *testing.T) {
    f := newFixture(t)
    ctx := context.Background()
    var codes []string
    for i := 0; i < 3; i++ {
        code := f.issue(t)
        codes = append(codes, code)
        if _, err := f.ledger.Submit(ctx, domain.Submission{PinCode: code, Findings: json.RawMessage(`{}`)}); err != nil {
            t.Fatal(err)
        }
        f.clock.Advance(time.Second)
    }

    got, err := f.ledger.ListRecent(ctx, 2)
    if err != nil {
        t.Fatal(err)
    }
    if len(got) != 2 || got[0].PinCode != codes[2] || got[1].PinCode != codes[1] {
        t.Fatalf("recent = %+v", got)
    }
    if got, _ := f.ledger.ListRecent(ctx, 0); len(got) != 0 {
        t.Fatalf("zero limit returned %d", len(got))
    }
}

func TestGetNotFound(t *testing.T) {
    f := newFixture(t)
    for _, code := range []string{"123456", "bad"} {
        if _, err := f.ledger.Get(context.Background(), code); !errors.Is(err, domain.ErrNotFound) {
            t.Fatalf("%s: err = %v", code, err)
        }
    }
}
