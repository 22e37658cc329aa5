package compactor

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/jonboulle/clockwork"

    "pincheck/internal/adapters/memory"
    "pincheck/internal/domain"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSweepHonoursRetention(t *testing.T) {
    ctx := context.Background()
    clock := clockwork.NewFakeClockAt(epoch)
    store := memory.New()
    _ = store.InsertToken(ctx, domain.PinToken{Code: "100000", IssuedAt: epoch, ExpiresAt: epoch.Add(time.Hour)})

    r := New(store, clock, 24*time.Hour, nil, nil)

    clock.Advance(2 * time.Hour)
    if n, err := r.Sweep(ctx); err != nil || n != 0 {
        t.Fatalf("inside retention: n=%d err=%v", n, err)
    }
    clock.Advance(24 * time.Hour)
    if n, err := r.Sweep(ctx); err != nil || n != 1 {
        t.Fatalf("past retention: n=%d err=%v", n, err)
    }
    if _, ok, _ := store.GetToken(ctx, "100000"); ok {
        t.Fatal("token still stored")
    }
}

type countingRepo struct {
    mu      sync.Mutex
    calls   int
    cutoffs []time.Time
    err     error
    swept   chan struct{}
}

func (c *countingRepo) PurgeExpired(_ context.Context, cutoff time.Time) (int, error) {
    c.mu.Lock()
    c.calls++
    c.cutoffs = append(c.cutoffs, cutoff)
    c.mu.Unlock()
    c.swept <- struct{}{}
    return 0, c.err
}

func TestRunTicksUntilCancelled(t *testing.T) {
    clock := clockwork.NewFakeClockAt(epoch)
    repo := &countingRepo{swept: make(chan struct{}, 4), err: errors.New("transient")}
    r := New(repo, clock, time.Hour, nil, nil)

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan error, 1)
    go func() { done <- r.Run(ctx, time.Minute) }()

    for i := 0; i < 2; i++ {
        if err := clock.BlockUntilContext(ctx, 1); err != nil {
            t.Fatal(err)
        }
        clock.Advance(time.Minute)
        select {
        case <-repo.swept:
        case <-time.After(2 * time.Second):
            t.Fatalf("tick %d: no sweep", i)
        }
    }
    cancel()
    select {
    case err := <-done:
        if err != nil {
            t.Fatalf("run returned %v", err)
        }
    case <-time.After(2 * time.Second):
        t.Fatal("run did not stop")
    }

    repo.mu.Lock()
    defer repo.mu.Unlock()
    if repo.calls != 2 {
        t.Fatalf("calls = %d", repo.calls)
    }
    if want := epoch.Add(time.Minute - time.Hour); !repo.cutoffs[0].Equal(want) {
        t.Fatalf("cutoff = %v, want %v", repo.cutoffs[0], want)
    }
}

func TestRunDisabled(t *testing.T) {
    r := New(memory.New(), nil, time.Hour, nil, nil)
    if err := r.Run(context.Background(), 0); err != nil {
        t.Fatal(err)
    }
}
