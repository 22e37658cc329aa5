package postgres

import (
    "context"
    "errors"
    "os"
    "sync"
    "sync/atomic"
    "testing"
    "time"

    "pincheck/internal/domain"
)

// openTestDB connects to TEST_DATABASE_URL, migrates it and empties the tables.
func openTestDB(t *testing.T) *DB {
    t.Helper()
    url := os.Getenv("TEST_DATABASE_URL")
    if url == "" {
        t.Skip("TEST_DATABASE_URL not set")
    }
    ctx := context.Background()
    if err := Migrate(ctx, url, nil, "up"); err != nil {
        t.Fatalf("migrate: %v", err)
    }
    db, err := Connect(ctx, url)
    if err != nil {
        t.Fatalf("connect: %v", err)
    }
    t.Cleanup(db.Close)
    if _, err := db.Pool.Exec(ctx, `TRUNCATE scan_results, pin_tokens`); err != nil {
        t.Fatalf("truncate: %v", err)
    }
    return db
}

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func admitLinked(now time.Time) func(*domain.PinToken, bool) (bool, error) {
    return func(tok *domain.PinToken, hasResult bool) (bool, error) {
        return domain.Admit(tok, hasResult, now, domain.PolicyLenient)
    }
}

func TestTokenLifecycle(t *testing.T) {
    db := openTestDB(t)
    ctx := context.Background()
    owner := "owner-1"
    tok := domain.PinToken{Code: "123456", OwnerID: &owner, IssuedAt: t0, ExpiresAt: t0.Add(time.Hour)}

    if err := db.InsertToken(ctx, tok); err != nil {
        t.Fatal(err)
    }
    if err := db.InsertToken(ctx, tok); !errors.Is(err, domain.ErrCodeInUse) {
        t.Fatalf("collision: %v", err)
    }

    got, found, err := db.GetToken(ctx, "123456")
    if err != nil || !found {
        t.Fatalf("get: %v %v", found, err)
    }
    if got.OwnerID == nil || *got.OwnerID != owner || !got.ExpiresAt.Equal(tok.ExpiresAt) {
        t.Fatalf("token = %+v", got)
    }

    res := domain.ScanResult{ID: "r1", PinCode: "123456", ReceivedAt: t0.Add(time.Minute),
        RawFindings: []byte(`{"b": 1, "a": [true]}`), RiskScore: 25, RiskTier: domain.TierMedium}
    stored, err := db.RecordResult(ctx, res, admitLinked(t0.Add(time.Minute)))
    if err != nil {
        t.Fatal(err)
    }
    if !stored.Linked {
        t.Fatal("expected linked")
    }
    if _, err := db.RecordResult(ctx, domain.ScanResult{ID: "r2", PinCode: "123456", ReceivedAt: t0, RawFindings: []byte(`{}`), RiskTier: domain.TierLow},
        admitLinked(t0.Add(2*time.Minute))); !errors.Is(err, domain.ErrAlreadyConsumed) {
        t.Fatalf("second record: %v", err)
    }

    back, found, err := db.GetResult(ctx, "123456")
    if err != nil || !found {
        t.Fatalf("get result: %v %v", found, err)
    }
    if string(back.RawFindings) != `{"b": 1, "a": [true]}` {
        t.Fatalf("findings not verbatim: %s", back.RawFindings)
    }
    got, _, _ = db.GetToken(ctx, "123456")
    if got.State(t0.Add(48*time.Hour)) != domain.PinConsumed || got.LinkedResultID == nil || *got.LinkedResultID != "r1" {
        t.Fatalf("token after record = %+v", got)
    }
}

func TestPurgeExpired(t *testing.T) {
    db := openTestDB(t)
    ctx := context.Background()
    _ = db.InsertToken(ctx, domain.PinToken{Code: "111111", IssuedAt: t0, ExpiresAt: t0.Add(time.Hour)})
    _ = db.InsertToken(ctx, domain.PinToken{Code: "222222", IssuedAt: t0, ExpiresAt: t0.Add(72 * time.Hour)})

    later := t0.Add(2 * time.Hour)
    if err := db.InsertToken(ctx, domain.PinToken{Code: "111111", IssuedAt: later, ExpiresAt: later.Add(time.Hour)}); !errors.Is(err, domain.ErrCodeInUse) {
        t.Fatalf("expired code reissued before eviction: %v", err)
    }

    n, err := db.PurgeExpired(ctx, t0.Add(2*time.Hour))
    if err != nil || n != 1 {
        t.Fatalf("purged %d, %v", n, err)
    }
    if _, found, _ := db.GetToken(ctx, "111111"); found {
        t.Fatal("expired token kept")
    }
}

func TestRecordResultConcurrent(t *testing.T) {
    db := openTestDB(t)
    ctx := context.Background()
    _ = db.InsertToken(ctx, domain.PinToken{Code: "333333", IssuedAt: t0, ExpiresAt: t0.Add(time.Hour)})

    var (
        wg   sync.WaitGroup
        wins atomic.Int32
    )
    for i := 0; i < 16; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            res := domain.ScanResult{ID: string(rune('a' + i)), PinCode: "333333", ReceivedAt: t0, RawFindings: []byte(`{}`), RiskTier: domain.TierLow}
            if _, err := db.RecordResult(ctx, res, admitLinked(t0)); err == nil {
                wins.Add(1)
            } else if !errors.Is(err, domain.ErrAlreadyConsumed) {
                t.Errorf("unexpected: %v", err)
            }
        }(i)
    }
    wg.Wait()
    if wins.Load() != 1 {
        t.Fatalf("wins = %d", wins.Load())
    }
}
