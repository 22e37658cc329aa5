package compactor

import (
    "context"
    "time"

    "github.com/jonboulle/clockwork"
    "github.com/sirupsen/logrus"

    "pincheck/internal/logging"
    "pincheck/internal/metrics"
    "pincheck/internal/ports"
)

// Runner evicts tokens that expired without being consumed. Eviction is the only
// place tokens are ever deleted; request paths evaluate expiry lazily.
type Runner struct {
    repo      ports.TokenCompactor
    clock     clockwork.Clock
    retention time.Duration
    log       logrus.FieldLogger
    metrics   *metrics.Metrics
}

func New(repo ports.TokenCompactor, clock clockwork.Clock, retention time.Duration, log logrus.FieldLogger, m *metrics.Metrics) *Runner {
    if clock == nil {
        clock = clockwork.NewRealClock()
    }
    if log == nil {
        log = logging.Discard()
    }
    if retention < 0 {
        retention = 0
    }
    return &Runner{repo: repo, clock: clock, retention: retention, log: log, metrics: m}
}

// Sweep runs one compaction pass, deleting tokens whose expiry is older than
// the retention window.
func (r *Runner) Sweep(ctx context.Context) (int, error) {
    cutoff := r.clock.Now().Add(-r.retention)
    n, err := r.repo.PurgeExpired(ctx, cutoff)
    if err != nil {
        return 0, err
    }
    r.metrics.Compacted(n)
    if n > 0 {
        r.log.WithFields(logrus.Fields{"evicted": n, "cutoff": cutoff}).Info("compacted expired pins")
    }
    return n, nil
}

// Run sweeps every interval until ctx is cancelled. Sweep failures are logged
// and retried on the next tick.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
    if interval <= 0 {
        return nil
    }
    ticker := r.clock.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return nil
        case <-ticker.Chan():
            if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
                r.log.WithError(err).Warn("compaction failed")
            }
        }
    }
}
