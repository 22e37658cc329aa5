package main

import (
    "context"
    "errors"
    "fmt"
    "net"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/jonboulle/clockwork"
    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"
    "golang.org/x/net/netutil"
    "golang.org/x/sync/errgroup"

    httpadapter "pincheck/internal/adapters/http"
    "pincheck/internal/adapters/memory"
    pg "pincheck/internal/adapters/postgres"
    "pincheck/internal/config"
    "pincheck/internal/logging"
    "pincheck/internal/metrics"
    "pincheck/internal/ports"
    "pincheck/internal/services/ledger"
    "pincheck/internal/services/pins"
    "pincheck/internal/services/query"
    "pincheck/internal/services/risk"
    "pincheck/internal/workers/compactor"
)

type backend interface {
    ports.TokenRepository
    ports.ResultRepository
    ports.TokenCompactor
}

func serve(cmd *cobra.Command, _ []string) error {
    cfg, err := config.Load(v)
    if err != nil {
        return err
    }
    log, err := logging.New(cfg.Log, "pincheck")
    if err != nil {
        return err
    }

    ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    var m *metrics.Metrics
    if cfg.MetricsEnabled {
        m = metrics.New(true)
    }

    store, closeStore, err := openStore(ctx, cfg, log)
    if err != nil {
        return err
    }
    defer closeStore()

    clock := clockwork.NewRealClock()
    pinSvc := pins.New(store,
        pins.WithClock(clock),
        pins.WithTTL(cfg.PinTTL),
        pins.WithAttempts(cfg.IssueAttempts),
        pins.WithLogger(log.WithField("component", "pins")),
        pins.WithMetrics(m),
    )
    ledgerSvc := ledger.New(store, risk.New(),
        ledger.WithClock(clock),
        ledger.WithUnknownPinPolicy(cfg.UnknownPinPolicy),
        ledger.WithLogger(log.WithField("component", "ledger")),
        ledger.WithMetrics(m),
    )
    querySvc := query.New(pinSvc, ledgerSvc, query.WithLimits(cfg.RecentLimitDefault, cfg.RecentLimitMax))

    handler := httpadapter.New(pinSvc, ledgerSvc, querySvc, log.WithField("component", "http"), m, httpadapter.Options{
        MaxUploadBytes: cfg.MaxUploadBytes,
        UploadRate:     cfg.UploadRate,
        UploadBurst:    cfg.UploadBurst,
    })
    srv := &http.Server{
        Handler:           handler.Routes(),
        ReadHeaderTimeout: 10 * time.Second,
    }

    ln, err := net.Listen("tcp", cfg.ListenAddr)
    if err != nil {
        return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
    }
    if cfg.MaxConnections > 0 {
        ln = netutil.LimitListener(ln, cfg.MaxConnections)
    }

    sweeper := compactor.New(store, clock, cfg.CompactRetention, log.WithField("component", "compactor"), m)

    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() error {
        log.WithFields(logrus.Fields{"addr": ln.Addr().String(), "env": cfg.Env}).Info("listening")
        if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
            return fmt.Errorf("serve: %w", err)
        }
        return nil
    })
    g.Go(func() error { return sweeper.Run(gctx, cfg.CompactInterval) })
    g.Go(func() error {
        <-gctx.Done()
        log.Info("shutting down")
        shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
        defer cancel()
        return srv.Shutdown(shutdownCtx)
    })
    return g.Wait()
}

// openStore picks Postgres when DATABASE_URL is set and the in-memory store
// otherwise. Postgres schemas are migrated up before use.
func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (backend, func(), error) {
    if cfg.DatabaseURL == "" {
        log.Warn("DATABASE_URL not set, using in-memory store; PINs and results are lost on restart")
        return memory.New(), func() {}, nil
    }
    if err := pg.Migrate(ctx, cfg.DatabaseURL, log, "up"); err != nil {
        return nil, nil, fmt.Errorf("migrate: %w", err)
    }
    db, err := pg.Connect(ctx, cfg.DatabaseURL)
    if err != nil {
        return nil, nil, fmt.Errorf("db connect: %w", err)
    }
    log.Info("using postgres store")
    return db, db.Close, nil
}
