package pins

import (
    "context"
    "crypto/rand"
    "errors"
    "fmt"
    "math/big"
    "strings"
    "time"

    "github.com/jonboulle/clockwork"
    "github.com/sirupsen/logrus"

    "pincheck/internal/domain"
    "pincheck/internal/logging"
    "pincheck/internal/metrics"
    "pincheck/internal/ports"
)

const (
    DefaultTTL      = 24 * time.Hour
    DefaultAttempts = 10

    codeMin  = 100000
    codeSpan = 900000
)

// CodeSource draws a candidate PIN code.
type CodeSource func() (string, error)

// RandomCode draws uniformly from [100000, 999999] using crypto/rand.
func RandomCode() (string, error) {
    n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
    if err != nil {
        return "", fmt.Errorf("draw pin: %w", err)
    }
    return fmt.Sprintf("%d", codeMin+n.Int64()), nil
}

type Service struct {
    tokens   ports.TokenRepository
    clock    clockwork.Clock
    codes    CodeSource
    ttl      time.Duration
    attempts int
    log      logrus.FieldLogger
    metrics  *metrics.Metrics
}

var _ ports.Issuer = (*Service)(nil)

type Option func(*Service)

func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }
func WithCodeSource(src CodeSource) Option { return func(s *Service) { s.codes = src } }
func WithLogger(l logrus.FieldLogger) Option { return func(s *Service) { s.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithTTL(ttl time.Duration) Option {
    return func(s *Service) {
        if ttl > 0 {
            s.ttl = ttl
        }
    }
}

func WithAttempts(n int) Option {
    return func(s *Service) {
        if n > 0 {
            s.attempts = n
        }
    }
}

func New(tokens ports.TokenRepository, opts ...Option) *Service {
    s := &Service{
        tokens:   tokens,
        clock:    clockwork.NewRealClock(),
        codes:    RandomCode,
        ttl:      DefaultTTL,
        attempts: DefaultAttempts,
        log:      logging.Discard(),
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// Issue mints a new active PIN. Draws that hit a held code are retried up to
// the configured attempt bound, after which ErrCapacityExhausted is returned.
func (s *Service) Issue(ctx context.Context, ownerID string) (domain.PinToken, error) {
    var owner *string
    if id := strings.TrimSpace(ownerID); id != "" {
        owner = &id
    }

    for attempt := 1; attempt <= s.attempts; attempt++ {
        code, err := s.codes()
        if err != nil {
            return domain.PinToken{}, err
        }
        now := s.clock.Now()
        tok := domain.PinToken{
            Code:      code,
            OwnerID:   owner,
            IssuedAt:  now,
            ExpiresAt: now.Add(s.ttl),
        }
        err = s.tokens.InsertToken(ctx, tok)
        if errors.Is(err, domain.ErrCodeInUse) {
            s.metrics.IssueCollision()
            s.log.WithField("attempt", attempt).Debug("pin collision, redrawing")
            continue
        }
        if err != nil {
            return domain.PinToken{}, fmt.Errorf("store pin: %w", err)
        }
        s.metrics.PinIssued()
        s.log.WithFields(logrus.Fields{
            "pin":       logging.MaskCode(code),
            "owned":     owner != nil,
            "expiresAt": tok.ExpiresAt,
        }).Info("pin issued")
        return tok, nil
    }
    s.log.WithField("attempts", s.attempts).Warn("pin issuance exhausted retries")
    return domain.PinToken{}, fmt.Errorf("%w: no free code after %d attempts", domain.ErrCapacityExhausted, s.attempts)
}

func (s *Service) Status(ctx context.Context, code string) (domain.PinState, error) {
    _, state, err := s.Lookup(ctx, code)
    return state, err
}

// Lookup never mutates stored state; expiry is derived from the clock.
func (s *Service) Lookup(ctx context.Context, code string) (domain.PinToken, domain.PinState, error) {
    if !domain.ValidCode(code) {
        return domain.PinToken{}, domain.PinUnknown, nil
    }
    tok, found, err := s.tokens.GetToken(ctx, code)
    if err != nil {
        return domain.PinToken{}, domain.PinUnknown, fmt.Errorf("load pin: %w", err)
    }
    if !found {
        return domain.PinToken{}, domain.PinUnknown, nil
    }
    return tok, tok.State(s.clock.Now()), nil
}
