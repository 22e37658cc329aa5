package ledger

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/google/uuid"
    "github.com/jonboulle/clockwork"
    "github.com/sirupsen/logrus"

    "pincheck/internal/domain"
    "pincheck/internal/logging"
    "pincheck/internal/metrics"
    "pincheck/internal/ports"
)

// Service records findings documents against PINs. The repository serializes
// the admission check and write for each code; scoring happens before that so
// the critical section stays short.
type Service struct {
    results ports.ResultRepository
    scorer  ports.Scorer
    clock   clockwork.Clock
    newID   func() string
    policy  domain.UnknownPinPolicy
    log     logrus.FieldLogger
    metrics *metrics.Metrics
}

var _ ports.Ledger = (*Service)(nil)

type Option func(*Service)

func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }
func WithIDs(fn func() string) Option { return func(s *Service) { s.newID = fn } }
func WithUnknownPinPolicy(p domain.UnknownPinPolicy) Option { return func(s *Service) { s.policy = p } }
func WithLogger(l logrus.FieldLogger) Option { return func(s *Service) { s.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func New(results ports.ResultRepository, scorer ports.Scorer, opts ...Option) *Service {
    s := &Service{
        results: results,
        scorer:  scorer,
        clock:   clockwork.NewRealClock(),
        newID:   uuid.NewString,
        policy:  domain.PolicyLenient,
        log:     logging.Discard(),
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

func (s *Service) Submit(ctx context.Context, sub domain.Submission) (domain.ScanResult, error) {
    if !domain.ValidCode(sub.PinCode) {
        s.metrics.Submission("invalid")
        return domain.ScanResult{}, fmt.Errorf("%w: pin must be six digits", domain.ErrInvalidInput)
    }
    doc, err := decodeFindings(sub.Findings)
    if err != nil {
        s.metrics.Submission("invalid")
        return domain.ScanResult{}, err
    }

    assessment := s.scorer.Score(doc)
    hostname, os := systemDescriptor(doc)
    now := s.clock.Now()
    res := domain.ScanResult{
        ID:          s.newID(),
        PinCode:     sub.PinCode,
        ReceivedAt:  now,
        RawFindings: append(json.RawMessage(nil), sub.Findings...),
        RiskScore:   assessment.Score,
        RiskTier:    assessment.Tier,
        SourceAddr:  sub.SourceAddr,
        Hostname:    hostname,
        OS:          os,
    }

    stored, err := s.results.RecordResult(ctx, res, func(tok *domain.PinToken, hasResult bool) (bool, error) {
        return domain.Admit(tok, hasResult, now, s.policy)
    })
    entry := s.log.WithField("pin", logging.MaskCode(sub.PinCode))
    if err != nil {
        outcome := outcomeOf(err)
        s.metrics.Submission(outcome)
        entry.WithField("outcome", outcome).WithError(err).Info("scan upload rejected")
        if outcome == "error" {
            return domain.ScanResult{}, fmt.Errorf("record scan: %w", err)
        }
        return domain.ScanResult{}, err
    }

    s.metrics.Submission("accepted")
    s.metrics.RiskTier(string(stored.RiskTier))
    entry.WithFields(logrus.Fields{
        "scanId":    stored.ID,
        "riskScore": stored.RiskScore,
        "riskTier":  stored.RiskTier,
        "linked":    stored.Linked,
    }).Info("scan upload recorded")
    return stored, nil
}

func (s *Service) Get(ctx context.Context, code string) (domain.ScanResult, error) {
    if !domain.ValidCode(code) {
        return domain.ScanResult{}, domain.ErrNotFound
    }
    res, found, err := s.results.GetResult(ctx, code)
    if err != nil {
        return domain.ScanResult{}, fmt.Errorf("load scan: %w", err)
    }
    if !found {
        return domain.ScanResult{}, domain.ErrNotFound
    }
    return res, nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.ScanResult, error) {
    if limit <= 0 {
        return []domain.ScanResult{}, nil
    }
    out, err := s.results.ListRecent(ctx, limit)
    if err != nil {
        return nil, fmt.Errorf("list scans: %w", err)
    }
    return out, nil
}

// decodeFindings requires a JSON object; null, empty, or any other JSON value
// is invalid input.
func decodeFindings(raw json.RawMessage) (map[string]any, error) {
    trimmed := bytes.TrimSpace(raw)
    if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
        return nil, fmt.Errorf("%w: scan results are required", domain.ErrInvalidInput)
    }
    var doc map[string]any
    if err := json.Unmarshal(trimmed, &doc); err != nil {
        return nil, fmt.Errorf("%w: scan results must be a JSON object", domain.ErrInvalidInput)
    }
    return doc, nil
}

func systemDescriptor(doc map[string]any) (hostname, os string) {
    sys, _ := doc["system"].(map[string]any)
    hostname, _ = sys["hostname"].(string)
    os, _ = sys["os"].(string)
    return strings.TrimSpace(hostname), strings.TrimSpace(os)
}

func outcomeOf(err error) string {
    switch {
    case errors.Is(err, domain.ErrAlreadyConsumed):
        return "already_consumed"
    case errors.Is(err, domain.ErrTokenExpired):
        return "expired"
    case errors.Is(err, domain.ErrInvalidInput):
        return "invalid"
    default:
        return "error"
    }
}
