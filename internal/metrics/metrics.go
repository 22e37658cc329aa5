package metrics

import (
    "net/http"
    "strconv"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pincheck"

// Metrics holds the service collectors on a private registry. All methods are
// safe on a nil receiver so components can run without metrics.
type Metrics struct {
    registry     *prometheus.Registry
    pinsIssued   prometheus.Counter
    collisions   prometheus.Counter
    submissions  *prometheus.CounterVec
    tiers        *prometheus.CounterVec
    compacted    prometheus.Counter
    httpDuration *prometheus.HistogramVec
}

func New(runtimeMetrics bool) *Metrics {
    reg := prometheus.NewRegistry()
    if runtimeMetrics {
        reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
        reg.MustRegister(collectors.NewGoCollector())
    }

    m := &Metrics{
        registry: reg,
        pinsIssued: prometheus.NewCounter(prometheus.CounterOpts{
            Namespace: namespace, Name: "pins_issued_total",
            Help: "PINs issued.",
        }),
        collisions: prometheus.NewCounter(prometheus.CounterOpts{
            Namespace: namespace, Name: "pin_issue_collisions_total",
            Help: "Random draws that hit a code already in use.",
        }),
        submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: namespace, Name: "scan_submissions_total",
            Help: "Scan uploads by outcome.",
        }, []string{"outcome"}),
        tiers: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: namespace, Name: "scan_risk_tier_total",
            Help: "Stored scan results by risk tier.",
        }, []string{"tier"}),
        compacted: prometheus.NewCounter(prometheus.CounterOpts{
            Namespace: namespace, Name: "tokens_compacted_total",
            Help: "Expired tokens evicted by compaction.",
        }),
        httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
            Namespace: namespace, Name: "http_request_duration_seconds",
            Help:    "HTTP request latency by route and status code.",
            Buckets: prometheus.DefBuckets,
        }, []string{"route", "code"}),
    }
    reg.MustRegister(m.pinsIssued, m.collisions, m.submissions, m.tiers, m.compacted, m.httpDuration)
    return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
    if m == nil {
        return nil
    }
    return m.registry
}

func (m *Metrics) Handler() http.Handler {
    if m == nil {
        return http.NotFoundHandler()
    }
    return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) PinIssued() {
    if m == nil {
        return
    }
    m.pinsIssued.Inc()
}

func (m *Metrics) IssueCollision() {
    if m == nil {
        return
    }
    m.collisions.Inc()
}

func (m *Metrics) Submission(outcome string) {
    if m == nil {
        return
    }
    m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RiskTier(tier string) {
    if m == nil {
        return
    }
    m.tiers.WithLabelValues(tier).Inc()
}

func (m *Metrics) Compacted(n int) {
    if m == nil || n <= 0 {
        return
    }
    m.compacted.Add(float64(n))
}

func (m *Metrics) ObserveHTTP(route string, code int, d time.Duration) {
    if m == nil {
        return
    }
    m.httpDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(d.Seconds())
}
