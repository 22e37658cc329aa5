package risk

import (
    "pincheck/internal/domain"
    "pincheck/internal/ports"
)

// Weights are the per-signal contributions to the additive score.
type Weights struct {
    Exploit           int
    SuspiciousProcess int
    VPN               int
    RegistryChange    int
}

func DefaultWeights() Weights {
    return Weights{
        Exploit:           15,
        SuspiciousProcess: 10,
        VPN:               25,
        RegistryChange:    5,
    }
}

// Scorer is stateless; a single instance may be shared across goroutines.
type Scorer struct {
    weights Weights
}

var _ ports.Scorer = (*Scorer)(nil)

func New() *Scorer { return NewWithWeights(DefaultWeights()) }

func NewWithWeights(w Weights) *Scorer { return &Scorer{weights: w} }

func (s *Scorer) Score(findings map[string]any) domain.Assessment {
    return s.Assess(ExtractSignals(findings))
}

// Assess weighs already extracted signals. The result is clamped to [0,100].
func (s *Scorer) Assess(sig Signals) domain.Assessment {
    total := sig.Exploits*s.weights.Exploit +
        sig.SuspiciousProcesses*s.weights.SuspiciousProcess +
        sig.RegistryChanges*s.weights.RegistryChange
    if sig.VPN {
        total += s.weights.VPN
    }
    score := domain.ClampScore(total)
    return domain.Assessment{Score: score, Tier: domain.TierFor(score)}
}
