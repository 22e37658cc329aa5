package domain

import (
    "encoding/json"
    "time"
)

// Core domain models. API types are generated from api/openapi.yaml and sit in
// internal/api; the HTTP adapter converts between the two.

// PinState is the effective lifecycle state of a PIN at a given instant.
type PinState string

const (
    PinUnknown  PinState = "unknown"
    PinActive   PinState = "active"
    PinConsumed PinState = "consumed"
    PinExpired  PinState = "expired"
)

// PinToken is a short-lived correlation code handed to the person being checked.
type PinToken struct {
    Code           string
    OwnerID        *string
    IssuedAt       time.Time
    ExpiresAt      time.Time
    ConsumedAt     *time.Time
    LinkedResultID *string
}

// Consumed reports whether a scan result has been recorded against the token.
func (t PinToken) Consumed() bool { return t.ConsumedAt != nil }

// State derives the lifecycle state at now. Consumption takes precedence over
// expiry and expiry is never written back.
func (t PinToken) State(now time.Time) PinState {
    if t.Consumed() {
        return PinConsumed
    }
    if !now.Before(t.ExpiresAt) {
        return PinExpired
    }
    return PinActive
}

type RiskTier string

const (
    TierLow      RiskTier = "low"
    TierMedium   RiskTier = "medium"
    TierHigh     RiskTier = "high"
    TierCritical RiskTier = "critical"
)

const (
    MinRiskScore = 0
    MaxRiskScore = 100
)

// ClampScore bounds a raw additive score to [MinRiskScore, MaxRiskScore].
func ClampScore(score int) int {
    if score < MinRiskScore {
        return MinRiskScore
    }
    if score > MaxRiskScore {
        return MaxRiskScore
    }
    return score
}

// TierFor maps a score to its tier. Lower bounds are inclusive.
func TierFor(score int) RiskTier {
    switch score := ClampScore(score); {
    case score >= 70:
        return TierCritical
    case score >= 40:
        return TierHigh
    case score >= 20:
        return TierMedium
    default:
        return TierLow
    }
}

// Assessment is the scorer's output for one findings document.
type Assessment struct {
    Score int
    Tier  RiskTier
}

// ScanResult is a findings document recorded against a PIN.
type ScanResult struct {
    ID          string
    PinCode     string
    ReceivedAt  time.Time
    RawFindings json.RawMessage
    RiskScore   int
    RiskTier    RiskTier
    // Linked is false when the upload arrived for a code that was never issued.
    Linked     bool
    SourceAddr string
    Hostname   string
    OS         string
}

// Submission is an inbound upload from the scanning agent.
type Submission struct {
    PinCode    string
    Findings   json.RawMessage
    SourceAddr string
}

// PinCheck is the read-side composition of token state and result presence.
type PinCheck struct {
    Code      string
    Exists    bool
    State     PinState
    HasResult bool
    Token     *PinToken
}

type FetchOutcome string

const (
    FetchFound    FetchOutcome = "found"
    FetchPending  FetchOutcome = "pending"
    FetchNotFound FetchOutcome = "not_found"
    FetchExpired  FetchOutcome = "expired"
)

// ResultLookup is the outcome of polling for a result by PIN.
type ResultLookup struct {
    Outcome FetchOutcome
    Result  *ScanResult
}

// ValidCode reports whether code is a six digit decimal string.
func ValidCode(code string) bool {
    if len(code) != 6 {
        return false
    }
    for i := 0; i < len(code); i++ {
        if code[i] < '0' || code[i] > '9' {
            return false
        }
    }
    return true
}
