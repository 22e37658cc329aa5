package domain

import (
    "fmt"
    "time"
)

// UnknownPinPolicy decides what happens to uploads for codes that were never issued.
type UnknownPinPolicy string

const (
    // PolicyLenient accepts the upload and stores it unlinked.
    PolicyLenient UnknownPinPolicy = "lenient"
    // PolicyStrict rejects the upload as invalid input.
    PolicyStrict UnknownPinPolicy = "strict"
)

func ParseUnknownPinPolicy(s string) (UnknownPinPolicy, error) {
    switch p := UnknownPinPolicy(s); p {
    case PolicyLenient, PolicyStrict:
        return p, nil
    case "":
        return PolicyLenient, nil
    }
    return "", fmt.Errorf("unknown pin policy %q", s)
}

// Admit decides whether a result may be recorded for a code. tok is nil when no
// token exists for the code; hasResult reports a result already stored under it.
// Repositories call Admit while holding the code's lock.
func Admit(tok *PinToken, hasResult bool, now time.Time, policy UnknownPinPolicy) (linked bool, err error) {
    if tok == nil {
        if hasResult {
            return false, ErrAlreadyConsumed
        }
        if policy == PolicyStrict {
            return false, fmt.Errorf("%w: pin was never issued", ErrInvalidInput)
        }
        return false, nil
    }
    switch tok.State(now) {
    case PinExpired:
        return false, ErrTokenExpired
    case PinConsumed:
        return false, ErrAlreadyConsumed
    }
    if hasResult {
        return false, ErrAlreadyConsumed
    }
    return true, nil
}
