package domain

// Error taxonomy shared by services and adapters. Wrap with fmt.Errorf("%w: ...")
// for context and match with errors.Is.
var (
    // ErrInvalidInput is a caller error: malformed code or findings document.
    ErrInvalidInput = errString("invalid input")
    // ErrTokenExpired rejects uploads for a PIN past its expiry.
    ErrTokenExpired = errString("token expired")
    // ErrAlreadyConsumed rejects a second upload for the same PIN.
    ErrAlreadyConsumed = errString("already consumed")
    // ErrCapacityExhausted means no free code was found within the retry bound.
    // Safe to retry with backoff.
    ErrCapacityExhausted = errString("capacity exhausted")
    ErrNotFound          = errString("not found")

    // ErrCodeInUse is returned by token repositories when a code is still held.
    ErrCodeInUse = errString("code in use")
)

type errString string

func (e errString) Error() string { return string(e) }
