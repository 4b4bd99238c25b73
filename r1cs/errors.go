package r1cs

import "errors"

// ErrInvalidGeneratorsLength is the one recoverable pre-check failure: the
// generator set is too small for the padded multiplier count. It is safe to
// surface distinctly because it leaks nothing about the proof itself, only
// about the caller's generator setup.
var ErrInvalidGeneratorsLength = errors.New("r1cs: generator capacity smaller than padded multiplier count")

// ErrVerificationFailed is the single opaque cryptographic rejection
// outcome. It deliberately collapses decompression failures, a non-identity
// mega-check, and inner-product subverifier rejection into one value so a
// caller cannot distinguish sub-causes.
var ErrVerificationFailed = errors.New("r1cs: verification failed")

// ErrFormatError reports proof structural malformation caught before any
// cryptographic check runs (e.g. mismatched inner-product vector lengths).
var ErrFormatError = errors.New("r1cs: malformed proof")

// GadgetError wraps an error returned by gadget closure or a deferred
// after-commitment callback. It is surfaced verbatim and never retried.
type GadgetError struct {
	Err error
}

func (e *GadgetError) Error() string { return "r1cs: gadget error: " + e.Err.Error() }
func (e *GadgetError) Unwrap() error { return e.Err }
