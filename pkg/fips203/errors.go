package fips203

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
)

var (
	// ErrConfiguration indicates the backend could not provide primitives for
	// a parameter set. It is fatal for that set and is not retried.
	ErrConfiguration = errors.New("fips203: backend configuration error")

	// ErrLengthMismatch indicates a byte buffer whose length does not match
	// the requested object.
	ErrLengthMismatch = errors.New("fips203: length mismatch")

	// ErrStrengthMismatch indicates objects from different parameter sets
	// were combined.
	ErrStrengthMismatch = errors.New("fips203: parameter set mismatch")

	// ErrKeygen indicates the backend failed to generate a key pair.
	ErrKeygen = errors.New("fips203: key generation failed")

	// ErrEncapsulation indicates the backend failed to encapsulate.
	ErrEncapsulation = errors.New("fips203: encapsulation failed")

	// ErrDecapsulation indicates an operational backend fault during
	// decapsulation. An invalid ciphertext never produces this error.
	ErrDecapsulation = errors.New("fips203: decapsulation failed")

	// ErrUnknownParameterSet indicates a strength other than 512, 768 or 1024.
	ErrUnknownParameterSet = errors.New("fips203: unknown parameter set")

	// ErrAmbiguousLength indicates more than one parameter set matches a
	// length for the same role.
	ErrAmbiguousLength = errors.New("fips203: ambiguous length")

	// ErrNilObject indicates a nil key or ciphertext argument.
	ErrNilObject = errors.New("fips203: nil object")

	// ErrNotSupported indicates the backend lacks an optional capability.
	ErrNotSupported = errors.New("fips203: operation not supported by backend")

	// ErrInvalidSeed indicates a seed of the wrong length.
	ErrInvalidSeed = errors.New("fips203: invalid seed")

	// ErrInvalidKeyPair indicates an encapsulation and decapsulation key that
	// do not belong together.
	ErrInvalidKeyPair = errors.New("fips203: invalid key pair")

	// ErrLibraryClosed indicates use of a Library after Close.
	ErrLibraryClosed = errors.New("fips203: library closed")
)

// ConfigurationError reports a failure to resolve backend primitives.
type ConfigurationError struct {
	ParameterSet ParameterSet
	Backend      string
	Err          error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("fips203: backend %q cannot provide %s: %v", e.Backend, e.ParameterSet, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// LengthError reports a byte buffer of the wrong size. ParameterSet is zero
// when the strength was being inferred, in which case Expected lists every
// accepted length for Role.
type LengthError struct {
	Role         Role
	ParameterSet ParameterSet
	Expected     []int
	Actual       int
}

func (e *LengthError) Error() string {
	want := make([]string, len(e.Expected))
	for i, n := range e.Expected {
		want[i] = strconv.Itoa(n)
	}
	if e.ParameterSet.Valid() {
		return fmt.Sprintf("fips203: %s %s must be %s bytes, got %d", e.ParameterSet, e.Role, strings.Join(want, " or "), e.Actual)
	}
	return fmt.Sprintf("fips203: no parameter set has a %d-byte %s (expected one of %s)", e.Actual, e.Role, strings.Join(want, ", "))
}

func (e *LengthError) Is(target error) bool { return target == ErrLengthMismatch }

// StrengthMismatchError reports a decapsulation key and ciphertext from
// different parameter sets.
type StrengthMismatchError struct {
	Key        ParameterSet
	Ciphertext ParameterSet
}

func (e *StrengthMismatchError) Error() string {
	return fmt.Sprintf("fips203: cannot decapsulate %s ciphertext with %s decapsulation key", e.Ciphertext, e.Key)
}

func (e *StrengthMismatchError) Is(target error) bool { return target == ErrStrengthMismatch }

// Operation names used in BackendError.Op.
const (
	OpKeygen = "keygen"
	OpEncaps = "encaps"
	OpDecaps = "decaps"
)

// BackendError wraps a non-zero status returned by a backend primitive.
type BackendError struct {
	Op           string
	ParameterSet ParameterSet
	Status       backend.Status
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("fips203: %s %s: backend returned %d (%s)", e.ParameterSet, e.Op, uint8(e.Status), e.Status)
}

// Unwrap maps the operation to its sentinel so callers can use errors.Is.
func (e *BackendError) Unwrap() error {
	switch e.Op {
	case OpKeygen:
		return ErrKeygen
	case OpEncaps:
		return ErrEncapsulation
	case OpDecaps:
		return ErrDecapsulation
	default:
		return nil
	}
}

func invalidSeed(want, got int) error {
	return fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSeed, want, got)
}

// StatusOf extracts the backend status from err, if any.
func StatusOf(err error) (backend.Status, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Status, true
	}
	return backend.StatusOK, false
}
