package backend

import (
	"errors"
	"strconv"
)

// ErrUnsupportedStrength is returned by Provider.Resolve when the backend has
// no implementation for the requested parameter set.
var ErrUnsupportedStrength = errors.New("backend: unsupported strength")

// Status is the result code of a backend primitive. Zero means success.
type Status uint8

// Status codes shared by every backend.
const (
	StatusOK              Status = 0
	StatusNullPointer     Status = 1
	StatusSerialization   Status = 2
	StatusDeserialization Status = 3
	StatusKeygen          Status = 4
	StatusEncapsulation   Status = 5
	StatusDecapsulation   Status = 6
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNullPointer:
		return "null pointer"
	case StatusSerialization:
		return "serialization error"
	case StatusDeserialization:
		return "deserialization error"
	case StatusKeygen:
		return "keygen error"
	case StatusEncapsulation:
		return "encapsulation error"
	case StatusDecapsulation:
		return "decapsulation error"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Primitives is the set of ML-KEM entry points for a single parameter set.
//
// Every buffer is allocated by the caller with the exact size for the
// parameter set the Primitives were resolved for. Output buffers are only
// meaningful when StatusOK is returned. Implementations must not modify input
// buffers or retain any buffer after returning, and must be safe for
// concurrent use.
type Primitives interface {
	// Keygen writes a fresh encapsulation key into ek and the matching
	// decapsulation key into dk.
	Keygen(ek, dk []byte) Status

	// Encaps encapsulates to ek, writing the ciphertext into ct and the
	// 32-byte shared secret into ss.
	Encaps(ek, ct, ss []byte) Status

	// Decaps recovers the shared secret for ct under dk. A well-sized but
	// invalid ciphertext must still produce StatusOK and the implicit
	// rejection secret.
	Decaps(dk, ct, ss []byte) Status
}

// SeededPrimitives is implemented by backends that expose the derandomized
// FIPS 203 algorithms. Callers type-assert a Primitives value to discover it.
type SeededPrimitives interface {
	// KeygenFromSeed derives a key pair from the 64-byte seed d || z.
	KeygenFromSeed(seed, ek, dk []byte) Status

	// EncapsFromSeed encapsulates to ek using the 32-byte message m in place
	// of fresh randomness.
	EncapsFromSeed(ek, m, ct, ss []byte) Status
}

// Provider resolves Primitives for a parameter set. Implementations may be
// pure Go or bind to a native library; the fips203 package resolves each
// strength at most once per Library and caches the result.
type Provider interface {
	// Name identifies the backend in logs and errors.
	Name() string

	// Resolve returns the primitives for strength (512, 768 or 1024).
	// Unsupported strengths return an error wrapping ErrUnsupportedStrength.
	Resolve(strength int) (Primitives, error)
}
