package fips203

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

// Library binds the typed API to one backend provider. Each parameter set is
// resolved at most once per Library, on first use, and the outcome is cached.
//
// A Library is safe for concurrent use. Close must not race with operations
// that are still using the library's keys.
type Library struct {
	provider backend.Provider
	logger   logging.Logger
	zeroize  bool
	shared   bool
	slots    [len(registry)]bindingSlot
	closed   atomic.Bool
}

// Open prepares a Library for cfg. Parameter sets listed in cfg.Preload are
// resolved immediately and any ConfigurationError is returned.
func Open(cfg Config) (*Library, error) {
	lib := newLibrary(cfg)
	for _, ps := range cfg.Preload {
		if _, err := lib.binding(ps); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func newLibrary(cfg Config) *Library {
	return &Library{
		provider: cfg.provider(),
		logger:   cfg.logger(),
		zeroize:  !cfg.DisableZeroization,
	}
}

var defaultLibrary = sync.OnceValue(func() *Library {
	l := newLibrary(Config{})
	l.shared = true
	return l
})

// Default returns the process-wide Library backed by the circl provider. It
// is used by the package-level helpers; closing it is a no-op.
func Default() *Library {
	return defaultLibrary()
}

func libOrDefault(l *Library) *Library {
	if l == nil {
		return Default()
	}
	return l
}

// Backend returns the name of the provider this library resolves against.
func (l *Library) Backend() string {
	return l.provider.Name()
}

// Close releases resolved primitives that implement io.Closer. A second call
// returns ErrLibraryClosed. Closing Default() does nothing.
func (l *Library) Close() error {
	if l == nil || l.shared {
		return nil
	}
	if !l.closed.CompareAndSwap(false, true) {
		return ErrLibraryClosed
	}

	var errs []error
	for i := range l.slots {
		s := &l.slots[i]
		// Claims unresolved slots, or waits for an in-flight resolution.
		s.once.Do(func() { s.err = ErrLibraryClosed })
		if s.b == nil {
			continue
		}
		if c, ok := s.b.prims.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("fips203: close %s primitives: %w", s.b.set, err))
			}
		}
	}
	return errors.Join(errs...)
}

// KEM returns the entry point for ps, resolving its backend binding if this is
// the first use of ps on the library.
func (l *Library) KEM(ps ParameterSet) (*KEM, error) {
	if _, err := l.binding(ps); err != nil {
		return nil, err
	}
	return &KEM{set: ps, lib: l}, nil
}

// GenerateKey is shorthand for l.KEM(ps) followed by GenerateKey.
func (l *Library) GenerateKey(ps ParameterSet) (*EncapsulationKey, *DecapsulationKey, error) {
	k, err := l.KEM(ps)
	if err != nil {
		return nil, nil, err
	}
	return k.GenerateKey()
}

// NewEncapsulationKey copies b into an EncapsulationKey, inferring the
// parameter set from len(b).
func (l *Library) NewEncapsulationKey(b []byte) (*EncapsulationKey, error) {
	ps, err := ParameterSetForLength(RoleEncapsulationKey, len(b))
	if err != nil {
		return nil, err
	}
	ek := l.emptyEncapsulationKey(ps)
	copy(ek.data, b)
	return ek, nil
}

// NewDecapsulationKey copies b into a DecapsulationKey, inferring the
// parameter set from len(b).
func (l *Library) NewDecapsulationKey(b []byte) (*DecapsulationKey, error) {
	ps, err := ParameterSetForLength(RoleDecapsulationKey, len(b))
	if err != nil {
		return nil, err
	}
	dk := l.emptyDecapsulationKey(ps)
	copy(dk.data, b)
	return dk, nil
}

// NewCiphertext copies b into a Ciphertext, inferring the parameter set from
// len(b).
func (l *Library) NewCiphertext(b []byte) (*Ciphertext, error) {
	ps, err := ParameterSetForLength(RoleCiphertext, len(b))
	if err != nil {
		return nil, err
	}
	ct := l.emptyCiphertext(ps)
	copy(ct.data, b)
	return ct, nil
}

// GenerateKey generates a key pair for ps using the default library.
func GenerateKey(ps ParameterSet) (*EncapsulationKey, *DecapsulationKey, error) {
	return Default().GenerateKey(ps)
}

// NewEncapsulationKey parses an encapsulation key using the default library.
func NewEncapsulationKey(b []byte) (*EncapsulationKey, error) {
	return Default().NewEncapsulationKey(b)
}

// NewDecapsulationKey parses a decapsulation key using the default library.
func NewDecapsulationKey(b []byte) (*DecapsulationKey, error) {
	return Default().NewDecapsulationKey(b)
}

// NewCiphertext parses a ciphertext using the default library.
func NewCiphertext(b []byte) (*Ciphertext, error) {
	return Default().NewCiphertext(b)
}
