// Package circl provides a pure Go ML-KEM backend built on
// github.com/cloudflare/circl. It supports all three FIPS 203 parameter sets
// and the derandomized key generation and encapsulation entry points.
package circl

import (
	"crypto/rand"
	"fmt"
	"io"
	"runtime"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
)

// Name is the identifier reported by Provider.Name.
const Name = "circl"

// Option configures a Provider.
type Option func(*Provider)

// WithRand sets the randomness source used for key generation and
// encapsulation. The reader must be safe for concurrent use if the provider
// is shared across goroutines. Defaults to crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(p *Provider) {
		if r != nil {
			p.rand = r
		}
	}
}

// Provider resolves circl ML-KEM schemes.
type Provider struct {
	rand io.Reader
}

var _ backend.Provider = (*Provider)(nil)

// New returns a circl-backed provider.
func New(opts ...Option) *Provider {
	p := &Provider{rand: rand.Reader}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements backend.Provider.
func (p *Provider) Name() string { return Name }

// Resolve implements backend.Provider.
func (p *Provider) Resolve(strength int) (backend.Primitives, error) {
	var scheme kem.Scheme
	switch strength {
	case 512:
		scheme = mlkem512.Scheme()
	case 768:
		scheme = mlkem768.Scheme()
	case 1024:
		scheme = mlkem1024.Scheme()
	default:
		return nil, fmt.Errorf("%w: circl has no ML-KEM-%d", backend.ErrUnsupportedStrength, strength)
	}
	return &primitives{scheme: scheme, rand: p.rand}, nil
}

// primitives adapts a kem.Scheme to the buffer-oriented backend contract.
type primitives struct {
	scheme kem.Scheme
	rand   io.Reader
}

var (
	_ backend.Primitives       = (*primitives)(nil)
	_ backend.SeededPrimitives = (*primitives)(nil)
)

func (p *primitives) Keygen(ek, dk []byte) backend.Status {
	seed := make([]byte, p.scheme.SeedSize())
	defer zeroizeBytes(seed)
	if _, err := io.ReadFull(p.rand, seed); err != nil {
		return backend.StatusKeygen
	}
	return p.KeygenFromSeed(seed, ek, dk)
}

func (p *primitives) KeygenFromSeed(seed, ek, dk []byte) backend.Status {
	if seed == nil || ek == nil || dk == nil {
		return backend.StatusNullPointer
	}
	if len(seed) != p.scheme.SeedSize() {
		return backend.StatusKeygen
	}
	if len(ek) != p.scheme.PublicKeySize() || len(dk) != p.scheme.PrivateKeySize() {
		return backend.StatusSerialization
	}

	pk, sk := p.scheme.DeriveKeyPair(seed)
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return backend.StatusSerialization
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return backend.StatusSerialization
	}
	defer zeroizeBytes(skBytes)

	copy(ek, pkBytes)
	copy(dk, skBytes)
	return backend.StatusOK
}

func (p *primitives) Encaps(ek, ct, ss []byte) backend.Status {
	m := make([]byte, p.scheme.EncapsulationSeedSize())
	defer zeroizeBytes(m)
	if _, err := io.ReadFull(p.rand, m); err != nil {
		return backend.StatusEncapsulation
	}
	return p.EncapsFromSeed(ek, m, ct, ss)
}

func (p *primitives) EncapsFromSeed(ek, m, ct, ss []byte) backend.Status {
	if ek == nil || m == nil || ct == nil || ss == nil {
		return backend.StatusNullPointer
	}
	if len(m) != p.scheme.EncapsulationSeedSize() {
		return backend.StatusEncapsulation
	}
	if len(ct) != p.scheme.CiphertextSize() || len(ss) != p.scheme.SharedKeySize() {
		return backend.StatusSerialization
	}

	pk, err := p.scheme.UnmarshalBinaryPublicKey(ek)
	if err != nil {
		return backend.StatusDeserialization
	}
	ctBytes, ssBytes, err := p.scheme.EncapsulateDeterministically(pk, m)
	if err != nil {
		return backend.StatusEncapsulation
	}
	defer zeroizeBytes(ssBytes)

	copy(ct, ctBytes)
	copy(ss, ssBytes)
	return backend.StatusOK
}

func (p *primitives) Decaps(dk, ct, ss []byte) backend.Status {
	if dk == nil || ct == nil || ss == nil {
		return backend.StatusNullPointer
	}
	if len(ct) != p.scheme.CiphertextSize() {
		return backend.StatusDeserialization
	}
	if len(ss) != p.scheme.SharedKeySize() {
		return backend.StatusSerialization
	}

	sk, err := p.scheme.UnmarshalBinaryPrivateKey(dk)
	if err != nil {
		return backend.StatusDeserialization
	}
	// circl performs implicit rejection: a bad ciphertext still yields a secret.
	ssBytes, err := p.scheme.Decapsulate(sk, ct)
	if err != nil {
		return backend.StatusDecapsulation
	}
	defer zeroizeBytes(ssBytes)

	copy(ss, ssBytes)
	return backend.StatusOK
}

// zeroizeBytes overwrites buf and keeps it alive past the stores.
// Local duplicate to avoid importing the fips203 package from a backend.
func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
