// Package testbackend provides a backend.Provider for tests.
//
// WARNING: the primitives are a toy with the byte layout of ML-KEM and none of
// its security. They exist so tests can count backend calls, force status
// codes, and fail resolution on demand.
package testbackend

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
)

// Name is the identifier reported by Provider.Name.
const Name = "testbackend"

// Operation names accepted by WithStatus and Provider.Calls.
const (
	OpKeygen = "keygen"
	OpEncaps = "encaps"
	OpDecaps = "decaps"
)

type sizes struct {
	rank, ek, dk, ct int
}

var table = map[int]sizes{
	512:  {rank: 2, ek: 800, dk: 1632, ct: 768},
	768:  {rank: 3, ek: 1184, dk: 2400, ct: 1088},
	1024: {rank: 4, ek: 1568, dk: 3168, ct: 1568},
}

// Option configures a Provider.
type Option func(*Provider)

// WithResolveError makes Resolve fail for strength.
func WithResolveError(strength int, err error) Option {
	return func(p *Provider) { p.resolveErr[strength] = err }
}

// WithNilPrimitives makes Resolve return no primitives and no error for
// strength.
func WithNilPrimitives(strength int) Option {
	return func(p *Provider) { p.nilPrims[strength] = true }
}

// WithResolvePanic makes Resolve panic with v for strength.
func WithResolvePanic(strength int, v any) Option {
	return func(p *Provider) { p.panics[strength] = v }
}

// WithStatus forces every call of op to return st without touching buffers.
func WithStatus(op string, st backend.Status) Option {
	return func(p *Provider) { p.forced[op] = st }
}

// WithoutSeeded hides the backend.SeededPrimitives capability.
func WithoutSeeded() Option {
	return func(p *Provider) { p.unseeded = true }
}

// WithResolveDelay slows Resolve down to widen race windows in tests.
func WithResolveDelay(d time.Duration) Option {
	return func(p *Provider) { p.delay = d }
}

// Provider is a configurable fake backend. Counters are safe for concurrent
// use.
type Provider struct {
	resolveErr map[int]error
	nilPrims   map[int]bool
	panics     map[int]any
	forced     map[string]backend.Status
	unseeded   bool
	delay      time.Duration

	mu       sync.Mutex
	resolves map[int]int

	keygens atomic.Int64
	encaps  atomic.Int64
	decaps  atomic.Int64
	closes  atomic.Int64
}

var _ backend.Provider = (*Provider)(nil)

// New returns a Provider configured by opts.
func New(opts ...Option) *Provider {
	p := &Provider{
		resolveErr: make(map[int]error),
		nilPrims:   make(map[int]bool),
		panics:     make(map[int]any),
		forced:     make(map[string]backend.Status),
		resolves:   make(map[int]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements backend.Provider.
func (p *Provider) Name() string { return Name }

// Resolve implements backend.Provider.
func (p *Provider) Resolve(strength int) (backend.Primitives, error) {
	p.mu.Lock()
	p.resolves[strength]++
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if v, ok := p.panics[strength]; ok {
		panic(v)
	}
	if err, ok := p.resolveErr[strength]; ok {
		return nil, err
	}
	if p.nilPrims[strength] {
		return nil, nil
	}
	sz, ok := table[strength]
	if !ok {
		return nil, fmt.Errorf("%w: %d", backend.ErrUnsupportedStrength, strength)
	}
	prims := &primitives{p: p, sz: sz}
	if p.unseeded {
		return unseeded{prims}, nil
	}
	return prims, nil
}

// ResolveCalls returns how many times Resolve ran for strength.
func (p *Provider) ResolveCalls(strength int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolves[strength]
}

// Calls returns how many times op reached the primitives, including calls
// that returned a forced status.
func (p *Provider) Calls(op string) int64 {
	switch op {
	case OpKeygen:
		return p.keygens.Load()
	case OpEncaps:
		return p.encaps.Load()
	case OpDecaps:
		return p.decaps.Load()
	default:
		return 0
	}
}

// Closes returns how many resolved primitives were closed.
func (p *Provider) Closes() int64 { return p.closes.Load() }

// unseeded exposes only the three mandatory primitives and io.Closer.
type unseeded struct{ inner *primitives }

func (u unseeded) Keygen(ek, dk []byte) backend.Status     { return u.inner.Keygen(ek, dk) }
func (u unseeded) Encaps(ek, ct, ss []byte) backend.Status { return u.inner.Encaps(ek, ct, ss) }
func (u unseeded) Decaps(dk, ct, ss []byte) backend.Status { return u.inner.Decaps(dk, ct, ss) }
func (u unseeded) Close() error                            { return u.inner.Close() }

// primitives implements a toy KEM:
//
//	dk = filler(384·k) || ek || SHA3-256(ek) || z
//	ct = m || SHAKE256(ek || m)
//	ss = SHA3-256("ss" || ek || m), or SHA3-256("reject" || z || ct) when
//	     the ciphertext tail does not verify.
type primitives struct {
	p  *Provider
	sz sizes
}

func (t *primitives) forced(op string) (backend.Status, bool) {
	st, ok := t.p.forced[op]
	return st, ok
}

func (t *primitives) Keygen(ek, dk []byte) backend.Status {
	t.p.keygens.Add(1)
	if st, ok := t.forced(OpKeygen); ok {
		return st
	}
	seed := make([]byte, 64)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return backend.StatusKeygen
	}
	return t.keygenFromSeed(seed, ek, dk)
}

func (t *primitives) KeygenFromSeed(seed, ek, dk []byte) backend.Status {
	t.p.keygens.Add(1)
	if st, ok := t.forced(OpKeygen); ok {
		return st
	}
	return t.keygenFromSeed(seed, ek, dk)
}

func (t *primitives) keygenFromSeed(seed, ek, dk []byte) backend.Status {
	if seed == nil || ek == nil || dk == nil {
		return backend.StatusNullPointer
	}
	if len(seed) != 64 || len(ek) != t.sz.ek || len(dk) != t.sz.dk {
		return backend.StatusSerialization
	}
	d, z := seed[:32], seed[32:]
	sha3.ShakeSum256(ek, append([]byte("ek"), d...))

	off := 384 * t.sz.rank
	sha3.ShakeSum256(dk[:off], append([]byte("dk"), d...))
	copy(dk[off:], ek)
	h := sha3.Sum256(ek)
	copy(dk[off+len(ek):], h[:])
	copy(dk[off+len(ek)+len(h):], z)
	return backend.StatusOK
}

func (t *primitives) Encaps(ek, ct, ss []byte) backend.Status {
	t.p.encaps.Add(1)
	if st, ok := t.forced(OpEncaps); ok {
		return st
	}
	m := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, m); err != nil {
		return backend.StatusEncapsulation
	}
	return t.encapsFromSeed(ek, m, ct, ss)
}

func (t *primitives) EncapsFromSeed(ek, m, ct, ss []byte) backend.Status {
	t.p.encaps.Add(1)
	if st, ok := t.forced(OpEncaps); ok {
		return st
	}
	return t.encapsFromSeed(ek, m, ct, ss)
}

func (t *primitives) encapsFromSeed(ek, m, ct, ss []byte) backend.Status {
	if ek == nil || m == nil || ct == nil || ss == nil {
		return backend.StatusNullPointer
	}
	if len(ek) != t.sz.ek || len(m) != 32 || len(ct) != t.sz.ct || len(ss) != 32 {
		return backend.StatusSerialization
	}
	copy(ct, m)
	sha3.ShakeSum256(ct[32:], concat(ek, m))
	secret := sha3.Sum256(concat([]byte("ss"), ek, m))
	copy(ss, secret[:])
	return backend.StatusOK
}

func (t *primitives) Decaps(dk, ct, ss []byte) backend.Status {
	t.p.decaps.Add(1)
	if st, ok := t.forced(OpDecaps); ok {
		return st
	}
	if dk == nil || ct == nil || ss == nil {
		return backend.StatusNullPointer
	}
	if len(dk) != t.sz.dk || len(ct) != t.sz.ct || len(ss) != 32 {
		return backend.StatusSerialization
	}
	off := 384 * t.sz.rank
	ek := dk[off : off+t.sz.ek]
	z := dk[len(dk)-32:]
	m := ct[:32]

	tail := make([]byte, len(ct)-32)
	sha3.ShakeSum256(tail, concat(ek, m))
	var secret [32]byte
	if subtle.ConstantTimeCompare(tail, ct[32:]) == 1 {
		secret = sha3.Sum256(concat([]byte("ss"), ek, m))
	} else {
		secret = sha3.Sum256(concat([]byte("reject"), z, ct))
	}
	copy(ss, secret[:])
	return backend.StatusOK
}

func (t *primitives) Close() error {
	t.p.closes.Add(1)
	return nil
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
