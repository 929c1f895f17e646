package fips203

import (
	"errors"
	"fmt"
	"strconv"
)

// ParameterSet identifies one of the three FIPS 203 strengths. The numeric
// value is the strength itself.
type ParameterSet int

// The ML-KEM parameter sets.
const (
	MLKEM512  ParameterSet = 512
	MLKEM768  ParameterSet = 768
	MLKEM1024 ParameterSet = 1024
)

// Sizes that do not depend on the parameter set.
const (
	// SharedSecretSize is the length of every ML-KEM shared secret.
	SharedSecretSize = 32

	// SeedSize is the length of the d || z seed accepted by
	// KEM.GenerateKeyFromSeed.
	SeedSize = 64

	// EncapsulationSeedSize is the length of the message m accepted by
	// EncapsulationKey.EncapsulateFromSeed.
	EncapsulationSeedSize = 32
)

// Role names the kind of serialized object a byte length refers to.
type Role int

const (
	RoleEncapsulationKey Role = iota + 1
	RoleDecapsulationKey
	RoleCiphertext
)

func (r Role) String() string {
	switch r {
	case RoleEncapsulationKey:
		return "encapsulation key"
	case RoleDecapsulationKey:
		return "decapsulation key"
	case RoleCiphertext:
		return "ciphertext"
	default:
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
}

type paramEntry struct {
	set   ParameterSet
	rank  int
	ekLen int
	dkLen int
	ctLen int
	ssLen int
}

func (e paramEntry) size(r Role) int {
	switch r {
	case RoleEncapsulationKey:
		return e.ekLen
	case RoleDecapsulationKey:
		return e.dkLen
	case RoleCiphertext:
		return e.ctLen
	default:
		return 0
	}
}

// registry is ordered by strength; index() relies on that order.
var registry = [...]paramEntry{
	{set: MLKEM512, rank: 2, ekLen: 800, dkLen: 1632, ctLen: 768, ssLen: SharedSecretSize},
	{set: MLKEM768, rank: 3, ekLen: 1184, dkLen: 2400, ctLen: 1088, ssLen: SharedSecretSize},
	{set: MLKEM1024, rank: 4, ekLen: 1568, dkLen: 3168, ctLen: 1568, ssLen: SharedSecretSize},
}

var roles = [...]Role{RoleEncapsulationKey, RoleDecapsulationKey, RoleCiphertext}

func init() {
	if err := checkRegistry(registry[:]); err != nil {
		panic(err)
	}
}

// checkRegistry rejects tables that would make length inference ambiguous.
func checkRegistry(table []paramEntry) error {
	seenSet := make(map[ParameterSet]bool, len(table))
	for _, e := range table {
		if seenSet[e.set] {
			return fmt.Errorf("fips203: duplicate registry entry for %s", e.set)
		}
		seenSet[e.set] = true
		if e.ssLen != SharedSecretSize {
			return fmt.Errorf("fips203: %s shared secret is %d bytes, want %d", e.set, e.ssLen, SharedSecretSize)
		}
	}
	for _, r := range roles {
		seen := make(map[int]ParameterSet, len(table))
		for _, e := range table {
			n := e.size(r)
			if n <= 0 {
				return fmt.Errorf("fips203: %s has no %s length", e.set, r)
			}
			if prev, ok := seen[n]; ok {
				return fmt.Errorf("%w: %s of %d bytes for both %s and %s", ErrAmbiguousLength, r, n, prev, e.set)
			}
			seen[n] = e.set
		}
	}
	return nil
}

func (p ParameterSet) entry() (paramEntry, bool) {
	i := p.index()
	if i < 0 {
		return paramEntry{}, false
	}
	return registry[i], true
}

func (p ParameterSet) index() int {
	switch p {
	case MLKEM512:
		return 0
	case MLKEM768:
		return 1
	case MLKEM1024:
		return 2
	default:
		return -1
	}
}

// Valid reports whether p is one of the three ML-KEM parameter sets.
func (p ParameterSet) Valid() bool { return p.index() >= 0 }

func (p ParameterSet) String() string {
	if !p.Valid() {
		return "ML-KEM(unknown " + strconv.Itoa(int(p)) + ")"
	}
	return "ML-KEM-" + strconv.Itoa(int(p))
}

// EncapsulationKeySize returns the serialized encapsulation key length, or 0
// for an invalid parameter set.
func (p ParameterSet) EncapsulationKeySize() int { return p.Size(RoleEncapsulationKey) }

// DecapsulationKeySize returns the serialized decapsulation key length.
func (p ParameterSet) DecapsulationKeySize() int { return p.Size(RoleDecapsulationKey) }

// CiphertextSize returns the serialized ciphertext length.
func (p ParameterSet) CiphertextSize() int { return p.Size(RoleCiphertext) }

// SharedSecretSize returns 32 for every valid parameter set.
func (p ParameterSet) SharedSecretSize() int {
	e, _ := p.entry()
	return e.ssLen
}

// Rank returns the module rank k (2, 3 or 4).
func (p ParameterSet) Rank() int {
	e, _ := p.entry()
	return e.rank
}

// Size returns the serialized length of role under p.
func (p ParameterSet) Size(r Role) int {
	e, _ := p.entry()
	return e.size(r)
}

// ParameterSets returns the supported parameter sets in ascending strength.
func ParameterSets() []ParameterSet {
	out := make([]ParameterSet, len(registry))
	for i, e := range registry {
		out[i] = e.set
	}
	return out
}

// LookupParameterSet maps a strength identifier (512, 768, 1024) to its
// parameter set.
func LookupParameterSet(id int) (ParameterSet, error) {
	p := ParameterSet(id)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParameterSet, id)
	}
	return p, nil
}

// ParameterSetForLength returns the unique parameter set whose role length
// equals n.
func ParameterSetForLength(r Role, n int) (ParameterSet, error) {
	return lengthLookup(registry[:], r, n)
}

func lengthLookup(table []paramEntry, r Role, n int) (ParameterSet, error) {
	if r < RoleEncapsulationKey || r > RoleCiphertext {
		return 0, errors.New("fips203: unknown role " + r.String())
	}
	var (
		found ParameterSet
		count int
	)
	expected := make([]int, 0, len(table))
	for _, e := range table {
		size := e.size(r)
		expected = append(expected, size)
		if size == n {
			found = e.set
			count++
		}
	}
	switch {
	case count == 1:
		return found, nil
	case count > 1:
		return 0, fmt.Errorf("%w: %d parameter sets have a %d-byte %s", ErrAmbiguousLength, count, n, r)
	default:
		return 0, &LengthError{Role: r, Expected: expected, Actual: n}
	}
}
