package fips203

import (
	"crypto/subtle"
	"runtime"
)

// EncapsulationKey is an ML-KEM public key. It owns exactly
// ps.EncapsulationKeySize() bytes and is immutable.
type EncapsulationKey struct {
	*encapsulationKey
}

// DecapsulationKey is an ML-KEM private key. It owns exactly
// ps.DecapsulationKeySize() bytes and is immutable. Unless zeroization is
// disabled, its buffer is scrubbed once the key becomes unreachable.
type DecapsulationKey struct {
	*decapsulationKey
}

// Ciphertext is an ML-KEM ciphertext. It owns exactly ps.CiphertextSize()
// bytes and is immutable.
type Ciphertext struct {
	*ciphertext
}

// State lives behind a pointer: a dereferenced copy prints as an address, and
// the scrub finalizer belongs to the buffer owner.
type encapsulationKey struct {
	set  ParameterSet
	data []byte
	lib  *Library
}

type decapsulationKey struct {
	set  ParameterSet
	data []byte
	lib  *Library
}

type ciphertext struct {
	set  ParameterSet
	data []byte
}

func (ek *EncapsulationKey) isNil() bool { return ek == nil || ek.encapsulationKey == nil }
func (dk *DecapsulationKey) isNil() bool { return dk == nil || dk.decapsulationKey == nil }
func (ct *Ciphertext) isNil() bool       { return ct == nil || ct.ciphertext == nil }

func (l *Library) emptyEncapsulationKey(ps ParameterSet) *EncapsulationKey {
	return &EncapsulationKey{&encapsulationKey{set: ps, data: make([]byte, ps.EncapsulationKeySize()), lib: l}}
}

func (l *Library) emptyDecapsulationKey(ps ParameterSet) *DecapsulationKey {
	inner := &decapsulationKey{set: ps, data: make([]byte, ps.DecapsulationKeySize()), lib: l}
	if l.zeroize {
		runtime.SetFinalizer(inner, (*decapsulationKey).scrub)
	}
	return &DecapsulationKey{inner}
}

func (l *Library) emptyCiphertext(ps ParameterSet) *Ciphertext {
	return &Ciphertext{&ciphertext{set: ps, data: make([]byte, ps.CiphertextSize())}}
}

func (dk *decapsulationKey) scrub() {
	ZeroizeBytes(dk.data)
}

// ParameterSet returns the parameter set the key was created for.
func (ek *EncapsulationKey) ParameterSet() ParameterSet {
	if ek.isNil() {
		return 0
	}
	return ek.set
}

// Bytes returns a copy of the serialized key.
func (ek *EncapsulationKey) Bytes() []byte {
	if ek.isNil() {
		return nil
	}
	out := make([]byte, len(ek.data))
	copy(out, ek.data)
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler. It never fails.
func (ek *EncapsulationKey) MarshalBinary() ([]byte, error) { return ek.Bytes(), nil }

// Equal reports whether both keys have the same parameter set and bytes.
func (ek *EncapsulationKey) Equal(other *EncapsulationKey) bool {
	if ek.isNil() || other.isNil() {
		return ek.isNil() && other.isNil()
	}
	return ek.set == other.set && subtle.ConstantTimeCompare(ek.data, other.data) == 1
}

// Encapsulate produces a fresh ciphertext for ek and the 32-byte shared
// secret it carries.
func (ek *EncapsulationKey) Encapsulate() (*Ciphertext, []byte, error) {
	if ek.isNil() {
		return nil, nil, ErrNilObject
	}
	lib := libOrDefault(ek.lib)
	b, err := lib.binding(ek.set)
	if err != nil {
		return nil, nil, err
	}
	ct := lib.emptyCiphertext(ek.set)
	ss := make([]byte, SharedSecretSize)
	if err := b.encaps(ek.data, ct.data, ss); err != nil {
		ZeroizeBytes(ss)
		return nil, nil, err
	}
	return ct, ss, nil
}

// EncapsulateFromSeed is the derandomized form of Encapsulate: the 32-byte
// message m replaces fresh randomness. The same (ek, m) always yields the same
// ciphertext and secret, so m must be secret and never reused.
func (ek *EncapsulationKey) EncapsulateFromSeed(m []byte) (*Ciphertext, []byte, error) {
	if ek.isNil() {
		return nil, nil, ErrNilObject
	}
	if len(m) != EncapsulationSeedSize {
		return nil, nil, invalidSeed(EncapsulationSeedSize, len(m))
	}
	lib := libOrDefault(ek.lib)
	b, err := lib.binding(ek.set)
	if err != nil {
		return nil, nil, err
	}
	ct := lib.emptyCiphertext(ek.set)
	ss := make([]byte, SharedSecretSize)
	if err := b.encapsFromSeed(ek.data, m, ct.data, ss); err != nil {
		ZeroizeBytes(ss)
		return nil, nil, err
	}
	return ct, ss, nil
}

// ParameterSet returns the parameter set the key was created for.
func (dk *DecapsulationKey) ParameterSet() ParameterSet {
	if dk.isNil() {
		return 0
	}
	return dk.set
}

// Bytes returns a copy of the serialized key. The copy is secret material and
// is not scrubbed by the library.
func (dk *DecapsulationKey) Bytes() []byte {
	if dk.isNil() {
		return nil
	}
	out := make([]byte, len(dk.data))
	copy(out, dk.data)
	runtime.KeepAlive(dk)
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler. It never fails.
func (dk *DecapsulationKey) MarshalBinary() ([]byte, error) { return dk.Bytes(), nil }

// Equal reports whether both keys have the same parameter set and bytes. The
// comparison runs in constant time for equal-length keys.
func (dk *DecapsulationKey) Equal(other *DecapsulationKey) bool {
	if dk.isNil() || other.isNil() {
		return dk.isNil() && other.isNil()
	}
	eq := dk.set == other.set && subtle.ConstantTimeCompare(dk.data, other.data) == 1
	runtime.KeepAlive(dk)
	runtime.KeepAlive(other)
	return eq
}

// Decapsulate recovers the shared secret carried by ct. ct must come from the
// same parameter set as dk. A malformed ciphertext of the right size is not an
// error: the result is the implicit rejection secret, which will not match the
// sender's.
func (dk *DecapsulationKey) Decapsulate(ct *Ciphertext) ([]byte, error) {
	if dk.isNil() || ct.isNil() {
		return nil, ErrNilObject
	}
	if dk.set != ct.set {
		return nil, &StrengthMismatchError{Key: dk.set, Ciphertext: ct.set}
	}
	b, err := libOrDefault(dk.lib).binding(dk.set)
	if err != nil {
		return nil, err
	}
	ss := make([]byte, SharedSecretSize)
	err = b.decaps(dk.data, ct.data, ss)
	runtime.KeepAlive(dk)
	if err != nil {
		ZeroizeBytes(ss)
		return nil, err
	}
	return ss, nil
}

// EncapsulationKey returns the encapsulation key embedded in dk. FIPS 203
// lays out a decapsulation key as dkPKE || ek || H(ek) || z, with dkPKE
// 384·k bytes long.
func (dk *DecapsulationKey) EncapsulationKey() *EncapsulationKey {
	if dk.isNil() {
		return nil
	}
	off := dkEncapsulationKeyOffset(dk.set)
	ek := libOrDefault(dk.lib).emptyEncapsulationKey(dk.set)
	copy(ek.data, dk.data[off:off+len(ek.data)])
	runtime.KeepAlive(dk)
	return ek
}

func dkEncapsulationKeyOffset(ps ParameterSet) int {
	return 384 * ps.Rank()
}

// ParameterSet returns the parameter set the ciphertext belongs to.
func (ct *Ciphertext) ParameterSet() ParameterSet {
	if ct.isNil() {
		return 0
	}
	return ct.set
}

// Bytes returns a copy of the serialized ciphertext.
func (ct *Ciphertext) Bytes() []byte {
	if ct.isNil() {
		return nil
	}
	out := make([]byte, len(ct.data))
	copy(out, ct.data)
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler. It never fails.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) { return ct.Bytes(), nil }

// Equal reports whether both ciphertexts have the same parameter set and
// bytes.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct.isNil() || other.isNil() {
		return ct.isNil() && other.isNil()
	}
	return ct.set == other.set && subtle.ConstantTimeCompare(ct.data, other.data) == 1
}
