package fips203

import (
	"crypto/subtle"
	"fmt"
	"runtime"

	"golang.org/x/crypto/sha3"
)

// ValidateKeyPair checks that ek and dk form an ML-KEM key pair: both use
// the same parameter set, dk embeds ek followed by SHA3-256(ek), and a round
// trip through Encapsulate and Decapsulate agrees. Failures wrap
// ErrInvalidKeyPair, or ErrStrengthMismatch when the parameter sets differ.
//
// The check runs in variable time with respect to whether the keys match.
func ValidateKeyPair(ek *EncapsulationKey, dk *DecapsulationKey) error {
	if ek.isNil() || dk.isNil() {
		return ErrNilObject
	}
	if !ek.set.Valid() {
		return fmt.Errorf("%w: encapsulation key has %d", ErrUnknownParameterSet, int(ek.set))
	}
	if !dk.set.Valid() {
		return fmt.Errorf("%w: decapsulation key has %d", ErrUnknownParameterSet, int(dk.set))
	}
	if ek.set != dk.set {
		return fmt.Errorf("%w: %s encapsulation key with %s decapsulation key", ErrStrengthMismatch, ek.set, dk.set)
	}
	defer runtime.KeepAlive(dk)

	off := dkEncapsulationKeyOffset(dk.set)
	ekLen := len(ek.data)
	if subtle.ConstantTimeCompare(dk.data[off:off+ekLen], ek.data) != 1 {
		return fmt.Errorf("%w: decapsulation key does not embed the encapsulation key", ErrInvalidKeyPair)
	}
	h := sha3.Sum256(ek.data)
	if subtle.ConstantTimeCompare(dk.data[off+ekLen:off+ekLen+len(h)], h[:]) != 1 {
		return fmt.Errorf("%w: encapsulation key hash mismatch", ErrInvalidKeyPair)
	}

	ct, ss1, err := ek.Encapsulate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyPair, err)
	}
	defer ZeroizeBytes(ss1)
	ss2, err := dk.Decapsulate(ct)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyPair, err)
	}
	defer ZeroizeBytes(ss2)
	if subtle.ConstantTimeCompare(ss1, ss2) != 1 {
		return fmt.Errorf("%w: encapsulation round trip disagrees", ErrInvalidKeyPair)
	}
	return nil
}
