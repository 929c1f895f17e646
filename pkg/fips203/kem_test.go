package fips203_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/fips203-go/pkg/fips203"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

func openCircl(t *testing.T) *fips203.Library {
	t.Helper()
	lib, err := fips203.Open(fips203.Config{Logger: logging.Discard()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestRoundTrip(t *testing.T) {
	lib := openCircl(t)
	for _, ps := range fips203.ParameterSets() {
		t.Run(ps.String(), func(t *testing.T) {
			ek, dk, err := lib.GenerateKey(ps)
			require.NoError(t, err)
			assert.Equal(t, ps, ek.ParameterSet())
			assert.Equal(t, ps, dk.ParameterSet())
			assert.Len(t, ek.Bytes(), ps.EncapsulationKeySize())
			assert.Len(t, dk.Bytes(), ps.DecapsulationKeySize())

			ct, secret, err := ek.Encapsulate()
			require.NoError(t, err)
			assert.Equal(t, ps, ct.ParameterSet())
			assert.Len(t, ct.Bytes(), ps.CiphertextSize())
			assert.Len(t, secret, fips203.SharedSecretSize)

			recovered, err := dk.Decapsulate(ct)
			require.NoError(t, err)
			assert.Equal(t, secret, recovered)
		})
	}
}

func TestRoundTripThroughBytes(t *testing.T) {
	lib := openCircl(t)
	for _, ps := range fips203.ParameterSets() {
		t.Run(ps.String(), func(t *testing.T) {
			ek, dk, err := lib.GenerateKey(ps)
			require.NoError(t, err)

			ek2, err := lib.NewEncapsulationKey(ek.Bytes())
			require.NoError(t, err)
			dk2, err := lib.NewDecapsulationKey(dk.Bytes())
			require.NoError(t, err)
			assert.True(t, ek.Equal(ek2))
			assert.True(t, dk.Equal(dk2))

			ct, secret, err := ek2.Encapsulate()
			require.NoError(t, err)
			ctBytes, err := ct.MarshalBinary()
			require.NoError(t, err)

			ct2, err := lib.NewCiphertext(ctBytes)
			require.NoError(t, err)
			assert.Equal(t, ps, ct2.ParameterSet())
			assert.True(t, ct.Equal(ct2))

			recovered, err := dk2.Decapsulate(ct2)
			require.NoError(t, err)
			assert.Equal(t, secret, recovered)
		})
	}
}

func TestFreshness(t *testing.T) {
	lib := openCircl(t)
	ek1, dk1, err := lib.GenerateKey(fips203.MLKEM768)
	require.NoError(t, err)
	ek2, dk2, err := lib.GenerateKey(fips203.MLKEM768)
	require.NoError(t, err)
	assert.False(t, ek1.Equal(ek2))
	assert.False(t, dk1.Equal(dk2))

	ct1, ss1, err := ek1.Encapsulate()
	require.NoError(t, err)
	ct2, ss2, err := ek1.Encapsulate()
	require.NoError(t, err)
	assert.False(t, ct1.Equal(ct2))
	assert.NotEqual(t, ss1, ss2)
}

func TestImplicitRejection(t *testing.T) {
	lib := openCircl(t)
	for _, ps := range fips203.ParameterSets() {
		t.Run(ps.String(), func(t *testing.T) {
			ek, dk, err := lib.GenerateKey(ps)
			require.NoError(t, err)
			ct, secret, err := ek.Encapsulate()
			require.NoError(t, err)

			tampered := ct.Bytes()
			tampered[0] ^= 0x01
			bad, err := lib.NewCiphertext(tampered)
			require.NoError(t, err)

			rejected, err := dk.Decapsulate(bad)
			require.NoError(t, err, "a malformed ciphertext must not be reported")
			assert.Len(t, rejected, fips203.SharedSecretSize)
			assert.NotEqual(t, secret, rejected)

			again, err := dk.Decapsulate(bad)
			require.NoError(t, err)
			assert.Equal(t, rejected, again, "implicit rejection is deterministic")

			random := make([]byte, ps.CiphertextSize())
			_, err = rand.Read(random)
			require.NoError(t, err)
			junk, err := lib.NewCiphertext(random)
			require.NoError(t, err)
			junkSecret, err := dk.Decapsulate(junk)
			require.NoError(t, err)
			assert.Len(t, junkSecret, fips203.SharedSecretSize)
			assert.NotEqual(t, secret, junkSecret)
		})
	}
}

func TestDecapsulateWithWrongKey(t *testing.T) {
	lib := openCircl(t)
	ek, _, err := lib.GenerateKey(fips203.MLKEM512)
	require.NoError(t, err)
	_, other, err := lib.GenerateKey(fips203.MLKEM512)
	require.NoError(t, err)

	ct, secret, err := ek.Encapsulate()
	require.NoError(t, err)
	got, err := other.Decapsulate(ct)
	require.NoError(t, err)
	assert.NotEqual(t, secret, got)
}

func TestDecapsulateStrengthMismatch(t *testing.T) {
	lib := openCircl(t)
	_, dk, err := lib.GenerateKey(fips203.MLKEM768)
	require.NoError(t, err)
	ek, _, err := lib.GenerateKey(fips203.MLKEM1024)
	require.NoError(t, err)
	ct, _, err := ek.Encapsulate()
	require.NoError(t, err)

	ss, err := dk.Decapsulate(ct)
	require.ErrorIs(t, err, fips203.ErrStrengthMismatch)
	assert.Nil(t, ss)

	var sm *fips203.StrengthMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, fips203.MLKEM768, sm.Key)
	assert.Equal(t, fips203.MLKEM1024, sm.Ciphertext)
}

func TestKEMConstructorsRequireExactLength(t *testing.T) {
	lib := openCircl(t)
	k, err := lib.KEM(fips203.MLKEM768)
	require.NoError(t, err)
	assert.Equal(t, fips203.MLKEM768, k.ParameterSet())
	assert.Equal(t, "circl", k.Backend())

	// A valid ML-KEM-1024 length is still wrong for an ML-KEM-768 KEM.
	_, err = k.NewEncapsulationKey(make([]byte, fips203.MLKEM1024.EncapsulationKeySize()))
	require.ErrorIs(t, err, fips203.ErrLengthMismatch)

	var le *fips203.LengthError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, fips203.MLKEM768, le.ParameterSet)
	assert.Equal(t, []int{1184}, le.Expected)
	assert.Equal(t, 1568, le.Actual)
	assert.Equal(t, "fips203: ML-KEM-768 encapsulation key must be 1184 bytes, got 1568", err.Error())

	_, err = k.NewDecapsulationKey(make([]byte, 2399))
	assert.ErrorIs(t, err, fips203.ErrLengthMismatch)
	_, err = k.NewCiphertext(nil)
	assert.ErrorIs(t, err, fips203.ErrLengthMismatch)

	ek, err := k.NewEncapsulationKey(make([]byte, 1184))
	require.NoError(t, err)
	assert.Equal(t, fips203.MLKEM768, ek.ParameterSet())
	dk, err := k.NewDecapsulationKey(make([]byte, 2400))
	require.NoError(t, err)
	assert.Equal(t, fips203.MLKEM768, dk.ParameterSet())
	ct, err := k.NewCiphertext(make([]byte, 1088))
	require.NoError(t, err)
	assert.Equal(t, fips203.MLKEM768, ct.ParameterSet())
}

func TestInferenceConstructorsRejectUnknownLengths(t *testing.T) {
	lib := openCircl(t)
	_, err := lib.NewEncapsulationKey(make([]byte, 801))
	assert.ErrorIs(t, err, fips203.ErrLengthMismatch)
	_, err = lib.NewDecapsulationKey(make([]byte, 1184))
	assert.ErrorIs(t, err, fips203.ErrLengthMismatch)
	_, err = lib.NewCiphertext(make([]byte, 800))
	assert.ErrorIs(t, err, fips203.ErrLengthMismatch)
	_, err = lib.NewCiphertext(nil)
	assert.ErrorIs(t, err, fips203.ErrLengthMismatch)
}

func TestDefensiveCopies(t *testing.T) {
	lib := openCircl(t)
	ek, dk, err := lib.GenerateKey(fips203.MLKEM512)
	require.NoError(t, err)

	input := ek.Bytes()
	parsed, err := lib.NewEncapsulationKey(input)
	require.NoError(t, err)
	for i := range input {
		input[i] = 0xFF
	}
	assert.True(t, parsed.Equal(ek), "mutating the input must not affect the key")

	out := dk.Bytes()
	orig := append([]byte(nil), out...)
	for i := range out {
		out[i] = 0
	}
	assert.Equal(t, orig, dk.Bytes(), "mutating Bytes() must not affect the key")

	ct, _, err := ek.Encapsulate()
	require.NoError(t, err)
	raw := ct.Bytes()
	raw[0] ^= 0xFF
	assert.NotEqual(t, raw, ct.Bytes())
}

func TestEqual(t *testing.T) {
	lib := openCircl(t)
	ek, dk, err := lib.GenerateKey(fips203.MLKEM512)
	require.NoError(t, err)

	var nilEK *fips203.EncapsulationKey
	assert.True(t, nilEK.Equal(nil))
	assert.False(t, ek.Equal(nil))
	assert.False(t, nilEK.Equal(ek))

	var nilDK *fips203.DecapsulationKey
	assert.False(t, dk.Equal(nilDK))

	// Same bytes under different parameter sets are not equal.
	ct512, err := lib.NewCiphertext(make([]byte, 768))
	require.NoError(t, err)
	k1024, err := lib.KEM(fips203.MLKEM1024)
	require.NoError(t, err)
	ctOther, err := k1024.NewCiphertext(make([]byte, 1568))
	require.NoError(t, err)
	assert.False(t, ct512.Equal(ctOther))
}

func TestNilObjects(t *testing.T) {
	lib := openCircl(t)
	_, dk, err := lib.GenerateKey(fips203.MLKEM512)
	require.NoError(t, err)

	var ek *fips203.EncapsulationKey
	_, _, err = ek.Encapsulate()
	assert.ErrorIs(t, err, fips203.ErrNilObject)

	_, err = dk.Decapsulate(nil)
	assert.ErrorIs(t, err, fips203.ErrNilObject)

	var nilDK *fips203.DecapsulationKey
	assert.Nil(t, nilDK.Bytes())
	assert.Nil(t, nilDK.EncapsulationKey())
}

func TestDecapsulationKeyEmbedsEncapsulationKey(t *testing.T) {
	lib := openCircl(t)
	for _, ps := range fips203.ParameterSets() {
		ek, dk, err := lib.GenerateKey(ps)
		require.NoError(t, err)
		assert.True(t, ek.Equal(dk.EncapsulationKey()), ps.String())
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	ek, dk, err := fips203.GenerateKey(fips203.MLKEM768)
	require.NoError(t, err)

	ek2, err := fips203.NewEncapsulationKey(ek.Bytes())
	require.NoError(t, err)
	dk2, err := fips203.NewDecapsulationKey(dk.Bytes())
	require.NoError(t, err)

	ct, secret, err := ek2.Encapsulate()
	require.NoError(t, err)
	ct2, err := fips203.NewCiphertext(ct.Bytes())
	require.NoError(t, err)

	got, err := dk2.Decapsulate(ct2)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
	assert.Equal(t, "circl", fips203.Default().Backend())

	_, _, err = fips203.GenerateKey(fips203.ParameterSet(42))
	assert.ErrorIs(t, err, fips203.ErrUnknownParameterSet)
}

func TestDefaultLibraryIgnoresClose(t *testing.T) {
	require.NoError(t, fips203.Default().Close())
	require.NoError(t, fips203.Default().Close())

	ek, dk, err := fips203.GenerateKey(fips203.MLKEM512)
	require.NoError(t, err)
	ct, secret, err := ek.Encapsulate()
	require.NoError(t, err)
	got, err := dk.Decapsulate(ct)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}
