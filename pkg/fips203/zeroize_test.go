package fips203

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/fips203-go/pkg/fips203/internal/testbackend"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

func TestZeroizeBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	ZeroizeBytes(buf)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)
	ZeroizeBytes(nil)
}

func TestScrubClearsDecapsulationKey(t *testing.T) {
	lib, err := Open(Config{Backend: testbackend.New(), Logger: logging.Discard()})
	require.NoError(t, err)
	_, dk, err := lib.GenerateKey(MLKEM768)
	require.NoError(t, err)
	require.NotEqual(t, make([]byte, len(dk.data)), dk.data)

	dk.scrub()
	assert.Equal(t, make([]byte, MLKEM768.DecapsulationKeySize()), dk.data)
}

func TestDisableZeroization(t *testing.T) {
	lib, err := Open(Config{Backend: testbackend.New(), Logger: logging.Discard(), DisableZeroization: true})
	require.NoError(t, err)
	assert.False(t, lib.zeroize)

	lib, err = Open(Config{Backend: testbackend.New(), Logger: logging.Discard()})
	require.NoError(t, err)
	assert.True(t, lib.zeroize)
}
