//go:build !cgo || !fips203ffi || windows

package ffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/fips203-go/pkg/fips203"
	"github.com/coinbase/fips203-go/pkg/fips203/backend"
	"github.com/coinbase/fips203-go/pkg/fips203/backend/ffi"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

func TestStubResolveFails(t *testing.T) {
	p := ffi.New()
	assert.Equal(t, ffi.Name, p.Name())
	assert.False(t, ffi.Built())

	for _, strength := range []int{512, 768, 1024} {
		prims, err := p.Resolve(strength)
		assert.Nil(t, prims)
		assert.ErrorIs(t, err, backend.ErrUnsupportedStrength)
		assert.ErrorIs(t, err, ffi.ErrNotBuilt)
	}
}

func TestMissingLibraryIsConfigurationError(t *testing.T) {
	_, err := fips203.Open(fips203.Config{
		Backend: ffi.New(),
		Logger:  logging.Discard(),
		Preload: []fips203.ParameterSet{fips203.MLKEM768},
	})
	require.ErrorIs(t, err, fips203.ErrConfiguration)
	assert.ErrorIs(t, err, ffi.ErrNotBuilt)

	var ce *fips203.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "ffi", ce.Backend)
	assert.Equal(t, fips203.MLKEM768, ce.ParameterSet)

	lib, err := fips203.Open(fips203.Config{Backend: ffi.New(), Logger: logging.Discard()})
	require.NoError(t, err)
	for _, ps := range fips203.ParameterSets() {
		_, _, err := lib.GenerateKey(ps)
		assert.ErrorIs(t, err, fips203.ErrConfiguration, ps.String())
	}
}
