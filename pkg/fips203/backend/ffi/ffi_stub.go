//go:build !cgo || !fips203ffi || windows

package ffi

import (
	"fmt"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
)

// Built reports whether the native binding is compiled in.
func Built() bool { return false }

// Resolve implements backend.Provider. Without the native binding every
// strength is unsupported.
func (p *Provider) Resolve(strength int) (backend.Primitives, error) {
	return nil, fmt.Errorf("%w: ML-KEM-%d: %w", backend.ErrUnsupportedStrength, strength, ErrNotBuilt)
}
