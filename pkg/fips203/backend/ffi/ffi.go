package ffi

import (
	"errors"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
)

// Name is the identifier reported by Provider.Name.
const Name = "ffi"

// ErrNotBuilt reports that the native binding was not compiled into the
// binary, either because cgo is disabled or the fips203ffi tag is missing.
var ErrNotBuilt = errors.New("ffi: native fips203 bindings not built")

// Provider resolves primitives from libfips203.
type Provider struct{}

var _ backend.Provider = (*Provider)(nil)

// New returns a provider for the native library.
func New() *Provider { return &Provider{} }

// Name implements backend.Provider.
func (p *Provider) Name() string { return Name }
