package fips203

import (
	"github.com/coinbase/fips203-go/pkg/fips203/backend"
	"github.com/coinbase/fips203-go/pkg/fips203/backend/circl"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

// Config expresses the knobs used when opening a Library.
type Config struct {
	// Backend supplies the ML-KEM primitives. Leaving it nil selects the
	// pure Go circl backend.
	Backend backend.Provider

	// Logger receives binding and backend failure events. Nil binds to
	// slog.Default().
	Logger logging.Logger

	// DisableZeroization turns off the finalizer that scrubs decapsulation
	// key buffers once they become unreachable.
	DisableZeroization bool

	// Preload lists parameter sets to resolve during Open, so that a
	// misconfigured backend fails at startup instead of at first use.
	Preload []ParameterSet
}

func (c Config) provider() backend.Provider {
	if c.Backend == nil {
		return circl.New()
	}
	return c.Backend
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.New(nil)
	}
	return c.Logger
}
