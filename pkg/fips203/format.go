package fips203

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

// Key and ciphertext values print their type and parameter set for every fmt
// verb. Their bytes are only reachable through Bytes and MarshalBinary.

func describe(kind string, set ParameterSet) string {
	return "<" + set.String() + " " + kind + ">"
}

func writeFormatted(f fmt.State, verb rune, s, gs string) {
	if verb == 'v' && f.Flag('#') {
		_, _ = io.WriteString(f, gs)
		return
	}
	_, _ = io.WriteString(f, s)
}

func (ek *EncapsulationKey) String() string {
	if ek.isNil() {
		return "<nil>"
	}
	return describe("EncapsulationKey", ek.set)
}

func (ek *EncapsulationKey) GoString() string {
	if ek.isNil() {
		return "(*fips203.EncapsulationKey)(nil)"
	}
	return "fips203.EncapsulationKey{" + ek.set.String() + "}"
}

// Format implements fmt.Formatter.
func (ek *EncapsulationKey) Format(f fmt.State, verb rune) {
	writeFormatted(f, verb, ek.String(), ek.GoString())
}

// LogValue implements slog.LogValuer.
func (ek *EncapsulationKey) LogValue() slog.Value {
	if ek.isNil() {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("type", "EncapsulationKey"),
		slog.String("parameter_set", ek.set.String()),
		slog.Int("size", len(ek.data)),
	)
}

func (dk *DecapsulationKey) String() string {
	if dk.isNil() {
		return "<nil>"
	}
	return describe("DecapsulationKey", dk.set)
}

func (dk *DecapsulationKey) GoString() string {
	if dk.isNil() {
		return "(*fips203.DecapsulationKey)(nil)"
	}
	return "fips203.DecapsulationKey{" + dk.set.String() + "}"
}

// Format implements fmt.Formatter.
func (dk *DecapsulationKey) Format(f fmt.State, verb rune) {
	writeFormatted(f, verb, dk.String(), dk.GoString())
}

// LogValue implements slog.LogValuer. The key bytes are always redacted.
func (dk *DecapsulationKey) LogValue() slog.Value {
	if dk.isNil() {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("type", "DecapsulationKey"),
		slog.String("parameter_set", dk.set.String()),
		logging.Redacted("bytes"),
	)
}

func (ct *Ciphertext) String() string {
	if ct.isNil() {
		return "<nil>"
	}
	return describe("Ciphertext", ct.set)
}

func (ct *Ciphertext) GoString() string {
	if ct.isNil() {
		return "(*fips203.Ciphertext)(nil)"
	}
	return "fips203.Ciphertext{" + ct.set.String() + "}"
}

// Format implements fmt.Formatter.
func (ct *Ciphertext) Format(f fmt.State, verb rune) {
	writeFormatted(f, verb, ct.String(), ct.GoString())
}

// LogValue implements slog.LogValuer.
func (ct *Ciphertext) LogValue() slog.Value {
	if ct.isNil() {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("type", "Ciphertext"),
		slog.String("parameter_set", ct.set.String()),
		slog.Int("size", len(ct.data)),
	)
}
