//go:build cgo && fips203ffi && !windows

package ffi

/*
#cgo linux,!android CFLAGS: -I/usr/local/include
#cgo linux,!android LDFLAGS: -L/usr/local/lib
#cgo darwin CFLAGS: -I/usr/local/include -I/opt/homebrew/include
#cgo darwin LDFLAGS: -L/usr/local/lib -L/opt/homebrew/lib
#cgo LDFLAGS: -lfips203

#include <stdint.h>
#include <fips203.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
)

// Built reports whether the native binding is compiled in.
func Built() bool { return true }

// symbols holds the C entry points and struct sizes of one parameter set.
type symbols struct {
	ekLen, dkLen, ctLen int

	keygen func(ek, dk unsafe.Pointer) C.ml_kem_err
	encaps func(ek, ct, ss unsafe.Pointer) C.ml_kem_err
	decaps func(dk, ct, ss unsafe.Pointer) C.ml_kem_err
}

var table = map[int]symbols{
	512: {
		ekLen: int(C.sizeof_ml_kem_512_encaps_key),
		dkLen: int(C.sizeof_ml_kem_512_decaps_key),
		ctLen: int(C.sizeof_ml_kem_512_ciphertext),
		keygen: func(ek, dk unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_512_keygen((*C.ml_kem_512_encaps_key)(ek), (*C.ml_kem_512_decaps_key)(dk))
		},
		encaps: func(ek, ct, ss unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_512_encaps((*C.ml_kem_512_encaps_key)(ek), (*C.ml_kem_512_ciphertext)(ct), (*C.ml_kem_shared_secret)(ss))
		},
		decaps: func(dk, ct, ss unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_512_decaps((*C.ml_kem_512_decaps_key)(dk), (*C.ml_kem_512_ciphertext)(ct), (*C.ml_kem_shared_secret)(ss))
		},
	},
	768: {
		ekLen: int(C.sizeof_ml_kem_768_encaps_key),
		dkLen: int(C.sizeof_ml_kem_768_decaps_key),
		ctLen: int(C.sizeof_ml_kem_768_ciphertext),
		keygen: func(ek, dk unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_768_keygen((*C.ml_kem_768_encaps_key)(ek), (*C.ml_kem_768_decaps_key)(dk))
		},
		encaps: func(ek, ct, ss unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_768_encaps((*C.ml_kem_768_encaps_key)(ek), (*C.ml_kem_768_ciphertext)(ct), (*C.ml_kem_shared_secret)(ss))
		},
		decaps: func(dk, ct, ss unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_768_decaps((*C.ml_kem_768_decaps_key)(dk), (*C.ml_kem_768_ciphertext)(ct), (*C.ml_kem_shared_secret)(ss))
		},
	},
	1024: {
		ekLen: int(C.sizeof_ml_kem_1024_encaps_key),
		dkLen: int(C.sizeof_ml_kem_1024_decaps_key),
		ctLen: int(C.sizeof_ml_kem_1024_ciphertext),
		keygen: func(ek, dk unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_1024_keygen((*C.ml_kem_1024_encaps_key)(ek), (*C.ml_kem_1024_decaps_key)(dk))
		},
		encaps: func(ek, ct, ss unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_1024_encaps((*C.ml_kem_1024_encaps_key)(ek), (*C.ml_kem_1024_ciphertext)(ct), (*C.ml_kem_shared_secret)(ss))
		},
		decaps: func(dk, ct, ss unsafe.Pointer) C.ml_kem_err {
			return C.ml_kem_1024_decaps((*C.ml_kem_1024_decaps_key)(dk), (*C.ml_kem_1024_ciphertext)(ct), (*C.ml_kem_shared_secret)(ss))
		},
	},
}

var sharedSecretLen = int(C.sizeof_ml_kem_shared_secret)

// Resolve implements backend.Provider.
func (p *Provider) Resolve(strength int) (backend.Primitives, error) {
	sym, ok := table[strength]
	if !ok {
		return nil, fmt.Errorf("%w: libfips203 has no ML-KEM-%d", backend.ErrUnsupportedStrength, strength)
	}
	return &primitives{sym: sym}, nil
}

type primitives struct {
	sym symbols
}

var _ backend.Primitives = (*primitives)(nil)

func (p *primitives) Keygen(ek, dk []byte) backend.Status {
	if ek == nil || dk == nil {
		return backend.StatusNullPointer
	}
	if len(ek) != p.sym.ekLen || len(dk) != p.sym.dkLen {
		return backend.StatusSerialization
	}
	return status(p.sym.keygen(unsafe.Pointer(&ek[0]), unsafe.Pointer(&dk[0])), backend.StatusKeygen)
}

func (p *primitives) Encaps(ek, ct, ss []byte) backend.Status {
	if ek == nil || ct == nil || ss == nil {
		return backend.StatusNullPointer
	}
	if len(ek) != p.sym.ekLen {
		return backend.StatusDeserialization
	}
	if len(ct) != p.sym.ctLen || len(ss) != sharedSecretLen {
		return backend.StatusSerialization
	}
	return status(p.sym.encaps(unsafe.Pointer(&ek[0]), unsafe.Pointer(&ct[0]), unsafe.Pointer(&ss[0])), backend.StatusEncapsulation)
}

func (p *primitives) Decaps(dk, ct, ss []byte) backend.Status {
	if dk == nil || ct == nil || ss == nil {
		return backend.StatusNullPointer
	}
	if len(dk) != p.sym.dkLen || len(ct) != p.sym.ctLen {
		return backend.StatusDeserialization
	}
	if len(ss) != sharedSecretLen {
		return backend.StatusSerialization
	}
	return status(p.sym.decaps(unsafe.Pointer(&dk[0]), unsafe.Pointer(&ct[0]), unsafe.Pointer(&ss[0])), backend.StatusDecapsulation)
}

// status maps an ml_kem_err onto backend.Status. Codes outside the known
// range are reported as fallback.
func status(rc C.ml_kem_err, fallback backend.Status) backend.Status {
	switch st := backend.Status(rc); st {
	case backend.StatusOK,
		backend.StatusNullPointer,
		backend.StatusSerialization,
		backend.StatusDeserialization,
		backend.StatusKeygen,
		backend.StatusEncapsulation,
		backend.StatusDecapsulation:
		return st
	default:
		return fallback
	}
}
