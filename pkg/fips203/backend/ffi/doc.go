// Package ffi binds the fips203 C ABI (fips203.h, libfips203) as a
// backend.Provider.
//
// The native library exposes ml_kem_{512,768,1024}_{keygen,encaps,decaps}
// over fixed-size byte structs and returns the same status codes as
// backend.Status. The binding is only compiled with cgo and the fips203ffi
// build tag:
//
//	CGO_ENABLED=1 go build -tags fips203ffi ./...
//
// Headers are looked up in /usr/local/include and the library in
// /usr/local/lib; override with CGO_CFLAGS and CGO_LDFLAGS.
//
// Other builds compile a stub whose Resolve fails with ErrNotBuilt, which
// also matches backend.ErrUnsupportedStrength. Opening a fips203.Library with
// the stub therefore reports a configuration error for every parameter set.
//
// The C interface has no derandomized entry points, so the primitives do not
// implement backend.SeededPrimitives.
package ffi
