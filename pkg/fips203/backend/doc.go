// Package backend defines the boundary between the typed fips203 API and the
// code that actually performs ML-KEM lattice arithmetic.
//
// A backend is consumed through three primitives per parameter set, each
// working on caller-allocated fixed-size byte buffers and returning a Status:
//
//	type Primitives interface {
//	    Keygen(ek, dk []byte) Status
//	    Encaps(ek, ct, ss []byte) Status
//	    Decaps(dk, ct, ss []byte) Status
//	}
//
// The shape matches a C ABI: a cgo binding to a native library and a pure Go
// implementation can both sit behind a Provider.
//
// # Status Codes
//
//	0  StatusOK
//	1  StatusNullPointer
//	2  StatusSerialization
//	3  StatusDeserialization
//	4  StatusKeygen
//	5  StatusEncapsulation
//	6  StatusDecapsulation
//
// # Available Implementations
//
//   - circl: pure Go, all three parameter sets, github.com/cloudflare/circl
//
// # Implicit Rejection
//
// Decaps must not signal an invalid ciphertext. FIPS 203 requires that a
// well-sized ciphertext which fails the re-encryption check still yields a
// 32-byte secret derived from the implicit rejection value. Only operational
// faults (bad buffers, undecodable keys) may return a non-zero status.
package backend
