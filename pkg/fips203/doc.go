// Package fips203 is a typed Go API for ML-KEM, the module-lattice key
// encapsulation mechanism standardized in FIPS 203.
//
// Three parameter sets are available: MLKEM512, MLKEM768 and MLKEM1024. Every
// key and ciphertext is tagged with its parameter set, owns a fixed-length
// copy of its bytes, and is immutable.
//
//	ek, dk, err := fips203.GenerateKey(fips203.MLKEM768)
//	// publish ek.Bytes()
//
//	ct, secret, err := ek.Encapsulate()
//	// send ct.Bytes()
//
//	recovered, err := dk.Decapsulate(ct)
//	// recovered equals secret
//
// # Serialization
//
// Objects serialize to their raw FIPS 203 encoding with no header. The
// length alone selects the parameter set:
//
//	Strength  EK    DK    CT    SS
//	512       800   1632  768   32
//	768       1184  2400  1088  32
//	1024      1568  3168  1568  32
//
// NewEncapsulationKey, NewDecapsulationKey and NewCiphertext infer the
// parameter set from the length; the methods of the same name on *KEM require
// a specific one. Any other length fails with ErrLengthMismatch.
//
// # Backends
//
// The lattice arithmetic is delegated to a backend.Provider. Open a Library
// with Config.Backend to choose one; Default uses the pure Go circl backend.
// Each parameter set is resolved once per Library on first use.
//
// # Errors
//
// Every failure matches one of the sentinels with errors.Is:
// ErrConfiguration, ErrLengthMismatch, ErrStrengthMismatch, ErrKeygen,
// ErrEncapsulation and ErrDecapsulation are the main ones. Decapsulating a
// corrupted ciphertext is not an error; FIPS 203 implicit rejection returns
// an unrelated secret instead.
package fips203
