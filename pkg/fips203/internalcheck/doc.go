// Package internalcheck holds source-level policy tests for the fips203
// packages.
//
// The tests load the library with golang.org/x/tools/go/packages and walk the
// syntax trees looking for patterns that could leak or mishandle key
// material. The package has no exported API.
package internalcheck
