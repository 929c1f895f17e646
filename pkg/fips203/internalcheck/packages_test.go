package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

var checkedPackages = []string{
	"github.com/coinbase/fips203-go/pkg/fips203",
	"github.com/coinbase/fips203-go/pkg/fips203/backend",
	"github.com/coinbase/fips203-go/pkg/fips203/backend/circl",
	"github.com/coinbase/fips203-go/pkg/fips203/backend/ffi",
}

func load(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, checkedPackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}
	return pkgs
}
