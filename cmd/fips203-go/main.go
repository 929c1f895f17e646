// Command fips203-go runs a round-trip self-test of every ML-KEM parameter
// set against the circl backend and exits non-zero on failure.
package main

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/coinbase/fips203-go/pkg/fips203"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

func main() {
	log.Printf("fips203-go version: %s", fips203.WrapperVersion())
	log.Printf("circl backend: %s", fips203.BackendVersion())

	logger := logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	lib, err := fips203.Open(fips203.Config{
		Logger:  logger,
		Preload: fips203.ParameterSets(),
	})
	if err != nil {
		log.Fatalf("open library: %v", err)
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			log.Printf("close error: %v", cerr)
		}
	}()

	sets := fips203.ParameterSets()
	reports := make([]string, len(sets))
	var g errgroup.Group
	for i, ps := range sets {
		g.Go(func() error {
			r, err := selfTest(lib, ps)
			if err != nil {
				return fmt.Errorf("%s: %w", ps, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Printf("self-test FAILED: %v\n", err)
		os.Exit(1)
	}

	for _, r := range reports {
		fmt.Println(r)
	}
	fmt.Printf("self-test passed on backend %q\n", lib.Backend())
}

func selfTest(lib *fips203.Library, ps fips203.ParameterSet) (string, error) {
	ek, dk, err := lib.GenerateKey(ps)
	if err != nil {
		return "", err
	}
	if err := fips203.ValidateKeyPair(ek, dk); err != nil {
		return "", err
	}

	ct, secret, err := ek.Encapsulate()
	if err != nil {
		return "", err
	}
	defer fips203.ZeroizeBytes(secret)

	recovered, err := dk.Decapsulate(ct)
	if err != nil {
		return "", err
	}
	defer fips203.ZeroizeBytes(recovered)
	if subtle.ConstantTimeCompare(secret, recovered) != 1 {
		return "", errors.New("shared secrets differ")
	}

	return fmt.Sprintf("%-12s ek=%4d dk=%4d ct=%4d ss=%d  ok",
		ps, len(ek.Bytes()), ps.DecapsulationKeySize(), len(ct.Bytes()), len(secret)), nil
}
