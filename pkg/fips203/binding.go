package fips203

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coinbase/fips203-go/pkg/fips203/backend"
	"github.com/coinbase/fips203-go/pkg/fips203/logging"
)

// bindingSlot caches the resolution of one parameter set. The outcome of the
// first resolution, success or failure, is final.
type bindingSlot struct {
	once sync.Once
	b    *binding
	err  error
}

// binding is a resolved, read-only handle to a backend's primitives for one
// parameter set. It only moves fixed-size buffers and maps status codes.
type binding struct {
	set     ParameterSet
	backend string
	prims   backend.Primitives
	logger  logging.Logger
}

func (l *Library) binding(ps ParameterSet) (*binding, error) {
	if l.closed.Load() {
		return nil, ErrLibraryClosed
	}
	i := ps.index()
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParameterSet, int(ps))
	}
	s := &l.slots[i]
	s.once.Do(func() { s.b, s.err = l.resolve(ps) })
	return s.b, s.err
}

func (l *Library) resolve(ps ParameterSet) (b *binding, err error) {
	ctx := context.Background()
	name := l.provider.Name()

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("provider panicked: %v", r)
		}
		if err != nil {
			l.logger.Error(ctx, "backend binding failed", "parameter_set", ps.String(), "backend", name, "error", err)
			err = &ConfigurationError{ParameterSet: ps, Backend: name, Err: err}
		}
	}()

	prims, err := l.provider.Resolve(int(ps))
	if err != nil {
		return nil, err
	}
	if prims == nil {
		return nil, errors.New("provider returned no primitives")
	}

	l.logger.Debug(ctx, "backend binding resolved", "parameter_set", ps.String(), "backend", name)
	return &binding{
		set:     ps,
		backend: name,
		prims:   prims,
		logger:  l.logger.With("parameter_set", ps.String(), "backend", name),
	}, nil
}

func (b *binding) fail(op string, st backend.Status) error {
	b.logger.Warn(context.Background(), "backend primitive failed", "op", op, "status", uint8(st), "reason", st.String())
	return &BackendError{Op: op, ParameterSet: b.set, Status: st}
}

func (b *binding) seeded(op string) (backend.SeededPrimitives, error) {
	sp, ok := b.prims.(backend.SeededPrimitives)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s from seed on backend %q", ErrNotSupported, b.set, op, b.backend)
	}
	return sp, nil
}

// keygen fills ek and dk, which must be sized for b.set.
func (b *binding) keygen(ek, dk []byte) error {
	if st := b.prims.Keygen(ek, dk); st != backend.StatusOK {
		return b.fail(OpKeygen, st)
	}
	return nil
}

func (b *binding) keygenFromSeed(seed, ek, dk []byte) error {
	sp, err := b.seeded(OpKeygen)
	if err != nil {
		return err
	}
	if st := sp.KeygenFromSeed(seed, ek, dk); st != backend.StatusOK {
		return b.fail(OpKeygen, st)
	}
	return nil
}

func (b *binding) encaps(ek, ct, ss []byte) error {
	if st := b.prims.Encaps(ek, ct, ss); st != backend.StatusOK {
		return b.fail(OpEncaps, st)
	}
	return nil
}

func (b *binding) encapsFromSeed(ek, m, ct, ss []byte) error {
	sp, err := b.seeded(OpEncaps)
	if err != nil {
		return err
	}
	if st := sp.EncapsFromSeed(ek, m, ct, ss); st != backend.StatusOK {
		return b.fail(OpEncaps, st)
	}
	return nil
}

func (b *binding) decaps(dk, ct, ss []byte) error {
	if st := b.prims.Decaps(dk, ct, ss); st != backend.StatusOK {
		return b.fail(OpDecaps, st)
	}
	return nil
}
