package fips203

// KEM is the entry point for one parameter set on a Library. Obtain one with
// Library.KEM; its backend binding is already resolved.
type KEM struct {
	set ParameterSet
	lib *Library
}

// ParameterSet returns the parameter set this KEM operates on.
func (k *KEM) ParameterSet() ParameterSet { return k.set }

// Backend returns the name of the provider serving this KEM.
func (k *KEM) Backend() string { return k.lib.Backend() }

// GenerateKey generates a fresh key pair. On failure no keys are returned.
func (k *KEM) GenerateKey() (*EncapsulationKey, *DecapsulationKey, error) {
	b, err := k.lib.binding(k.set)
	if err != nil {
		return nil, nil, err
	}
	ek := k.lib.emptyEncapsulationKey(k.set)
	dk := k.lib.emptyDecapsulationKey(k.set)
	if err := b.keygen(ek.data, dk.data); err != nil {
		dk.scrub()
		return nil, nil, err
	}
	return ek, dk, nil
}

// GenerateKeyFromSeed deterministically derives a key pair from the 64-byte
// seed d || z (FIPS 203 ML-KEM.KeyGen_internal). The seed is as sensitive as
// the decapsulation key.
func (k *KEM) GenerateKeyFromSeed(seed []byte) (*EncapsulationKey, *DecapsulationKey, error) {
	if len(seed) != SeedSize {
		return nil, nil, invalidSeed(SeedSize, len(seed))
	}
	b, err := k.lib.binding(k.set)
	if err != nil {
		return nil, nil, err
	}
	ek := k.lib.emptyEncapsulationKey(k.set)
	dk := k.lib.emptyDecapsulationKey(k.set)
	if err := b.keygenFromSeed(seed, ek.data, dk.data); err != nil {
		dk.scrub()
		return nil, nil, err
	}
	return ek, dk, nil
}

// NewEncapsulationKey copies b into an EncapsulationKey for this parameter
// set. len(b) must equal k.ParameterSet().EncapsulationKeySize().
func (k *KEM) NewEncapsulationKey(b []byte) (*EncapsulationKey, error) {
	if err := k.checkLen(RoleEncapsulationKey, len(b)); err != nil {
		return nil, err
	}
	ek := k.lib.emptyEncapsulationKey(k.set)
	copy(ek.data, b)
	return ek, nil
}

// NewDecapsulationKey copies b into a DecapsulationKey for this parameter
// set.
func (k *KEM) NewDecapsulationKey(b []byte) (*DecapsulationKey, error) {
	if err := k.checkLen(RoleDecapsulationKey, len(b)); err != nil {
		return nil, err
	}
	dk := k.lib.emptyDecapsulationKey(k.set)
	copy(dk.data, b)
	return dk, nil
}

// NewCiphertext copies b into a Ciphertext for this parameter set.
func (k *KEM) NewCiphertext(b []byte) (*Ciphertext, error) {
	if err := k.checkLen(RoleCiphertext, len(b)); err != nil {
		return nil, err
	}
	ct := k.lib.emptyCiphertext(k.set)
	copy(ct.data, b)
	return ct, nil
}

func (k *KEM) checkLen(r Role, n int) error {
	want := k.set.Size(r)
	if n != want {
		return &LengthError{Role: r, ParameterSet: k.set, Expected: []int{want}, Actual: n}
	}
	return nil
}
