// Package group implements the additive and multiplicative groups of the
// integers modulo n.
package group

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/util"
)

// GeneratorSearchLimit bounds the number of candidates examined when looking
// for a generator of a multiplicative group.
const GeneratorSearchLimit = 10000

var (
	// ErrOutOfRange reports an element value outside [0, modulus).
	ErrOutOfRange = fmt.Errorf("%w: value out of range", util.ErrValidation)
	// ErrNotCyclic reports a generator request on a group that is not cyclic.
	ErrNotCyclic = fmt.Errorf("%w: group is not cyclic", util.ErrNotFound)
)

type config struct {
	factorizer *factor.Factorizer
}

// Option configures a group.
type Option func(*config)

// WithFactorizer sets the factorizer used for the group order and, for
// multiplicative groups, for the modulus.
func WithFactorizer(f *factor.Factorizer) Option {
	return func(c *config) { c.factorizer = f }
}

func newConfig(opts []Option) *config {
	c := &config{factorizer: factor.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func checkModulus(modulus *big.Int, min int64) (*big.Int, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(min)) < 0 {
		return nil, fmt.Errorf("%w: modulus must be at least %d", util.ErrInvalidArgument, min)
	}
	return new(big.Int).Set(modulus), nil
}

func checkValue(v, modulus *big.Int) (*big.Int, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		return nil, fmt.Errorf("%w: %v not in [0, %v)", ErrOutOfRange, v, modulus)
	}
	return new(big.Int).Set(v), nil
}

func parseValue(s string, modulus *big.Int) (*big.Int, error) {
	v, err := algebra.ParseInt(s)
	if err != nil {
		return nil, err
	}
	return checkValue(v, modulus)
}

func randomValue(modulus *big.Int) (*big.Int, error) {
	return util.RandomInteger(big.NewInt(0), new(big.Int).Sub(modulus, big.NewInt(1)))
}

func pseudoRandomValue(src util.BitSource, modulus *big.Int) (*big.Int, error) {
	return util.PseudoRandomInteger(src, big.NewInt(0), new(big.Int).Sub(modulus, big.NewInt(1)))
}
