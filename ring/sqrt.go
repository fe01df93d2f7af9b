package ring

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/util"
)

// NonResidueSearchLimit bounds the search for a quadratic non-residue.
const NonResidueSearchLimit = 10000

// ErrNotOddPrimeField reports a quadratic residue query outside an odd prime
// field.
var ErrNotOddPrimeField = fmt.Errorf("%w: not an odd prime field", util.ErrDomain)

func (r *MultiplicativeRing) checkOddPrime() error {
	if !r.field || r.modulus.Bit(0) == 0 {
		return fmt.Errorf("%w: %v", ErrNotOddPrimeField, r)
	}
	return nil
}

// NonResidue returns the smallest quadratic non-residue, searching at most
// NonResidueSearchLimit candidates. The result is cached.
func (r *MultiplicativeRing) NonResidue() (*RingElement, error) {
	if err := r.checkOddPrime(); err != nil {
		return nil, err
	}
	return r.nonResidue.Get(func() (*RingElement, error) {
		for v := int64(2); v < NonResidueSearchLimit+2 && big.NewInt(v).Cmp(r.modulus) < 0; v++ {
			x := r.element(big.NewInt(v))
			if x.legendre() == -1 {
				return x, nil
			}
		}
		return nil, fmt.Errorf("%w: no quadratic non-residue among %d candidates", util.ErrNotFound, NonResidueSearchLimit)
	})
}

// legendre evaluates Euler's criterion in an odd prime field.
func (e *RingElement) legendre() int {
	if e.IsZero() {
		return 0
	}
	exp := new(big.Int).Rsh(e.ring.modulus, 1)
	if new(big.Int).Exp(e.val, exp, e.ring.modulus).Cmp(big.NewInt(1)) == 0 {
		return 1
	}
	return -1
}

// Legendre returns the Legendre symbol of e: 0 for zero, 1 for a non-zero
// square and -1 otherwise.
func (e *RingElement) Legendre() (int, error) {
	if err := e.ring.checkOddPrime(); err != nil {
		return 0, err
	}
	return e.legendre(), nil
}

// IsQuadraticResidue reports whether e is a square. Zero is a square.
func (e *RingElement) IsQuadraticResidue() (bool, error) {
	l, err := e.Legendre()
	if err != nil {
		return false, err
	}
	return l >= 0, nil
}

// Sqrt returns both square roots of e, smallest first, and whether they
// exist. Zero yields [0, 0]; in GF(2) every element is its own root.
func (e *RingElement) Sqrt() ([2]*RingElement, bool, error) {
	var roots [2]*RingElement
	p := e.ring.modulus
	if e.ring.field && p.Cmp(big.NewInt(2)) == 0 {
		return [2]*RingElement{e, e}, true, nil
	}
	if err := e.ring.checkOddPrime(); err != nil {
		return roots, false, err
	}
	if e.IsZero() {
		return [2]*RingElement{e, e}, true, nil
	}
	if e.legendre() != 1 {
		return roots, false, nil
	}

	var x *big.Int
	if p.Bit(1) == 1 {
		// p = 3 mod 4
		exp := new(big.Int).Add(p, big.NewInt(1))
		x = new(big.Int).Exp(e.val, exp.Rsh(exp, 2), p)
	} else {
		z, err := e.ring.NonResidue()
		if err != nil {
			return roots, false, err
		}
		x = tonelliShanks(e.val, z.val, p)
	}

	y := new(big.Int).Sub(p, x)
	if y.Cmp(x) < 0 {
		x, y = y, x
	}
	return [2]*RingElement{e.ring.element(x), e.ring.element(y)}, true, nil
}

// tonelliShanks returns a square root of the residue a modulo the odd prime
// p, given a non-residue z.
func tonelliShanks(a, z, p *big.Int) *big.Int {
	one := big.NewInt(1)

	// p - 1 = q * 2^s with q odd
	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(a, q, p)
	res := new(big.Int).Exp(a, new(big.Int).Rsh(new(big.Int).Add(q, one), 1), p)

	for t.Cmp(one) != 0 {
		// least i with t^(2^i) = 1
		i := 0
		for t2 := new(big.Int).Set(t); t2.Cmp(one) != 0; i++ {
			t2.Mul(t2, t2).Mod(t2, p)
		}

		b := new(big.Int).Set(c)
		for j := 0; j < m-i-1; j++ {
			b.Mul(b, b).Mod(b, p)
		}
		m = i
		c.Mul(b, b).Mod(c, p)
		t.Mul(t, c).Mod(t, p)
		res.Mul(res, b).Mod(res, p)
	}
	return res
}
