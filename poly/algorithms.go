package poly

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/util"
)

// SearchLimit bounds the exhaustive searches over field elements and monic
// polynomials.
const SearchLimit = 1 << 20

var (
	// ErrSearchLimit reports a search space larger than SearchLimit.
	ErrSearchLimit = fmt.Errorf("%w: search space exceeds %d candidates", util.ErrUndetermined, SearchLimit)
	// ErrZeroPolynomial reports an operation undefined for the zero polynomial.
	ErrZeroPolynomial = fmt.Errorf("%w: zero polynomial", util.ErrDomain)
)

// Factor is a monic irreducible factor with its multiplicity.
type Factor[E algebra.Element[E]] struct {
	Poly     *Polynomial[E]
	Exponent int
}

func (f Factor[E]) String() string {
	if f.Exponent == 1 {
		return "(" + f.Poly.String() + ")"
	}
	return fmt.Sprintf("(%v)^%d", f.Poly, f.Exponent)
}

// MonicPolynomials enumerates the monic polynomials of the given degree. The
// i-th polynomial's lower coefficients are the base-q digits of i.
func MonicPolynomials[E algebra.Element[E]](f Field[E], degree int) ([]*Polynomial[E], error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree", util.ErrInvalidArgument)
	}
	if degree == 0 {
		return []*Polynomial[E]{Constant(f, f.One())}, nil
	}
	q := f.Order()
	count := new(big.Int).Exp(q, big.NewInt(int64(degree)), nil)
	if count.Cmp(big.NewInt(SearchLimit)) > 0 {
		return nil, fmt.Errorf("%w: %v^%d monic polynomials", ErrSearchLimit, q, degree)
	}

	elements := f.AllElements()
	res := make([]*Polynomial[E], 0, count.Int64())
	for i := int64(0); i < count.Int64(); i++ {
		digits := util.Decompose(big.NewInt(i), q.Int64(), int64(degree))
		coeffs := make([]E, degree+1)
		for j, d := range digits {
			coeffs[j] = elements[d]
		}
		coeffs[degree] = f.One()
		res = append(res, &Polynomial[E]{field: f, coeffs: coeffs})
	}
	return res, nil
}

// IsIrreducible reports whether p has no monic divisor of degree between 1
// and deg(p)/2. Polynomials of degree at most one are irreducible.
func (p *Polynomial[E]) IsIrreducible() (bool, error) {
	for d := 1; 2*d <= p.Degree(); d++ {
		candidates, err := MonicPolynomials(p.field, d)
		if err != nil {
			return false, err
		}
		for _, m := range candidates {
			ok, err := p.IsDivisibleBy(m)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// Factorize splits p into its leading coefficient and monic irreducible
// factors, ordered by degree.
func (p *Polynomial[E]) Factorize() (E, []Factor[E], error) {
	unit := p.Leading()
	if p.IsZero() {
		return unit, nil, ErrZeroPolynomial
	}
	rest, err := p.Monic()
	if err != nil {
		return unit, nil, err
	}

	var factors []Factor[E]
	for d := 1; 2*d <= rest.Degree(); d++ {
		candidates, err := MonicPolynomials(p.field, d)
		if err != nil {
			return unit, nil, err
		}
		for _, m := range candidates {
			e := 0
			for rest.Degree() >= d {
				q, r, err := rest.DivideWithRemainder(m)
				if err != nil {
					return unit, nil, err
				}
				if !r.IsZero() {
					break
				}
				rest = q
				e++
			}
			if e > 0 {
				factors = append(factors, Factor[E]{Poly: m, Exponent: e})
			}
		}
	}
	if rest.Degree() >= 1 {
		factors = append(factors, Factor[E]{Poly: rest, Exponent: 1})
	}
	return unit, factors, nil
}

// Roots returns every x with p(x) = 0 by scanning the field.
func (p *Polynomial[E]) Roots() ([]E, error) {
	if p.field.Order().Cmp(big.NewInt(SearchLimit)) > 0 {
		return nil, fmt.Errorf("%w: field of order %v", ErrSearchLimit, p.field.Order())
	}
	var roots []E
	for _, x := range p.field.AllElements() {
		if isZero(p.field, p.Evaluate(x)) {
			roots = append(roots, x)
		}
	}
	return roots, nil
}

// ExtendedGCD returns the monic greatest common divisor g of a and b together
// with s and t such that a*s + b*t = g. If both are zero, g is zero.
func ExtendedGCD[E algebra.Element[E]](a, b *Polynomial[E]) (*Polynomial[E], *Polynomial[E], *Polynomial[E], error) {
	f := a.field
	oldR, r := a, b
	oldS, s := Constant(f, f.One()), Zero(f)
	oldT, t := Zero(f), Constant(f, f.One())
	for !r.IsZero() {
		q, rem, err := oldR.DivideWithRemainder(r)
		if err != nil {
			return nil, nil, nil, err
		}
		oldR, r = r, rem
		oldS, s = s, oldS.Subtract(q.Multiply(s))
		oldT, t = t, oldT.Subtract(q.Multiply(t))
	}
	if oldR.IsZero() {
		return oldR, oldS, oldT, nil
	}
	inv, err := f.Invert(oldR.Leading())
	if err != nil {
		return nil, nil, nil, err
	}
	return oldR.Scale(inv), oldS.Scale(inv), oldT.Scale(inv), nil
}

// GCD returns the monic greatest common divisor of a and b.
func GCD[E algebra.Element[E]](a, b *Polynomial[E]) (*Polynomial[E], error) {
	g, _, _, err := ExtendedGCD(a, b)
	return g, err
}
