// Package poly implements polynomials with coefficients in a finite field.
package poly

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/util"
)

var (
	// ErrLeadingZero reports a coefficient list whose last entry is zero.
	ErrLeadingZero = fmt.Errorf("%w: leading coefficient is zero", util.ErrValidation)
	// ErrDivisionByZero reports a division by the zero polynomial.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero polynomial", util.ErrDomain)
)

// Field is the coefficient field of a polynomial.
type Field[E algebra.Element[E]] interface {
	Zero() E
	One() E
	Add(x, y E) E
	Subtract(x, y E) E
	Negate(x E) E
	Multiply(x, y E) E
	Invert(x E) (E, error)
	// Order returns the number of field elements.
	Order() *big.Int
	// AllElements enumerates the field. Callers check Order first.
	AllElements() []E
	ElementFromString(s string) (E, error)
}

// Polynomial is a polynomial over a field. The coefficient of x^i is stored at
// index i and the last coefficient is never zero, so the zero polynomial has
// no coefficients. Polynomials are immutable.
type Polynomial[E algebra.Element[E]] struct {
	field  Field[E]
	coeffs []E
}

// New returns the polynomial with the given coefficients, lowest degree
// first. The last coefficient must be non-zero.
func New[E algebra.Element[E]](f Field[E], coeffs ...E) (*Polynomial[E], error) {
	if len(coeffs) > 0 && isZero(f, coeffs[len(coeffs)-1]) {
		return nil, ErrLeadingZero
	}
	return &Polynomial[E]{field: f, coeffs: append([]E(nil), coeffs...)}, nil
}

// Trim returns the polynomial with the given coefficients after dropping
// trailing zeros.
func Trim[E algebra.Element[E]](f Field[E], coeffs ...E) *Polynomial[E] {
	n := len(coeffs)
	for n > 0 && isZero(f, coeffs[n-1]) {
		n--
	}
	return &Polynomial[E]{field: f, coeffs: append([]E(nil), coeffs[:n]...)}
}

// Zero returns the zero polynomial.
func Zero[E algebra.Element[E]](f Field[E]) *Polynomial[E] {
	return &Polynomial[E]{field: f}
}

// Constant returns the constant polynomial c.
func Constant[E algebra.Element[E]](f Field[E], c E) *Polynomial[E] {
	return Trim(f, c)
}

// Monomial returns c*x^degree.
func Monomial[E algebra.Element[E]](f Field[E], c E, degree int) *Polynomial[E] {
	coeffs := make([]E, degree+1)
	for i := range coeffs {
		coeffs[i] = f.Zero()
	}
	coeffs[degree] = c
	return Trim(f, coeffs...)
}

func isZero[E algebra.Element[E]](f Field[E], x E) bool {
	return x.Equal(f.Zero())
}

// Field returns the coefficient field.
func (p *Polynomial[E]) Field() Field[E] { return p.field }

// Degree returns the degree, or -1 for the zero polynomial.
func (p *Polynomial[E]) Degree() int { return len(p.coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial[E]) IsZero() bool { return len(p.coeffs) == 0 }

// Coefficients returns a copy of the coefficients, lowest degree first.
func (p *Polynomial[E]) Coefficients() []E {
	return append([]E(nil), p.coeffs...)
}

// Coefficient returns the coefficient of x^i, which is zero beyond the degree.
func (p *Polynomial[E]) Coefficient(i int) E {
	if i < 0 || i >= len(p.coeffs) {
		return p.field.Zero()
	}
	return p.coeffs[i]
}

// Leading returns the leading coefficient, or zero for the zero polynomial.
func (p *Polynomial[E]) Leading() E {
	return p.Coefficient(p.Degree())
}

// IsMonic reports whether the leading coefficient is one.
func (p *Polynomial[E]) IsMonic() bool {
	return !p.IsZero() && p.Leading().Equal(p.field.One())
}

// Equal reports whether p and q have the same coefficients.
func (p *Polynomial[E]) Equal(q *Polynomial[E]) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

func (p *Polynomial[E]) combine(q *Polynomial[E], op func(x, y E) E) *Polynomial[E] {
	n := max(len(p.coeffs), len(q.coeffs))
	coeffs := make([]E, n)
	for i := range coeffs {
		coeffs[i] = op(p.Coefficient(i), q.Coefficient(i))
	}
	return Trim(p.field, coeffs...)
}

// Add returns p + q.
func (p *Polynomial[E]) Add(q *Polynomial[E]) *Polynomial[E] {
	return p.combine(q, p.field.Add)
}

// Subtract returns p - q.
func (p *Polynomial[E]) Subtract(q *Polynomial[E]) *Polynomial[E] {
	return p.combine(q, p.field.Subtract)
}

// Negate returns -p.
func (p *Polynomial[E]) Negate() *Polynomial[E] {
	coeffs := make([]E, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = p.field.Negate(c)
	}
	return &Polynomial[E]{field: p.field, coeffs: coeffs}
}

// Multiply returns p * q.
func (p *Polynomial[E]) Multiply(q *Polynomial[E]) *Polynomial[E] {
	if p.IsZero() || q.IsZero() {
		return Zero(p.field)
	}
	coeffs := make([]E, len(p.coeffs)+len(q.coeffs)-1)
	for i := range coeffs {
		coeffs[i] = p.field.Zero()
	}
	for i, a := range p.coeffs {
		for j, b := range q.coeffs {
			coeffs[i+j] = p.field.Add(coeffs[i+j], p.field.Multiply(a, b))
		}
	}
	return Trim(p.field, coeffs...)
}

// Scale returns c * p.
func (p *Polynomial[E]) Scale(c E) *Polynomial[E] {
	coeffs := make([]E, len(p.coeffs))
	for i, a := range p.coeffs {
		coeffs[i] = p.field.Multiply(c, a)
	}
	return Trim(p.field, coeffs...)
}

// DivideWithRemainder returns q and r with p = q*d + r and deg r < deg d.
func (p *Polynomial[E]) DivideWithRemainder(d *Polynomial[E]) (q, r *Polynomial[E], err error) {
	if d.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	lead, err := p.field.Invert(d.Leading())
	if err != nil {
		return nil, nil, err
	}

	rem := append([]E(nil), p.coeffs...)
	if len(rem) < len(d.coeffs) {
		return Zero(p.field), p, nil
	}
	quo := make([]E, len(rem)-len(d.coeffs)+1)
	for i := len(quo) - 1; i >= 0; i-- {
		c := p.field.Multiply(rem[i+d.Degree()], lead)
		quo[i] = c
		for j, b := range d.coeffs {
			rem[i+j] = p.field.Subtract(rem[i+j], p.field.Multiply(c, b))
		}
	}
	return Trim(p.field, quo...), Trim(p.field, rem[:d.Degree()]...), nil
}

// Modulo returns p mod d.
func (p *Polynomial[E]) Modulo(d *Polynomial[E]) (*Polynomial[E], error) {
	_, r, err := p.DivideWithRemainder(d)
	return r, err
}

// IsDivisibleBy reports whether d divides p.
func (p *Polynomial[E]) IsDivisibleBy(d *Polynomial[E]) (bool, error) {
	r, err := p.Modulo(d)
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}

// Evaluate returns p(x) by Horner's rule.
func (p *Polynomial[E]) Evaluate(x E) E {
	res := p.field.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		res = p.field.Add(p.field.Multiply(res, x), p.coeffs[i])
	}
	return res
}

// Monic returns p divided by its leading coefficient.
func (p *Polynomial[E]) Monic() (*Polynomial[E], error) {
	if p.IsZero() {
		return nil, ErrDivisionByZero
	}
	inv, err := p.field.Invert(p.Leading())
	if err != nil {
		return nil, err
	}
	return p.Scale(inv), nil
}
