// Package ring implements the rings of integers modulo n, their square roots,
// and finite extension fields built from polynomials.
package ring

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/poly"
	"github.com/takakv/cyclic/prime"
	"github.com/takakv/cyclic/util"
)

var (
	_ algebra.Ring[*RingElement] = (*MultiplicativeRing)(nil)
	_ poly.Field[*RingElement]   = (*MultiplicativeRing)(nil)
)

// ErrDivisionByZero reports a Euclidean division by zero.
var ErrDivisionByZero = fmt.Errorf("%w: division by zero", util.ErrDomain)

type config struct {
	factorizer *factor.Factorizer
}

// Option configures a ring.
type Option func(*config)

// WithFactorizer sets the factorizer used for the multiplicative order.
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

// MultiplicativeRing is the ring of integers modulo n. It is a field when the
// order of its group of units is known, which is the case for prime moduli.
type MultiplicativeRing struct {
	*algebra.OrderInfo
	modulus    *big.Int
	field      bool
	nonResidue algebra.Lazy[*RingElement]
}

// RingElement is an element of a MultiplicativeRing.
type RingElement struct {
	ring *MultiplicativeRing
	val  *big.Int
}

// NewMultiplicativeRing returns the ring of integers modulo m, for m >= 2. If
// order is nil and m is a probable prime, the multiplicative order is m - 1;
// otherwise it stays unknown.
func NewMultiplicativeRing(modulus, order *big.Int, opts ...Option) (*MultiplicativeRing, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: modulus must be at least 2", util.ErrInvalidArgument)
	}
	cfg := newConfig(opts)
	m := new(big.Int).Set(modulus)

	if order == nil && prime.IsProbablePrime(m, prime.DefaultRounds, false) {
		order = new(big.Int).Sub(m, big.NewInt(1))
	}
	r := &MultiplicativeRing{modulus: m}
	if order == nil {
		r.OrderInfo = algebra.NewOrderInfo(func() *big.Int { return nil }, cfg.factorizer)
		return r, nil
	}
	if order.Sign() <= 0 {
		return nil, fmt.Errorf("%w: order must be positive", util.ErrInvalidArgument)
	}
	r.OrderInfo = algebra.KnownOrder(order, cfg.factorizer)
	r.field = true
	return r, nil
}

func (r *MultiplicativeRing) String() string {
	if r.field {
		return fmt.Sprintf("GF(%v)", r.modulus)
	}
	return fmt.Sprintf("Z/%vZ", r.modulus)
}

// Modulus returns the ring modulus.
func (r *MultiplicativeRing) Modulus() *big.Int {
	return new(big.Int).Set(r.modulus)
}

// Order returns the number of elements, which is the modulus.
func (r *MultiplicativeRing) Order() *big.Int {
	return new(big.Int).Set(r.modulus)
}

// MultiplicativeOrder returns the order of the group of units, or nil if it
// is unknown.
func (r *MultiplicativeRing) MultiplicativeOrder() *big.Int {
	n := r.RepetitionOrder()
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}

// IsField reports whether the multiplicative order is known.
func (r *MultiplicativeRing) IsField() bool { return r.field }

// Equal reports whether r and s have the same modulus.
func (r *MultiplicativeRing) Equal(s *MultiplicativeRing) bool {
	return r == s || (s != nil && r.modulus.Cmp(s.modulus) == 0)
}

func (r *MultiplicativeRing) element(v *big.Int) *RingElement {
	return &RingElement{ring: r, val: v}
}

func (r *MultiplicativeRing) Zero() *RingElement { return r.element(new(big.Int)) }

func (r *MultiplicativeRing) One() *RingElement { return r.element(big.NewInt(1)) }

// Element returns the element with value v, which must lie in [0, modulus).
func (r *MultiplicativeRing) Element(v *big.Int) (*RingElement, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(r.modulus) >= 0 {
		return nil, fmt.Errorf("%w: %v not in [0, %v)", util.ErrInvalidArgument, v, r.modulus)
	}
	return r.element(new(big.Int).Set(v)), nil
}

// FromInt returns v reduced modulo the modulus.
func (r *MultiplicativeRing) FromInt(v *big.Int) *RingElement {
	return r.element(new(big.Int).Mod(v, r.modulus))
}

// FromInt64 returns v reduced modulo the modulus.
func (r *MultiplicativeRing) FromInt64(v int64) *RingElement {
	return r.FromInt(big.NewInt(v))
}

// ElementFromString parses a decimal or 0x-prefixed hexadecimal integer and
// reduces it modulo the modulus.
func (r *MultiplicativeRing) ElementFromString(s string) (*RingElement, error) {
	v, err := algebra.ParseInt(s)
	if err != nil {
		return nil, err
	}
	return r.FromInt(v), nil
}

// RandomElement returns a uniformly random element.
func (r *MultiplicativeRing) RandomElement() (*RingElement, error) {
	v, err := util.RandomInteger(big.NewInt(0), new(big.Int).Sub(r.modulus, big.NewInt(1)))
	if err != nil {
		return nil, err
	}
	return r.element(v), nil
}

// PseudoRandomElement returns an element drawn from src.
func (r *MultiplicativeRing) PseudoRandomElement(src util.BitSource) (*RingElement, error) {
	v, err := util.PseudoRandomInteger(src, big.NewInt(0), new(big.Int).Sub(r.modulus, big.NewInt(1)))
	if err != nil {
		return nil, err
	}
	return r.element(v), nil
}

// AllElements lists the ring in increasing order of value.
func (r *MultiplicativeRing) AllElements() []*RingElement {
	var res []*RingElement
	for v := new(big.Int); v.Cmp(r.modulus) < 0; v.Add(v, big.NewInt(1)) {
		res = append(res, r.element(new(big.Int).Set(v)))
	}
	return res
}

func (r *MultiplicativeRing) Add(x, y *RingElement) *RingElement      { return x.Add(y) }
func (r *MultiplicativeRing) Subtract(x, y *RingElement) *RingElement { return x.Subtract(y) }
func (r *MultiplicativeRing) Negate(x *RingElement) *RingElement      { return x.Negate() }
func (r *MultiplicativeRing) Multiply(x, y *RingElement) *RingElement { return x.Multiply(y) }

func (r *MultiplicativeRing) Invert(x *RingElement) (*RingElement, error) { return x.Invert() }

func (r *MultiplicativeRing) Divide(x, y *RingElement) (*RingElement, error) { return x.Divide(y) }

func (r *MultiplicativeRing) RepetitionIdentity() *RingElement { return r.One() }

func (r *MultiplicativeRing) RepetitionCombine(x, y *RingElement) *RingElement {
	return x.Multiply(y)
}

func (r *MultiplicativeRing) RepetitionInvert(x *RingElement) (*RingElement, error) {
	return x.Invert()
}

// HasOrder reports whether x is a unit.
func (r *MultiplicativeRing) HasOrder(x *RingElement) bool {
	return util.IsCoprime(x.val, r.modulus)
}

func (e *RingElement) check(x *RingElement) {
	if !e.ring.Equal(x.ring) {
		panic("incompatible groups")
	}
}

// Ring returns the ring owning e.
func (e *RingElement) Ring() *MultiplicativeRing { return e.ring }

// Value returns the canonical representative of e.
func (e *RingElement) Value() *big.Int { return new(big.Int).Set(e.val) }

func (e *RingElement) reduce(v *big.Int) *RingElement {
	return e.ring.element(v.Mod(v, e.ring.modulus))
}

// Add returns e + x.
func (e *RingElement) Add(x *RingElement) *RingElement {
	e.check(x)
	return e.reduce(new(big.Int).Add(e.val, x.val))
}

// Subtract returns e - x.
func (e *RingElement) Subtract(x *RingElement) *RingElement {
	e.check(x)
	return e.reduce(new(big.Int).Sub(e.val, x.val))
}

// Negate returns -e.
func (e *RingElement) Negate() *RingElement {
	return e.reduce(new(big.Int).Neg(e.val))
}

// Multiply returns e * x.
func (e *RingElement) Multiply(x *RingElement) *RingElement {
	e.check(x)
	return e.reduce(new(big.Int).Mul(e.val, x.val))
}

// Invert returns e^-1 by the extended Euclidean algorithm.
func (e *RingElement) Invert() (*RingElement, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("%w: zero", algebra.ErrNotInvertible)
	}
	v, err := util.ModInverse(e.val, e.ring.modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", algebra.ErrNotInvertible, err)
	}
	return e.ring.element(v), nil
}

// Divide returns e * x^-1.
func (e *RingElement) Divide(x *RingElement) (*RingElement, error) {
	e.check(x)
	inv, err := x.Invert()
	if err != nil {
		return nil, err
	}
	return e.Multiply(inv), nil
}

// DivideWithRemainder divides the representatives of e and x: e = q*x + r
// with 0 <= r < x.
func (e *RingElement) DivideWithRemainder(x *RingElement) (q, r *RingElement, err error) {
	e.check(x)
	if x.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	qv, rv := new(big.Int).QuoRem(e.val, x.val, new(big.Int))
	return e.ring.element(qv), e.ring.element(rv), nil
}

// Repeat returns e^n. Negative exponents require e to be a unit.
func (e *RingElement) Repeat(n *big.Int) (*RingElement, error) {
	if n.Sign() < 0 {
		inv, err := e.Invert()
		if err != nil {
			return nil, err
		}
		return inv.Repeat(new(big.Int).Neg(n))
	}
	return e.ring.element(new(big.Int).Exp(e.val, n, e.ring.modulus)), nil
}

// Order returns the multiplicative order of e.
func (e *RingElement) Order() (*big.Int, error) {
	return algebra.OrderOf[*RingElement](e.ring, e)
}

// IsPrimitive reports whether e generates the group of units.
func (e *RingElement) IsPrimitive() (bool, error) {
	return algebra.IsPrimitive[*RingElement](e.ring, e)
}

func (e *RingElement) IsZero() bool { return e.val.Sign() == 0 }

func (e *RingElement) IsOne() bool { return e.val.Cmp(big.NewInt(1)) == 0 }

// Equal compares two elements of the same ring. It panics if the rings
// differ.
func (e *RingElement) Equal(x *RingElement) bool {
	e.check(x)
	return e.val.Cmp(x.val) == 0
}

// StrictEqual reports whether x belongs to the same ring and has the same
// value.
func (e *RingElement) StrictEqual(x *RingElement) bool {
	return x != nil && e.ring.Equal(x.ring) && e.val.Cmp(x.val) == 0
}

func (e *RingElement) String() string { return e.val.String() }

// Format encodes e as an integer in format f.
func (e *RingElement) Format(f algebra.Format) string {
	return algebra.FormatInt(e.val, f)
}
