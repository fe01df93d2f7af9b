package ring

import (
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/poly"
	"github.com/takakv/cyclic/util"
)

var (
	_ algebra.Ring[*ExtensionElement] = (*ExtensionRing)(nil)
	_ poly.Field[*ExtensionElement]   = (*ExtensionRing)(nil)
)

const (
	// ExtensionOrderCutoff is the largest field size for which the
	// multiplicative order is counted by enumeration.
	ExtensionOrderCutoff = 100
	// IrreducibilityCheckLimit bounds the number of trial divisors used to
	// check that an extension modulus is irreducible.
	IrreducibilityCheckLimit = 1 << 16
	// ExtensionVariable is the indeterminate used to write extension elements.
	ExtensionVariable = "t"
)

var (
	// ErrNotAField reports an extension of a ring that is not a field.
	ErrNotAField = fmt.Errorf("%w: base ring is not a field", util.ErrValidation)
	// ErrReducible reports a reducible extension modulus.
	ErrReducible = fmt.Errorf("%w: modulus is reducible", util.ErrValidation)
	// ErrNotNormalized reports a polynomial not reduced modulo the extension
	// modulus.
	ErrNotNormalized = fmt.Errorf("%w: polynomial is not reduced", util.ErrDomain)
)

// ExtensionRing is the field GF(p^k) of polynomials over GF(p) modulo an
// irreducible polynomial of degree k.
type ExtensionRing struct {
	*algebra.OrderInfo
	base    *MultiplicativeRing
	modulus *poly.Polynomial[*RingElement]
	order   *big.Int
}

// ExtensionElement is an element of an ExtensionRing: a polynomial of degree
// below the modulus degree.
type ExtensionElement struct {
	ring *ExtensionRing
	val  *poly.Polynomial[*RingElement]
}

// NewExtensionRing returns the extension of the modulus' coefficient field by
// the modulus. Moduli whose irreducibility can be checked within
// IrreducibilityCheckLimit trial divisions are checked.
func NewExtensionRing(modulus *poly.Polynomial[*RingElement], opts ...Option) (*ExtensionRing, error) {
	base, ok := modulus.Field().(*MultiplicativeRing)
	if !ok || !base.IsField() {
		return nil, fmt.Errorf("%w: %v", ErrNotAField, modulus.Field())
	}
	if modulus.Degree() < 1 {
		return nil, fmt.Errorf("%w: modulus degree must be at least 1", util.ErrInvalidArgument)
	}
	monic, err := modulus.Monic()
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	logger := log.WithField("component", "ring")

	k := monic.Degree()
	checked := false
	if irreducibilityCandidates(base.modulus, k).Cmp(big.NewInt(IrreducibilityCheckLimit)) <= 0 {
		irreducible, err := monic.IsIrreducible()
		if err != nil {
			return nil, err
		}
		if !irreducible {
			return nil, fmt.Errorf("%w: %v", ErrReducible, monic)
		}
		checked = true
	} else {
		logger.Debugf("skipping irreducibility check of %v", monic)
	}

	r := &ExtensionRing{
		base:    base,
		modulus: monic,
		order:   new(big.Int).Exp(base.modulus, big.NewInt(int64(k)), nil),
	}
	r.OrderInfo = algebra.NewOrderInfo(func() *big.Int {
		if r.order.Cmp(big.NewInt(ExtensionOrderCutoff)) <= 0 {
			return r.countUnits()
		}
		if checked {
			return new(big.Int).Sub(r.order, big.NewInt(1))
		}
		return nil
	}, cfg.factorizer)
	return r, nil
}

// irreducibilityCandidates counts the monic polynomials of degree 1 to k/2
// over GF(p).
func irreducibilityCandidates(p *big.Int, k int) *big.Int {
	n := new(big.Int)
	for d := 1; 2*d <= k; d++ {
		n.Add(n, new(big.Int).Exp(p, big.NewInt(int64(d)), nil))
	}
	return n
}

func (r *ExtensionRing) countUnits() *big.Int {
	n := new(big.Int)
	for _, x := range r.AllElements() {
		if _, err := x.Invert(); err == nil {
			n.Add(n, big.NewInt(1))
		}
	}
	return n
}

func (r *ExtensionRing) String() string {
	return fmt.Sprintf("GF(%v^%d)", r.base.modulus, r.Degree())
}

// Base returns the coefficient field.
func (r *ExtensionRing) Base() *MultiplicativeRing { return r.base }

// Modulus returns the monic extension modulus.
func (r *ExtensionRing) Modulus() *poly.Polynomial[*RingElement] { return r.modulus }

// Degree returns the extension degree.
func (r *ExtensionRing) Degree() int { return r.modulus.Degree() }

// Order returns p^k.
func (r *ExtensionRing) Order() *big.Int { return new(big.Int).Set(r.order) }

// MultiplicativeOrder returns the number of units, or nil if it is unknown.
func (r *ExtensionRing) MultiplicativeOrder() *big.Int {
	n := r.RepetitionOrder()
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}

// IsField reports true: the modulus is irreducible.
func (r *ExtensionRing) IsField() bool { return true }

// Equal reports whether r and s extend the same field by the same modulus.
func (r *ExtensionRing) Equal(s *ExtensionRing) bool {
	return r == s || (s != nil && r.base.Equal(s.base) && r.modulus.Equal(s.modulus))
}

func (r *ExtensionRing) element(p *poly.Polynomial[*RingElement]) *ExtensionElement {
	return &ExtensionElement{ring: r, val: p}
}

func (r *ExtensionRing) Zero() *ExtensionElement { return r.element(poly.Zero[*RingElement](r.base)) }

func (r *ExtensionRing) One() *ExtensionElement {
	return r.element(poly.Constant[*RingElement](r.base, r.base.One()))
}

func (r *ExtensionRing) checkBase(p *poly.Polynomial[*RingElement]) error {
	base, ok := p.Field().(*MultiplicativeRing)
	if !ok || !base.Equal(r.base) {
		return fmt.Errorf("%w: polynomial over %v, want %v", util.ErrInvalidArgument, p.Field(), r.base)
	}
	return nil
}

// Element returns the element represented by p, which must already be
// reduced modulo the extension modulus.
func (r *ExtensionRing) Element(p *poly.Polynomial[*RingElement]) (*ExtensionElement, error) {
	if err := r.checkBase(p); err != nil {
		return nil, err
	}
	if p.Degree() >= r.Degree() {
		return nil, fmt.Errorf("%w: degree %d, modulus degree %d", ErrNotNormalized, p.Degree(), r.Degree())
	}
	return r.element(p), nil
}

// Reduce returns the element represented by p modulo the extension modulus.
func (r *ExtensionRing) Reduce(p *poly.Polynomial[*RingElement]) (*ExtensionElement, error) {
	if err := r.checkBase(p); err != nil {
		return nil, err
	}
	rem, err := p.Modulo(r.modulus)
	if err != nil {
		return nil, err
	}
	return r.element(rem), nil
}

// FromInt64s returns the reduced element with the given coefficients, lowest
// degree first.
func (r *ExtensionRing) FromInt64s(coeffs ...int64) *ExtensionElement {
	cs := make([]*RingElement, len(coeffs))
	for i, c := range coeffs {
		cs[i] = r.base.FromInt64(c)
	}
	e, _ := r.Reduce(poly.Trim[*RingElement](r.base, cs...))
	return e
}

// ElementFromString parses a polynomial in t, such as "t^2 + 3t + 1", and
// reduces it.
func (r *ExtensionRing) ElementFromString(s string) (*ExtensionElement, error) {
	p, err := poly.ParseText[*RingElement](r.base, s, ExtensionVariable)
	if err != nil {
		return nil, err
	}
	return r.Reduce(p)
}

func (r *ExtensionRing) fromDigits(digits []int64) *ExtensionElement {
	cs := make([]*RingElement, len(digits))
	for i, d := range digits {
		cs[i] = r.base.FromInt64(d)
	}
	return r.element(poly.Trim[*RingElement](r.base, cs...))
}

// AllElements enumerates the field. Callers check Order first.
func (r *ExtensionRing) AllElements() []*ExtensionElement {
	var res []*ExtensionElement
	p := r.base.modulus.Int64()
	for i := new(big.Int); i.Cmp(r.order) < 0; i.Add(i, big.NewInt(1)) {
		res = append(res, r.fromDigits(util.Decompose(i, p, int64(r.Degree()))))
	}
	return res
}

// RandomElement returns a uniformly random element.
func (r *ExtensionRing) RandomElement() (*ExtensionElement, error) {
	cs := make([]*RingElement, r.Degree())
	for i := range cs {
		c, err := r.base.RandomElement()
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return r.element(poly.Trim[*RingElement](r.base, cs...)), nil
}

// PseudoRandomElement returns an element drawn from src.
func (r *ExtensionRing) PseudoRandomElement(src util.BitSource) (*ExtensionElement, error) {
	cs := make([]*RingElement, r.Degree())
	for i := range cs {
		c, err := r.base.PseudoRandomElement(src)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return r.element(poly.Trim[*RingElement](r.base, cs...)), nil
}

func (r *ExtensionRing) Add(x, y *ExtensionElement) *ExtensionElement      { return x.Add(y) }
func (r *ExtensionRing) Subtract(x, y *ExtensionElement) *ExtensionElement { return x.Subtract(y) }
func (r *ExtensionRing) Negate(x *ExtensionElement) *ExtensionElement      { return x.Negate() }
func (r *ExtensionRing) Multiply(x, y *ExtensionElement) *ExtensionElement { return x.Multiply(y) }

func (r *ExtensionRing) Invert(x *ExtensionElement) (*ExtensionElement, error) { return x.Invert() }

func (r *ExtensionRing) Divide(x, y *ExtensionElement) (*ExtensionElement, error) {
	return x.Divide(y)
}

func (r *ExtensionRing) RepetitionIdentity() *ExtensionElement { return r.One() }

func (r *ExtensionRing) RepetitionCombine(x, y *ExtensionElement) *ExtensionElement {
	return x.Multiply(y)
}

func (r *ExtensionRing) RepetitionInvert(x *ExtensionElement) (*ExtensionElement, error) {
	return x.Invert()
}

// HasOrder reports whether x is non-zero.
func (r *ExtensionRing) HasOrder(x *ExtensionElement) bool { return !x.IsZero() }

func (e *ExtensionElement) check(x *ExtensionElement) {
	if !e.ring.Equal(x.ring) {
		panic("incompatible groups")
	}
}

// Ring returns the ring owning e.
func (e *ExtensionElement) Ring() *ExtensionRing { return e.ring }

// Polynomial returns the reduced polynomial representing e.
func (e *ExtensionElement) Polynomial() *poly.Polynomial[*RingElement] { return e.val }

// Add returns e + x.
func (e *ExtensionElement) Add(x *ExtensionElement) *ExtensionElement {
	e.check(x)
	return e.ring.element(e.val.Add(x.val))
}

// Subtract returns e - x.
func (e *ExtensionElement) Subtract(x *ExtensionElement) *ExtensionElement {
	e.check(x)
	return e.ring.element(e.val.Subtract(x.val))
}

// Negate returns -e.
func (e *ExtensionElement) Negate() *ExtensionElement {
	return e.ring.element(e.val.Negate())
}

// Multiply returns e * x reduced modulo the extension modulus.
func (e *ExtensionElement) Multiply(x *ExtensionElement) *ExtensionElement {
	e.check(x)
	// The modulus is monic, so the division cannot fail.
	rem, _ := e.val.Multiply(x.val).Modulo(e.ring.modulus)
	return e.ring.element(rem)
}

// Invert returns e^-1 by the extended Euclidean algorithm on polynomials.
func (e *ExtensionElement) Invert() (*ExtensionElement, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("%w: zero", algebra.ErrNotInvertible)
	}
	g, s, _, err := poly.ExtendedGCD(e.val, e.ring.modulus)
	if err != nil {
		return nil, err
	}
	if g.Degree() != 0 {
		return nil, fmt.Errorf("%w: %v shares a factor with the modulus", algebra.ErrNotInvertible, e)
	}
	return e.ring.Reduce(s)
}

// Divide returns e * x^-1.
func (e *ExtensionElement) Divide(x *ExtensionElement) (*ExtensionElement, error) {
	e.check(x)
	inv, err := x.Invert()
	if err != nil {
		return nil, err
	}
	return e.Multiply(inv), nil
}

// Repeat returns e^n. Negative exponents require e to be non-zero.
func (e *ExtensionElement) Repeat(n *big.Int) (*ExtensionElement, error) {
	return algebra.Repeat[*ExtensionElement](e.ring, e, n)
}

// Order returns the multiplicative order of e.
func (e *ExtensionElement) Order() (*big.Int, error) {
	return algebra.OrderOf[*ExtensionElement](e.ring, e)
}

// IsPrimitive reports whether e generates the multiplicative group.
func (e *ExtensionElement) IsPrimitive() (bool, error) {
	return algebra.IsPrimitive[*ExtensionElement](e.ring, e)
}

func (e *ExtensionElement) IsZero() bool { return e.val.IsZero() }

func (e *ExtensionElement) IsOne() bool {
	return e.val.Degree() == 0 && e.val.Leading().IsOne()
}

// Equal compares two elements of the same ring. It panics if the rings
// differ.
func (e *ExtensionElement) Equal(x *ExtensionElement) bool {
	e.check(x)
	return e.val.Equal(x.val)
}

// StrictEqual reports whether x belongs to the same ring and has the same
// value.
func (e *ExtensionElement) StrictEqual(x *ExtensionElement) bool {
	return x != nil && e.ring.Equal(x.ring) && e.val.Equal(x.val)
}

func (e *ExtensionElement) String() string { return e.val.Text(ExtensionVariable) }

// Format writes e as a polynomial in t with coefficients in format f.
func (e *ExtensionElement) Format(f algebra.Format) string {
	if f == algebra.Raw || f == algebra.Decimal {
		return e.String()
	}
	return fmt.Sprintf("[%s]", formatCoefficients(e.val.Coefficients(), f))
}

func formatCoefficients(cs []*RingElement, f algebra.Format) string {
	s := ""
	for i, c := range cs {
		if i > 0 {
			s += ", "
		}
		s += c.Format(f)
	}
	return s
}
