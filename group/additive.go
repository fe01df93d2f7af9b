package group

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/util"
)

var _ algebra.Group[*AdditiveElement] = (*AdditiveGroup)(nil)

// AdditiveGroup is the group of integers modulo n under addition.
type AdditiveGroup struct {
	*algebra.OrderInfo
	modulus *big.Int
}

// AdditiveElement is an element of an AdditiveGroup.
type AdditiveElement struct {
	group *AdditiveGroup
	val   *big.Int
}

// NewAdditiveGroup returns the additive group modulo m, for m >= 1.
func NewAdditiveGroup(modulus *big.Int, opts ...Option) (*AdditiveGroup, error) {
	m, err := checkModulus(modulus, 1)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	return &AdditiveGroup{
		OrderInfo: algebra.KnownOrder(m, cfg.factorizer),
		modulus:   m,
	}, nil
}

func (g *AdditiveGroup) String() string {
	return fmt.Sprintf("Z/%vZ(+)", g.modulus)
}

// Modulus returns the group modulus.
func (g *AdditiveGroup) Modulus() *big.Int {
	return new(big.Int).Set(g.modulus)
}

// Order returns the number of elements, which is the modulus.
func (g *AdditiveGroup) Order() *big.Int {
	return new(big.Int).Set(g.modulus)
}

// IsCyclic reports true: every additive group modulo n is cyclic.
func (g *AdditiveGroup) IsCyclic() (bool, error) {
	return true, nil
}

// Equal reports whether g and h have the same modulus.
func (g *AdditiveGroup) Equal(h *AdditiveGroup) bool {
	return g == h || (h != nil && g.modulus.Cmp(h.modulus) == 0)
}

func (g *AdditiveGroup) element(v *big.Int) *AdditiveElement {
	return &AdditiveElement{group: g, val: v}
}

// Identity returns 0.
func (g *AdditiveGroup) Identity() *AdditiveElement {
	return g.element(new(big.Int))
}

// Generator returns 1, or 0 in the trivial group.
func (g *AdditiveGroup) Generator() (*AdditiveElement, error) {
	return g.element(new(big.Int).Mod(big.NewInt(1), g.modulus)), nil
}

// Element returns the element with value v, which must lie in [0, modulus).
func (g *AdditiveGroup) Element(v *big.Int) (*AdditiveElement, error) {
	val, err := checkValue(v, g.modulus)
	if err != nil {
		return nil, err
	}
	return g.element(val), nil
}

// ElementFromString parses a decimal or 0x-prefixed hexadecimal value.
func (g *AdditiveGroup) ElementFromString(s string) (*AdditiveElement, error) {
	val, err := parseValue(s, g.modulus)
	if err != nil {
		return nil, err
	}
	return g.element(val), nil
}

// RandomElement returns a uniformly random element.
func (g *AdditiveGroup) RandomElement() (*AdditiveElement, error) {
	val, err := randomValue(g.modulus)
	if err != nil {
		return nil, err
	}
	return g.element(val), nil
}

// PseudoRandomElement returns an element drawn from src.
func (g *AdditiveGroup) PseudoRandomElement(src util.BitSource) (*AdditiveElement, error) {
	val, err := pseudoRandomValue(src, g.modulus)
	if err != nil {
		return nil, err
	}
	return g.element(val), nil
}

// AllElements lists the group in increasing order of value.
func (g *AdditiveGroup) AllElements() []*AdditiveElement {
	var res []*AdditiveElement
	for v := new(big.Int); v.Cmp(g.modulus) < 0; v.Add(v, big.NewInt(1)) {
		res = append(res, g.element(new(big.Int).Set(v)))
	}
	return res
}

// Combine returns x + y.
func (g *AdditiveGroup) Combine(x, y *AdditiveElement) *AdditiveElement {
	return x.Combine(y)
}

// Invert returns -x.
func (g *AdditiveGroup) Invert(x *AdditiveElement) (*AdditiveElement, error) {
	return x.Invert(), nil
}

func (g *AdditiveGroup) RepetitionIdentity() *AdditiveElement { return g.Identity() }

func (g *AdditiveGroup) RepetitionCombine(x, y *AdditiveElement) *AdditiveElement {
	return x.Combine(y)
}

func (g *AdditiveGroup) RepetitionInvert(x *AdditiveElement) (*AdditiveElement, error) {
	return x.Invert(), nil
}

// HasOrder reports true: every element has an additive order.
func (g *AdditiveGroup) HasOrder(*AdditiveElement) bool { return true }

func (e *AdditiveElement) check(x *AdditiveElement) {
	if !e.group.Equal(x.group) {
		panic("incompatible groups")
	}
}

// Group returns the group owning e.
func (e *AdditiveElement) Group() *AdditiveGroup { return e.group }

// Value returns the canonical representative of e.
func (e *AdditiveElement) Value() *big.Int { return new(big.Int).Set(e.val) }

// Combine returns e + x.
func (e *AdditiveElement) Combine(x *AdditiveElement) *AdditiveElement {
	e.check(x)
	v := new(big.Int).Add(e.val, x.val)
	return e.group.element(v.Mod(v, e.group.modulus))
}

// Invert returns -e.
func (e *AdditiveElement) Invert() *AdditiveElement {
	v := new(big.Int).Neg(e.val)
	return e.group.element(v.Mod(v, e.group.modulus))
}

// Repeat returns n*e. Negative n repeats the inverse.
func (e *AdditiveElement) Repeat(n *big.Int) *AdditiveElement {
	v := new(big.Int).Mul(e.val, n)
	return e.group.element(v.Mod(v, e.group.modulus))
}

// Order returns modulus / gcd(e, modulus).
func (e *AdditiveElement) Order() *big.Int {
	g := new(big.Int).GCD(nil, nil, e.val, e.group.modulus)
	return g.Quo(e.group.modulus, g)
}

// IsPrimitive reports whether e generates the group.
func (e *AdditiveElement) IsPrimitive() bool {
	return e.Order().Cmp(e.group.modulus) == 0
}

func (e *AdditiveElement) IsIdentity() bool { return e.val.Sign() == 0 }

// Equal compares two elements of the same group. It panics if the groups
// differ.
func (e *AdditiveElement) Equal(x *AdditiveElement) bool {
	e.check(x)
	return e.val.Cmp(x.val) == 0
}

// StrictEqual reports whether x belongs to the same group and has the same
// value.
func (e *AdditiveElement) StrictEqual(x *AdditiveElement) bool {
	return x != nil && e.group.Equal(x.group) && e.val.Cmp(x.val) == 0
}

func (e *AdditiveElement) String() string { return e.val.String() }

// Format encodes e as an integer in format f.
func (e *AdditiveElement) Format(f algebra.Format) string {
	return algebra.FormatInt(e.val, f)
}
