package group

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/util"
)

var _ algebra.Group[*MultiplicativeElement] = (*MultiplicativeGroup)(nil)

// MultiplicativeGroup is the group of units modulo n. The modulus may be
// composite. Elements are residues in [0, n); only those coprime with n have
// an inverse and an order.
type MultiplicativeGroup struct {
	*algebra.OrderInfo
	modulus   *big.Int
	factors   algebra.Lazy[[]factor.Factor]
	generator algebra.Lazy[*MultiplicativeElement]
}

// MultiplicativeElement is an element of a MultiplicativeGroup.
type MultiplicativeElement struct {
	group *MultiplicativeGroup
	val   *big.Int
}

// NewMultiplicativeGroup returns the multiplicative group modulo m, for
// m >= 2. If order is nil it is computed on first use as Euler's totient of
// the factorized modulus.
func NewMultiplicativeGroup(modulus, order *big.Int, opts ...Option) (*MultiplicativeGroup, error) {
	m, err := checkModulus(modulus, 2)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)

	g := &MultiplicativeGroup{modulus: m}
	if order != nil {
		if order.Sign() <= 0 {
			return nil, fmt.Errorf("%w: order must be positive", util.ErrInvalidArgument)
		}
		g.OrderInfo = algebra.KnownOrder(order, cfg.factorizer)
		return g, nil
	}
	g.OrderInfo = algebra.NewOrderInfo(func() *big.Int {
		factors, err := g.ModulusFactors()
		if err != nil {
			return nil
		}
		return factor.Phi(factors)
	}, cfg.factorizer)
	return g, nil
}

func (g *MultiplicativeGroup) String() string {
	return fmt.Sprintf("Z/%vZ(*)", g.modulus)
}

// Modulus returns the group modulus.
func (g *MultiplicativeGroup) Modulus() *big.Int {
	return new(big.Int).Set(g.modulus)
}

// ModulusFactors returns the cached factorization of the modulus.
func (g *MultiplicativeGroup) ModulusFactors() ([]factor.Factor, error) {
	return g.factors.Get(func() ([]factor.Factor, error) {
		return g.Factorizer().Factorize(g.modulus)
	})
}

// Order returns the number of units, or nil if the modulus could not be
// factorized.
func (g *MultiplicativeGroup) Order() *big.Int {
	n := g.RepetitionOrder()
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}

// IsCyclic reports whether the group of units is cyclic, which holds for the
// moduli 2, 4, p^k and 2p^k with p an odd prime.
func (g *MultiplicativeGroup) IsCyclic() (bool, error) {
	factors, err := g.ModulusFactors()
	if err != nil {
		return false, fmt.Errorf("%w: %w", algebra.ErrOrderIndeterminate, err)
	}
	if g.modulus.Cmp(big.NewInt(4)) <= 0 {
		return true, nil
	}
	two := big.NewInt(2)
	switch len(factors) {
	case 1:
		return factors[0].Base.Cmp(two) != 0, nil
	case 2:
		return factors[0].Base.Cmp(two) == 0 && factors[0].Exponent == 1, nil
	}
	return false, nil
}

// Equal reports whether g and h have the same modulus.
func (g *MultiplicativeGroup) Equal(h *MultiplicativeGroup) bool {
	return g == h || (h != nil && g.modulus.Cmp(h.modulus) == 0)
}

func (g *MultiplicativeGroup) element(v *big.Int) *MultiplicativeElement {
	return &MultiplicativeElement{group: g, val: v}
}

// Identity returns 1.
func (g *MultiplicativeGroup) Identity() *MultiplicativeElement {
	return g.element(big.NewInt(1))
}

// Generator returns the smallest primitive element. It returns ErrNotCyclic
// for non-cyclic groups and an ErrNotFound error if none of the first
// GeneratorSearchLimit candidates is primitive.
func (g *MultiplicativeGroup) Generator() (*MultiplicativeElement, error) {
	return g.generator.Get(func() (*MultiplicativeElement, error) {
		cyclic, err := g.IsCyclic()
		if err != nil {
			return nil, err
		}
		if !cyclic {
			return nil, fmt.Errorf("%w: %v", ErrNotCyclic, g)
		}

		v := big.NewInt(1)
		for i := 0; i < GeneratorSearchLimit && v.Cmp(g.modulus) < 0; i++ {
			x := g.element(new(big.Int).Set(v))
			v.Add(v, big.NewInt(1))
			if !g.HasOrder(x) {
				continue
			}
			ok, err := algebra.IsPrimitive[*MultiplicativeElement](g, x)
			if err != nil {
				return nil, err
			}
			if ok {
				return x, nil
			}
		}
		return nil, fmt.Errorf("%w: no generator among %d candidates", util.ErrNotFound, GeneratorSearchLimit)
	})
}

// Element returns the element with value v, which must lie in [0, modulus).
func (g *MultiplicativeGroup) Element(v *big.Int) (*MultiplicativeElement, error) {
	val, err := checkValue(v, g.modulus)
	if err != nil {
		return nil, err
	}
	return g.element(val), nil
}

// ElementFromString parses a decimal or 0x-prefixed hexadecimal value.
func (g *MultiplicativeGroup) ElementFromString(s string) (*MultiplicativeElement, error) {
	val, err := parseValue(s, g.modulus)
	if err != nil {
		return nil, err
	}
	return g.element(val), nil
}

// RandomElement returns a uniformly random unit.
func (g *MultiplicativeGroup) RandomElement() (*MultiplicativeElement, error) {
	for {
		val, err := randomValue(g.modulus)
		if err != nil {
			return nil, err
		}
		if util.IsCoprime(val, g.modulus) {
			return g.element(val), nil
		}
	}
}

// PseudoRandomElement returns a unit drawn from src.
func (g *MultiplicativeGroup) PseudoRandomElement(src util.BitSource) (*MultiplicativeElement, error) {
	for {
		val, err := pseudoRandomValue(src, g.modulus)
		if err != nil {
			return nil, err
		}
		if util.IsCoprime(val, g.modulus) {
			return g.element(val), nil
		}
	}
}

// AllElements lists the residues in increasing order. With coprimeOnly only
// the units are listed, otherwise every residue in [1, modulus).
func (g *MultiplicativeGroup) AllElements(coprimeOnly bool) []*MultiplicativeElement {
	var res []*MultiplicativeElement
	for v := big.NewInt(1); v.Cmp(g.modulus) < 0; v.Add(v, big.NewInt(1)) {
		if coprimeOnly && !util.IsCoprime(v, g.modulus) {
			continue
		}
		res = append(res, g.element(new(big.Int).Set(v)))
	}
	return res
}

// Combine returns x * y.
func (g *MultiplicativeGroup) Combine(x, y *MultiplicativeElement) *MultiplicativeElement {
	return x.Combine(y)
}

// Invert returns x^-1.
func (g *MultiplicativeGroup) Invert(x *MultiplicativeElement) (*MultiplicativeElement, error) {
	return x.Invert()
}

func (g *MultiplicativeGroup) RepetitionIdentity() *MultiplicativeElement { return g.Identity() }

func (g *MultiplicativeGroup) RepetitionCombine(x, y *MultiplicativeElement) *MultiplicativeElement {
	return x.Combine(y)
}

func (g *MultiplicativeGroup) RepetitionInvert(x *MultiplicativeElement) (*MultiplicativeElement, error) {
	return x.Invert()
}

// HasOrder reports whether x is a unit.
func (g *MultiplicativeGroup) HasOrder(x *MultiplicativeElement) bool {
	return util.IsCoprime(x.val, g.modulus)
}

func (e *MultiplicativeElement) check(x *MultiplicativeElement) {
	if !e.group.Equal(x.group) {
		panic("incompatible groups")
	}
}

// Group returns the group owning e.
func (e *MultiplicativeElement) Group() *MultiplicativeGroup { return e.group }

// Value returns the canonical representative of e.
func (e *MultiplicativeElement) Value() *big.Int { return new(big.Int).Set(e.val) }

// Combine returns e * x.
func (e *MultiplicativeElement) Combine(x *MultiplicativeElement) *MultiplicativeElement {
	e.check(x)
	v := new(big.Int).Mul(e.val, x.val)
	return e.group.element(v.Mod(v, e.group.modulus))
}

// Invert returns e^-1, or ErrNotInvertible if e is not a unit.
func (e *MultiplicativeElement) Invert() (*MultiplicativeElement, error) {
	v := new(big.Int).ModInverse(e.val, e.group.modulus)
	if v == nil {
		return nil, fmt.Errorf("%w: %v mod %v", algebra.ErrNotInvertible, e.val, e.group.modulus)
	}
	return e.group.element(v), nil
}

// Repeat returns e^n. Negative exponents require e to be a unit.
func (e *MultiplicativeElement) Repeat(n *big.Int) (*MultiplicativeElement, error) {
	if n.Sign() < 0 {
		inv, err := e.Invert()
		if err != nil {
			return nil, err
		}
		return inv.Repeat(new(big.Int).Neg(n))
	}
	return e.group.element(new(big.Int).Exp(e.val, n, e.group.modulus)), nil
}

// Order returns the multiplicative order of e.
func (e *MultiplicativeElement) Order() (*big.Int, error) {
	return algebra.OrderOf[*MultiplicativeElement](e.group, e)
}

// IsPrimitive reports whether e generates the group of units.
func (e *MultiplicativeElement) IsPrimitive() (bool, error) {
	return algebra.IsPrimitive[*MultiplicativeElement](e.group, e)
}

func (e *MultiplicativeElement) IsIdentity() bool {
	return e.val.Cmp(big.NewInt(1)) == 0
}

// Equal compares two elements of the same group. It panics if the groups
// differ.
func (e *MultiplicativeElement) Equal(x *MultiplicativeElement) bool {
	e.check(x)
	return e.val.Cmp(x.val) == 0
}

// StrictEqual reports whether x belongs to the same group and has the same
// value.
func (e *MultiplicativeElement) StrictEqual(x *MultiplicativeElement) bool {
	return x != nil && e.group.Equal(x.group) && e.val.Cmp(x.val) == 0
}

func (e *MultiplicativeElement) String() string { return e.val.String() }

// Format encodes e as an integer in format f.
func (e *MultiplicativeElement) Format(f algebra.Format) string {
	return algebra.FormatInt(e.val, f)
}
