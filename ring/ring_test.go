package ring

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/poly"
	"github.com/takakv/cyclic/util"
)

func newRing(t *testing.T, m int64) *MultiplicativeRing {
	t.Helper()
	r, err := NewMultiplicativeRing(big.NewInt(m), nil)
	require.NoError(t, err)
	return r
}

func TestMultiplicativeRing(t *testing.T) {
	r := newRing(t, 97)
	assert.True(t, r.IsField())
	assert.Equal(t, "GF(97)", r.String())
	assert.Equal(t, int64(96), r.MultiplicativeOrder().Int64())

	a, b := r.FromInt64(5), r.FromInt64(-3)
	assert.Equal(t, "94", b.String())
	assert.Equal(t, "2", a.Add(b).String())
	assert.Equal(t, "8", a.Subtract(b).String())
	assert.Equal(t, "92", a.Negate().String())
	assert.Equal(t, "82", a.Multiply(b).String())

	inv, err := a.Invert()
	require.NoError(t, err)
	assert.Equal(t, "39", inv.String())

	q, err := b.Divide(a)
	require.NoError(t, err)
	assert.True(t, q.Multiply(a).Equal(b))

	quo, rem, err := b.DivideWithRemainder(a)
	require.NoError(t, err)
	assert.Equal(t, "18", quo.String())
	assert.Equal(t, "4", rem.String())
	_, _, err = a.DivideWithRemainder(r.Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = r.Zero().Invert()
	assert.ErrorIs(t, err, algebra.ErrNotInvertible)

	p, err := a.Repeat(big.NewInt(-1))
	require.NoError(t, err)
	assert.True(t, p.Equal(inv))

	order, err := a.Order()
	require.NoError(t, err)
	assert.Equal(t, int64(96), order.Int64())
	ok, err := a.IsPrimitive()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompositeRing(t *testing.T) {
	r := newRing(t, 15)
	assert.False(t, r.IsField())
	assert.Nil(t, r.MultiplicativeOrder())
	assert.Equal(t, "Z/15Z", r.String())

	_, err := r.FromInt64(6).Invert()
	assert.ErrorIs(t, err, algebra.ErrNotInvertible)
	assert.ErrorIs(t, err, util.ErrDomain)

	inv, err := r.FromInt64(7).Invert()
	require.NoError(t, err)
	assert.Equal(t, "13", inv.String())

	_, err = r.FromInt64(7).Order()
	assert.ErrorIs(t, err, algebra.ErrOrderIndeterminate)

	s, err := NewMultiplicativeRing(big.NewInt(15), big.NewInt(8))
	require.NoError(t, err)
	order, err := s.FromInt64(7).Order()
	require.NoError(t, err)
	assert.Equal(t, int64(4), order.Int64())

	_, err = NewMultiplicativeRing(big.NewInt(1), nil)
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = r.Element(big.NewInt(15))
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestRingLaws(t *testing.T) {
	const testTimes = 1 << 6
	src := util.NewSeededSource(3)
	for _, m := range []int64{2, 12, 97, 65537} {
		r := newRing(t, m)
		t.Run(r.String()+"/Distributive", func(tt *testing.T) {
			for i := 0; i < testTimes; i++ {
				x, err := r.PseudoRandomElement(src)
				require.NoError(tt, err)
				y, err := r.PseudoRandomElement(src)
				require.NoError(tt, err)
				z, err := r.PseudoRandomElement(src)
				require.NoError(tt, err)
				assert.True(tt, x.Multiply(y.Add(z)).Equal(x.Multiply(y).Add(x.Multiply(z))))
				assert.True(tt, x.Add(x.Negate()).IsZero())
				assert.True(tt, x.Multiply(r.One()).Equal(x))
			}
		})
		t.Run(r.String()+"/Repeat", func(tt *testing.T) {
			x, err := r.PseudoRandomElement(src)
			require.NoError(tt, err)
			acc := r.One()
			for k := int64(0); k <= 50; k++ {
				got, err := x.Repeat(big.NewInt(k))
				require.NoError(tt, err)
				assert.True(tt, got.Equal(acc))
				generic, err := algebra.Repeat[*RingElement](r, x, big.NewInt(k))
				require.NoError(tt, err)
				assert.True(tt, generic.Equal(acc))
				acc = acc.Multiply(x)
			}
		})
	}
}

func TestSqrt(t *testing.T) {
	// 7 and 43 take the p = 3 mod 4 path, the others Tonelli-Shanks.
	for _, p := range []int64{7, 13, 17, 41, 43, 97, 257} {
		r := newRing(t, p)
		residues := 0
		for _, a := range r.AllElements() {
			roots, ok, err := a.Sqrt()
			require.NoError(t, err)
			qr, err := a.IsQuadraticResidue()
			require.NoError(t, err)
			assert.Equal(t, qr, ok, "GF(%d): %v", p, a)
			if !ok {
				continue
			}
			residues++
			for _, x := range roots {
				assert.True(t, x.Multiply(x).Equal(a), "GF(%d): %v^2 != %v", p, x, a)
			}
			assert.True(t, roots[0].Add(roots[1]).IsZero())
			assert.LessOrEqual(t, roots[0].Value().Cmp(roots[1].Value()), 0)
		}
		assert.Equal(t, int((p+1)/2), residues, "GF(%d)", p)
	}
}

func TestSqrtEdgeCases(t *testing.T) {
	r := newRing(t, 2)
	roots, ok, err := r.One().Sqrt()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, roots[0].IsOne() && roots[1].IsOne())

	roots, ok, err = newRing(t, 13).Zero().Sqrt()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, roots[0].IsZero() && roots[1].IsZero())

	_, ok, err = newRing(t, 13).FromInt64(2).Sqrt()
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = newRing(t, 15).FromInt64(4).Sqrt()
	assert.ErrorIs(t, err, ErrNotOddPrimeField)
	_, err = r.One().Legendre()
	assert.ErrorIs(t, err, ErrNotOddPrimeField)

	nr, err := newRing(t, 97).NonResidue()
	require.NoError(t, err)
	assert.Equal(t, "5", nr.String())

	l, err := newRing(t, 97).FromInt64(5).Legendre()
	require.NoError(t, err)
	assert.Equal(t, -1, l)
}

func TestSqrtBLS12377(t *testing.T) {
	r := BLS12377ScalarField()
	assert.True(t, r.IsField())
	assert.Equal(t, 0, r.Modulus().Cmp(fr.Modulus()))

	src := util.NewSeededSource(11)
	for i := 0; i < 16; i++ {
		x, err := r.PseudoRandomElement(src)
		require.NoError(t, err)
		a := x.Multiply(x)

		roots, ok, err := a.Sqrt()
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, roots[0].Equal(x) || roots[1].Equal(x))

		var fa, fx fr.Element
		fa.SetBigInt(a.Value())
		require.NotNil(t, fx.Sqrt(&fa))
		want := fx.BigInt(new(big.Int))
		assert.True(t, roots[0].Value().Cmp(want) == 0 || roots[1].Value().Cmp(want) == 0)
	}
}

func TestSqrtGoldilocks(t *testing.T) {
	r := GoldilocksField()
	p := new(big.Int).Lsh(big.NewInt(1), 64)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 32)).Add(p, big.NewInt(1))
	assert.Equal(t, 0, r.Modulus().Cmp(p))

	src := util.NewSeededSource(5)
	for i := 0; i < 16; i++ {
		x, err := r.PseudoRandomElement(src)
		require.NoError(t, err)
		roots, ok, err := x.Multiply(x).Sqrt()
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, roots[0].Equal(x) || roots[1].Equal(x))
	}
}

func ringPoly(t *testing.T, r *MultiplicativeRing, coeffs ...int64) *poly.Polynomial[*RingElement] {
	t.Helper()
	cs := make([]*RingElement, len(coeffs))
	for i, c := range coeffs {
		cs[i] = r.FromInt64(c)
	}
	p, err := poly.New[*RingElement](r, cs...)
	require.NoError(t, err)
	return p
}

func TestExtensionRing(t *testing.T) {
	gf2 := newRing(t, 2)
	f, err := NewExtensionRing(ringPoly(t, gf2, 1, 1, 0, 1)) // t^3 + t + 1
	require.NoError(t, err)
	assert.Equal(t, "GF(2^3)", f.String())
	assert.Equal(t, int64(8), f.Order().Int64())
	assert.Equal(t, int64(7), f.MultiplicativeOrder().Int64())
	assert.Len(t, f.AllElements(), 8)

	x := f.FromInt64s(0, 1) // t
	cube, err := x.Repeat(big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, "t + 1", cube.String())

	for _, e := range f.AllElements() {
		if e.IsZero() {
			continue
		}
		inv, err := e.Invert()
		require.NoError(t, err)
		assert.True(t, e.Multiply(inv).IsOne(), "%v", e)
		ok, err := e.IsPrimitive()
		require.NoError(t, err)
		assert.Equal(t, !e.IsOne(), ok, "%v", e)
	}

	_, err = f.Element(ringPoly(t, gf2, 0, 0, 0, 1))
	assert.ErrorIs(t, err, ErrNotNormalized)
	assert.ErrorIs(t, err, util.ErrDomain)
	reduced, err := f.Reduce(ringPoly(t, gf2, 0, 0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "t + 1", reduced.String())

	parsed, err := f.ElementFromString("t^2 + 1")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(f.FromInt64s(1, 0, 1)))
}

func TestExtensionRingGF9(t *testing.T) {
	gf3 := newRing(t, 3)
	f, err := NewExtensionRing(ringPoly(t, gf3, 1, 0, 1)) // t^2 + 1
	require.NoError(t, err)
	assert.Equal(t, int64(8), f.MultiplicativeOrder().Int64())

	g := f.FromInt64s(1, 1)
	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, int64(8), order.Int64())

	a, b := f.FromInt64s(2, 1), f.FromInt64s(1, 2)
	q, err := a.Divide(b)
	require.NoError(t, err)
	assert.True(t, q.Multiply(b).Equal(a))
	assert.True(t, a.Add(a.Negate()).IsZero())
	assert.True(t, a.Subtract(b).Equal(f.FromInt64s(1, 2)))
}

func TestExtensionRingInvalid(t *testing.T) {
	_, err := NewExtensionRing(ringPoly(t, newRing(t, 2), 1, 0, 1)) // (t + 1)^2
	assert.ErrorIs(t, err, ErrReducible)

	_, err = NewExtensionRing(ringPoly(t, newRing(t, 4), 1, 1, 1))
	assert.ErrorIs(t, err, ErrNotAField)

	_, err = NewExtensionRing(ringPoly(t, newRing(t, 5), 3))
	assert.ErrorIs(t, err, util.ErrValidation)

	f, err := NewExtensionRing(ringPoly(t, newRing(t, 3), 1, 0, 1))
	require.NoError(t, err)
	_, err = f.Reduce(ringPoly(t, newRing(t, 5), 1, 1))
	assert.ErrorIs(t, err, util.ErrValidation)
}

// Polynomials over GF(4) exercise the extension ring as a coefficient field.
func TestPolynomialOverExtension(t *testing.T) {
	gf2 := newRing(t, 2)
	f, err := NewExtensionRing(ringPoly(t, gf2, 1, 1, 1)) // t^2 + t + 1
	require.NoError(t, err)

	one := f.One()
	p, err := poly.New[*ExtensionElement](f, one, one, one) // x^2 + x + 1
	require.NoError(t, err)
	roots, err := p.Roots()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "t", roots[0].String())
	assert.Equal(t, "t + 1", roots[1].String())

	unit, factors, err := p.Factorize()
	require.NoError(t, err)
	assert.True(t, unit.IsOne())
	assert.Len(t, factors, 2)

	parsed, err := poly.Parse[*ExtensionElement](f, p.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(p))

	q, err := poly.Parse[*ExtensionElement](f, "(t + 1)x + t")
	require.NoError(t, err)
	assert.Equal(t, "(t + 1)x + t", q.String())
}
