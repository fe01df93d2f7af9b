package poly_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/cyclic/poly"
	"github.com/takakv/cyclic/ring"
	"github.com/takakv/cyclic/util"
)

type polynomial = poly.Polynomial[*ring.RingElement]

func field(t *testing.T, p int64) *ring.MultiplicativeRing {
	t.Helper()
	r, err := ring.NewMultiplicativeRing(big.NewInt(p), nil)
	require.NoError(t, err)
	require.True(t, r.IsField())
	return r
}

func ints(t *testing.T, f *ring.MultiplicativeRing, coeffs ...int64) *polynomial {
	t.Helper()
	cs := make([]*ring.RingElement, len(coeffs))
	for i, c := range coeffs {
		cs[i] = f.FromInt64(c)
	}
	return poly.Trim[*ring.RingElement](f, cs...)
}

func TestNew(t *testing.T) {
	f := field(t, 5)
	_, err := poly.New[*ring.RingElement](f, f.One(), f.Zero())
	assert.ErrorIs(t, err, poly.ErrLeadingZero)
	assert.ErrorIs(t, err, util.ErrValidation)

	p := poly.Trim[*ring.RingElement](f, f.One(), f.Zero(), f.Zero())
	assert.Equal(t, 0, p.Degree())
	assert.Equal(t, -1, poly.Zero[*ring.RingElement](f).Degree())
	assert.True(t, ints(t, f, 5, 10).IsZero())
	assert.Equal(t, "3x^4", poly.Monomial[*ring.RingElement](f, f.FromInt64(3), 4).String())
}

func TestArithmetic(t *testing.T) {
	f := field(t, 7)
	p := ints(t, f, 1, 2, 3) // 3x^2 + 2x + 1
	q := ints(t, f, 6, 1)    // x + 6

	assert.Equal(t, "3x^2 + 3x", p.Add(q).String())
	assert.Equal(t, "3x^2 + x + 2", p.Subtract(q).String())
	assert.Equal(t, "4x^2 + 5x + 6", p.Negate().String())
	assert.Equal(t, "3x^3 + 6x^2 + 6x + 6", p.Multiply(q).String())
	assert.Equal(t, "6x^2 + 4x + 2", p.Scale(f.FromInt64(2)).String())
	assert.True(t, p.Subtract(p).IsZero())

	quo, rem, err := p.DivideWithRemainder(q)
	require.NoError(t, err)
	assert.True(t, quo.Multiply(q).Add(rem).Equal(p))
	assert.Less(t, rem.Degree(), q.Degree())

	_, _, err = p.DivideWithRemainder(poly.Zero[*ring.RingElement](f))
	assert.ErrorIs(t, err, poly.ErrDivisionByZero)
	assert.ErrorIs(t, err, util.ErrDomain)

	quo, rem, err = q.DivideWithRemainder(p)
	require.NoError(t, err)
	assert.True(t, quo.IsZero())
	assert.True(t, rem.Equal(q))

	// p(2) = 12 + 4 + 1 = 17 = 3 mod 7
	assert.Equal(t, "3", p.Evaluate(f.FromInt64(2)).String())

	m, err := p.Monic()
	require.NoError(t, err)
	assert.True(t, m.IsMonic())
	assert.Equal(t, "x^2 + 3x + 5", m.String())
}

func TestDivisionRandom(t *testing.T) {
	f := field(t, 13)
	src := util.NewSeededSource(1)
	random := func(degree int) *polynomial {
		cs := make([]*ring.RingElement, degree+1)
		for i := range cs {
			c, err := f.PseudoRandomElement(src)
			require.NoError(t, err)
			cs[i] = c
		}
		cs[degree] = f.One()
		return poly.Trim[*ring.RingElement](f, cs...)
	}
	for i := 0; i < 32; i++ {
		a, b := random(2+i%7), random(1+i%3)
		quo, rem, err := a.DivideWithRemainder(b)
		require.NoError(t, err)
		assert.True(t, quo.Multiply(b).Add(rem).Equal(a))
		assert.Less(t, rem.Degree(), b.Degree())
	}
}

func TestRoots(t *testing.T) {
	f := field(t, 5)
	roots, err := ints(t, f, -1, 0, 0, 0, 1).Roots() // x^4 - 1
	require.NoError(t, err)
	assert.Len(t, roots, 4)

	roots, err = ints(t, f, 2, 0, 1).Roots() // x^2 + 2
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestIsIrreducible(t *testing.T) {
	cases := []struct {
		p      int64
		coeffs []int64
		want   bool
	}{
		{3, []int64{1, 0, 1}, true},     // x^2 + 1
		{5, []int64{1, 0, 1}, false},    // (x + 2)(x + 3)
		{2, []int64{1, 1, 0, 1}, true},  // x^3 + x + 1
		{2, []int64{1, 1, 1, 1}, false}, // (x + 1)^3
		{2, []int64{1, 1, 1, 1, 1}, true},
		{2, []int64{1, 0, 1, 0, 1}, false}, // (x^2 + x + 1)^2
		{7, []int64{3, 1}, true},
	}
	for _, c := range cases {
		p := ints(t, field(t, c.p), c.coeffs...)
		got, err := p.IsIrreducible()
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%v over GF(%d)", p, c.p)
	}
}

func TestFactorize(t *testing.T) {
	f := field(t, 5)
	p := ints(t, f, -2, 0, 0, 0, 2) // 2x^4 - 2
	unit, factors, err := p.Factorize()
	require.NoError(t, err)
	assert.Equal(t, "2", unit.String())
	require.Len(t, factors, 4)

	product := poly.Constant[*ring.RingElement](f, unit)
	for _, fac := range factors {
		assert.True(t, fac.Poly.IsMonic())
		for i := 0; i < fac.Exponent; i++ {
			product = product.Multiply(fac.Poly)
		}
	}
	assert.True(t, product.Equal(p))

	g := field(t, 2)
	q := ints(t, g, 1, 0, 1, 0, 1).Multiply(ints(t, g, 0, 1)) // x (x^2 + x + 1)^2
	_, factors, err = q.Factorize()
	require.NoError(t, err)
	require.Len(t, factors, 2)
	assert.Equal(t, "(x)", factors[0].String())
	assert.Equal(t, "(x^2 + x + 1)^2", factors[1].String())

	_, _, err = poly.Zero[*ring.RingElement](g).Factorize()
	assert.ErrorIs(t, err, poly.ErrZeroPolynomial)
}

func TestExtendedGCD(t *testing.T) {
	f := field(t, 7)
	a := ints(t, f, 1, 0, 1).Multiply(ints(t, f, 1, 1))  // (x^2 + 1)(x + 1)
	b := ints(t, f, 1, 0, 1).Multiply(ints(t, f, -2, 1)) // (x^2 + 1)(x - 2)
	g, s, u, err := poly.ExtendedGCD(a, b)
	require.NoError(t, err)
	assert.Equal(t, "x^2 + 1", g.String())
	assert.True(t, a.Multiply(s).Add(b.Multiply(u)).Equal(g))

	g, err = poly.GCD(ints(t, f, 1, 1), ints(t, f, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, "1", g.String())
}

func TestMonicPolynomials(t *testing.T) {
	f := field(t, 3)
	for d := 0; d <= 3; d++ {
		ps, err := poly.MonicPolynomials[*ring.RingElement](f, d)
		require.NoError(t, err)
		assert.Len(t, ps, int(new(big.Int).Exp(big.NewInt(3), big.NewInt(int64(d)), nil).Int64()))
		seen := map[string]bool{}
		for _, p := range ps {
			assert.True(t, p.IsMonic())
			assert.Equal(t, d, p.Degree())
			seen[p.String()] = true
		}
		assert.Len(t, seen, len(ps))
	}

	_, err := poly.MonicPolynomials[*ring.RingElement](ring.GoldilocksField(), 2)
	assert.ErrorIs(t, err, poly.ErrSearchLimit)
	assert.ErrorIs(t, err, util.ErrUndetermined)
}

func TestParse(t *testing.T) {
	f := field(t, 13)
	for _, s := range []string{"x^3 + 12x + 1", "x", "5", "0", "2x^2 + x"} {
		p, err := poly.Parse[*ring.RingElement](f, s)
		require.NoError(t, err)
		assert.Equal(t, s, p.String())
	}

	p, err := poly.Parse[*ring.RingElement](f, "0xax^2 + 3*x + 0xa + 4")
	require.NoError(t, err)
	assert.Equal(t, "10x^2 + 3x + 1", p.String())

	for _, s := range []string{"x^ + 1", "(x + 1", "x + + 1", "y^2", "x -", "x^-2"} {
		_, err := poly.Parse[*ring.RingElement](f, s)
		assert.ErrorIs(t, err, util.ErrValidation, s)
	}
}

func TestParseSubtraction(t *testing.T) {
	f := field(t, 13)
	cases := map[string]string{
		"x - 1":         "x + 12",
		"-x^2 + x":      "12x^2 + x",
		"x^3 - x - 1":   "x^3 + 12x + 12",
		"x + -1":        "x + 12",
		"x - -1":        "x + 1",
		"- 2x^2 - 3":    "11x^2 + 10",
		"x^2 - x^2 + 4": "4",
		"(0xa)x - 0xa":  "10x + 3",
	}
	for s, want := range cases {
		p, err := poly.Parse[*ring.RingElement](f, s)
		require.NoError(t, err, s)
		assert.Equal(t, want, p.String(), s)
	}
}

func TestParseDegreeBound(t *testing.T) {
	f := field(t, 7)
	p, err := poly.Parse[*ring.RingElement](f, fmt.Sprintf("x^%d + 1", poly.MaxDegree))
	require.NoError(t, err)
	assert.Equal(t, poly.MaxDegree, p.Degree())

	for _, s := range []string{"x^30000000 + 1", "x^2000000000", "3x^99999999999999999999"} {
		_, err := poly.Parse[*ring.RingElement](f, s)
		assert.ErrorIs(t, err, util.ErrInvalidArgument, s)
	}
}
