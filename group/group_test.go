package group

import (
	"math/big"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/util"
)

func additive(t *testing.T, m int64) *AdditiveGroup {
	t.Helper()
	g, err := NewAdditiveGroup(big.NewInt(m))
	require.NoError(t, err)
	return g
}

func multiplicative(t *testing.T, m int64) *MultiplicativeGroup {
	t.Helper()
	g, err := NewMultiplicativeGroup(big.NewInt(m), nil)
	require.NoError(t, err)
	return g
}

func TestAdditiveScenario(t *testing.T) {
	g := additive(t, 9)
	a, err := g.Element(big.NewInt(5))
	require.NoError(t, err)
	b, err := g.Element(big.NewInt(7))
	require.NoError(t, err)

	assert.Equal(t, "3", a.Combine(b).String())
	assert.Equal(t, "4", a.Invert().String())
	assert.True(t, a.Combine(a.Invert()).IsIdentity())
	assert.Equal(t, 0, g.Order().Cmp(big.NewInt(9)))
}

func TestMultiplicativeScenario(t *testing.T) {
	g := multiplicative(t, 97)
	a, err := g.Element(big.NewInt(5))
	require.NoError(t, err)

	inv, err := a.Invert()
	require.NoError(t, err)
	assert.Equal(t, "39", inv.String())
	assert.True(t, a.Combine(inv).IsIdentity())
	assert.Equal(t, 0, g.Order().Cmp(big.NewInt(96)))
}

func TestGroup(t *testing.T) {
	const testTimes = 1 << 5
	src := util.NewSeededSource(7)

	for _, m := range []int64{1, 2, 9, 60, 97} {
		g := additive(t, m)
		n := g.String()
		t.Run(n+"/Laws", func(tt *testing.T) {
			for i := 0; i < testTimes; i++ {
				x, err := g.PseudoRandomElement(src)
				require.NoError(tt, err)
				y, err := g.PseudoRandomElement(src)
				require.NoError(tt, err)
				assert.True(tt, x.Combine(y).Equal(y.Combine(x)))
				assert.True(tt, x.Combine(g.Identity()).Equal(x))
				assert.True(tt, x.Combine(x.Invert()).IsIdentity())
			}
		})
		t.Run(n+"/Repeat", func(tt *testing.T) {
			testRepeat[*AdditiveElement](tt, g, g.AllElements())
		})
		t.Run(n+"/Order", func(tt *testing.T) {
			for _, x := range g.AllElements() {
				order, err := algebra.OrderOf[*AdditiveElement](g, x)
				require.NoError(tt, err)
				assert.Equal(tt, 0, order.Cmp(x.Order()), "element %v", x)
			}
		})
	}

	for _, m := range []int64{2, 8, 15, 97} {
		g := multiplicative(t, m)
		n := g.String()
		t.Run(n+"/Laws", func(tt *testing.T) {
			for i := 0; i < testTimes; i++ {
				x, err := g.PseudoRandomElement(src)
				require.NoError(tt, err)
				y, err := g.PseudoRandomElement(src)
				require.NoError(tt, err)
				assert.True(tt, x.Combine(y).Equal(y.Combine(x)))
				inv, err := x.Invert()
				require.NoError(tt, err)
				assert.True(tt, x.Combine(inv).IsIdentity())
			}
		})
		t.Run(n+"/Repeat", func(tt *testing.T) {
			testRepeat[*MultiplicativeElement](tt, g, g.AllElements(true))
		})
		t.Run(n+"/Order", func(tt *testing.T) {
			for _, x := range g.AllElements(true) {
				order, err := x.Order()
				require.NoError(tt, err)
				assert.Equal(tt, naiveOrder[*MultiplicativeElement](g, x), order.Int64(), "element %v", x)
			}
		})
	}
}

func testRepeat[E algebra.Element[E]](t *testing.T, g algebra.Group[E], elements []E) {
	for _, x := range elements {
		acc := g.Identity()
		for k := int64(0); k <= 50; k++ {
			got, err := algebra.Repeat[E](g, x, big.NewInt(k))
			require.NoError(t, err)
			assert.True(t, got.Equal(acc), "%v repeated %d times", x, k)
			acc = g.Combine(acc, x)
		}
	}
}

func naiveOrder[E algebra.Element[E]](g algebra.Group[E], x E) int64 {
	y := x
	for k := int64(1); ; k++ {
		if y.Equal(g.Identity()) {
			return k
		}
		y = g.Combine(y, x)
	}
}

func TestAdditiveElements(t *testing.T) {
	g := additive(t, 12)
	assert.Len(t, g.AllElements(), 12)

	_, err := g.Element(big.NewInt(12))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = g.Element(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	x, err := g.ElementFromString("0xa")
	require.NoError(t, err)
	assert.Equal(t, "10", x.String())
	assert.Equal(t, "0xa", x.Format(algebra.Hexadecimal))
	assert.Equal(t, "2", x.Repeat(big.NewInt(-1)).String())
	assert.Equal(t, int64(6), x.Order().Int64())
	assert.False(t, x.IsPrimitive())

	gen, err := g.Generator()
	require.NoError(t, err)
	assert.True(t, gen.IsPrimitive())

	_, err = NewAdditiveGroup(big.NewInt(0))
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestIncompatibleGroups(t *testing.T) {
	g := additive(t, 9)
	h := additive(t, 10)
	same := additive(t, 9)

	x, err := g.Element(big.NewInt(3))
	require.NoError(t, err)
	y, err := h.Element(big.NewInt(3))
	require.NoError(t, err)
	z, err := same.Element(big.NewInt(3))
	require.NoError(t, err)

	assert.PanicsWithValue(t, "incompatible groups", func() { x.Equal(y) })
	assert.PanicsWithValue(t, "incompatible groups", func() { x.Combine(y) })
	assert.False(t, x.StrictEqual(y))
	assert.True(t, x.StrictEqual(z))
	assert.True(t, x.Equal(z))
}

func TestIsCyclic(t *testing.T) {
	cases := map[int64]bool{
		2: true, 3: true, 4: true, 8: false, 9: true, 12: false,
		15: false, 18: true, 50: true, 97: true, 100: false,
	}
	for m, want := range cases {
		got, err := multiplicative(t, m).IsCyclic()
		require.NoError(t, err)
		assert.Equal(t, want, got, "modulus %d", m)
	}
}

func TestGenerator(t *testing.T) {
	gen, err := multiplicative(t, 97).Generator()
	require.NoError(t, err)
	assert.Equal(t, "5", gen.String())

	gen, err = multiplicative(t, 2).Generator()
	require.NoError(t, err)
	assert.True(t, gen.IsIdentity())

	_, err = multiplicative(t, 8).Generator()
	assert.ErrorIs(t, err, ErrNotCyclic)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestMultiplicativeElements(t *testing.T) {
	g := multiplicative(t, 15)
	assert.Len(t, g.AllElements(true), 8)
	assert.Len(t, g.AllElements(false), 14)

	x, err := g.Element(big.NewInt(6))
	require.NoError(t, err)
	assert.False(t, g.HasOrder(x))
	_, err = x.Invert()
	assert.ErrorIs(t, err, algebra.ErrNotInvertible)
	assert.ErrorIs(t, err, util.ErrDomain)
	_, err = x.Order()
	assert.ErrorIs(t, err, algebra.ErrNoOrder)
	_, err = x.Repeat(big.NewInt(-2))
	assert.ErrorIs(t, err, algebra.ErrNotInvertible)

	y, err := g.Element(big.NewInt(7))
	require.NoError(t, err)
	r, err := y.Repeat(big.NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, "13", r.String())

	for i := 0; i < 16; i++ {
		u, err := g.RandomElement()
		require.NoError(t, err)
		assert.True(t, g.HasOrder(u))
	}

	_, err = NewMultiplicativeGroup(big.NewInt(1), nil)
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = NewMultiplicativeGroup(big.NewInt(7), big.NewInt(0))
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestUnfactorizableModulus(t *testing.T) {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	f := factor.New(factor.WithRounds(10), factor.WithLogger(log.NewEntry(logger)))

	p, _ := new(big.Int).SetString("2305843009213693951", 10)
	q, _ := new(big.Int).SetString("618970019642690137449562111", 10)
	g, err := NewMultiplicativeGroup(new(big.Int).Mul(p, q), nil, WithFactorizer(f))
	require.NoError(t, err)

	assert.Nil(t, g.Order())
	_, err = g.IsCyclic()
	assert.ErrorIs(t, err, util.ErrUndetermined)

	x, err := g.Element(big.NewInt(3))
	require.NoError(t, err)
	_, err = x.Order()
	assert.ErrorIs(t, err, algebra.ErrOrderIndeterminate)
	_, err = x.IsPrimitive()
	assert.ErrorIs(t, err, util.ErrUndetermined)

	// A supplied order sidesteps the modulus factorization.
	h, err := NewMultiplicativeGroup(p, new(big.Int).Sub(p, big.NewInt(1)))
	require.NoError(t, err)
	y, err := h.Element(big.NewInt(37))
	require.NoError(t, err)
	order, err := y.Order()
	require.NoError(t, err)
	one, err := y.Repeat(order)
	require.NoError(t, err)
	assert.True(t, one.IsIdentity())
}
