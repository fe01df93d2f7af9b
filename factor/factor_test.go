package factor

import (
	"math/big"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/cyclic/prime"
	"github.com/takakv/cyclic/util"
)

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad integer %q", s)
	return n
}

func checkRoundTrip(t *testing.T, n *big.Int, factors []Factor) {
	t.Helper()
	assert.Equal(t, 0, n.Cmp(Product(factors)), "product of %v", factors)
	for i, f := range factors {
		assert.True(t, prime.IsProbablePrime(f.Base, prime.DefaultRounds, false), "%v is not prime", f.Base)
		assert.Positive(t, f.Exponent)
		if i > 0 {
			assert.Equal(t, 1, f.Base.Cmp(factors[i-1].Base), "factors not sorted")
		}
	}
}

func TestFactorize231(t *testing.T) {
	factors, err := New().Factorize(big.NewInt(231))
	require.NoError(t, err)
	require.Len(t, factors, 3)
	for i, want := range []int64{3, 7, 11} {
		assert.Equal(t, want, factors[i].Base.Int64())
		assert.Equal(t, 1, factors[i].Exponent)
	}
}

func TestFactorizeRoundTrip(t *testing.T) {
	f := New()
	for n := int64(1); n <= 3000; n++ {
		factors, err := f.Factorize(big.NewInt(n))
		require.NoError(t, err, "n = %d", n)
		checkRoundTrip(t, big.NewInt(n), factors)
	}
}

func TestFactorizeOne(t *testing.T) {
	factors, err := New().Factorize(big.NewInt(1))
	require.NoError(t, err)
	assert.Empty(t, factors)
	assert.Equal(t, int64(1), Phi(factors).Int64())
	assert.Equal(t, int64(1), Lambda(factors).Int64())
}

func TestFactorizeInvalid(t *testing.T) {
	for _, n := range []int64{0, -1, -231} {
		_, err := New().Factorize(big.NewInt(n))
		assert.ErrorIs(t, err, util.ErrInvalidArgument)
	}
}

func TestFactorizeLarge(t *testing.T) {
	cases := []string{
		"1000000016000000063",  // 1000000007 * 1000000009
		"600851475143",         // 71 * 839 * 1471 * 6857
		"18446744073709551617", // 2^64 + 1 = 274177 * 67280421310721
		"1000000014000000049",  // 1000000007^2
	}
	f := New(WithRounds(2_000_000))
	for _, c := range cases {
		n := mustInt(t, c)
		factors, err := f.Factorize(n)
		require.NoError(t, err, "n = %s", c)
		checkRoundTrip(t, n, factors)
	}
}

func TestFactorizeBeyondWords(t *testing.T) {
	// A cofactor wider than 256 bits exercises the arbitrary-precision walk.
	p := mustInt(t, "1000000007")
	q := new(big.Int).Lsh(big.NewInt(1), 255)
	q = prime.NextPrime(q)
	n := new(big.Int).Mul(p, q)
	n.Mul(n, big.NewInt(1000003))
	require.Greater(t, n.BitLen(), 256)

	factors, err := New(WithRounds(2_000_000)).Factorize(n)
	require.NoError(t, err)
	checkRoundTrip(t, n, factors)
	assert.Len(t, factors, 3)
}

func TestFactorizeBudgetExhausted(t *testing.T) {
	// Product of two 31-bit primes needs far more than 10 rho steps.
	n := new(big.Int).Mul(mustInt(t, "2147483647"), mustInt(t, "2147483629"))
	logger := log.New()
	logger.SetLevel(log.PanicLevel)

	f := New(WithRounds(10), WithLogger(log.NewEntry(logger)))
	factors, err := f.Factorize(n)
	assert.Nil(t, factors)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorIs(t, err, util.ErrUndetermined)
	assert.NotErrorIs(t, err, util.ErrValidation)
}

func TestCache(t *testing.T) {
	cache := NewMapCache()
	f := New(WithCache(cache))

	first, err := f.Factorize(big.NewInt(360))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// Mutating a returned slice must not corrupt the cache.
	first[0].Base.SetInt64(99)
	second, err := f.Factorize(big.NewInt(360))
	require.NoError(t, err)
	assert.Equal(t, "2^3 * 3^2 * 5", Format(second))

	g := New(WithCache(NopCache{}))
	_, err = g.Factorize(big.NewInt(360))
	require.NoError(t, err)
}

func TestCacheConcurrent(t *testing.T) {
	f := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := int64(2); n < 300; n++ {
				factors, err := f.Factorize(big.NewInt(n + int64(i)))
				assert.NoError(t, err)
				assert.Equal(t, n+int64(i), Product(factors).Int64())
			}
		}(i)
	}
	wg.Wait()
}

func TestTotients(t *testing.T) {
	cases := []struct{ n, phi, lambda int64 }{
		{1, 1, 1},
		{2, 1, 1},
		{4, 2, 2},
		{8, 4, 2},
		{16, 8, 4},
		{9, 6, 6},
		{15, 8, 4},
		{97, 96, 96},
		{561, 320, 80},
		{720, 192, 12},
	}
	f := New()
	for _, c := range cases {
		factors, err := f.Factorize(big.NewInt(c.n))
		require.NoError(t, err)
		assert.Equal(t, c.phi, Phi(factors).Int64(), "phi(%d)", c.n)
		assert.Equal(t, c.lambda, Lambda(factors).Int64(), "lambda(%d)", c.n)
	}
}

func TestSortAndCombine(t *testing.T) {
	primes := []*big.Int{big.NewInt(5), big.NewInt(2), big.NewInt(5), big.NewInt(3), big.NewInt(2), big.NewInt(2)}
	factors := SortAndCombine(primes)
	assert.Equal(t, "2^3 * 3 * 5^2", Format(factors))
	assert.Equal(t, "1", Format(SortAndCombine(nil)))
}

func TestRhoArithmeticsAgree(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(1000003), big.NewInt(999983))
	wordBudget, bigBudget := 100_000, 100_000
	dw := pollard[wordElt](newWordArith(n), 1, &wordBudget)
	db := pollard[bigElt](newBigArith(n), 1, &bigBudget)
	require.NotNil(t, dw)
	require.NotNil(t, db)
	assert.Equal(t, 0, dw.Cmp(db), "both walks visit the same sequence")
	assert.Equal(t, wordBudget, bigBudget)
	assert.Equal(t, 0, new(big.Int).Mod(n, dw).Sign())
}
