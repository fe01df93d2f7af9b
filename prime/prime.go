// Package prime implements Miller-Rabin primality testing and prime search.
package prime

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/util"
)

// DefaultRounds is the number of random Miller-Rabin bases used above the
// deterministic ranges. A composite passes with probability at most 4^-rounds.
const DefaultRounds = 64

// SmallPrimes holds the first 50 primes.
var SmallPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)

	// Product of the first 40 primes.
	primorial = func() *big.Int {
		p := big.NewInt(1)
		for _, q := range SmallPrimes[:40] {
			p.Mul(p, big.NewInt(q))
		}
		return p
	}()

	deterministicSmall    = big.NewInt(25_326_001)
	deterministicLarge, _ = new(big.Int).SetString("318665857834031151167461", 10)

	smallWitnesses = []int64{2, 3, 5}
	largeWitnesses = SmallPrimes[:12]
)

// IsProbablePrime reports whether n is prime. Below 318665857834031151167461
// the answer is exact; above it a composite is accepted with probability at
// most 4^-rounds. skipInitialChecks skips the trial division against the first
// 40 primes for callers that already filtered n.
func IsProbablePrime(n *big.Int, rounds int, skipInitialChecks bool) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.IsInt64() && n.Int64() <= SmallPrimes[len(SmallPrimes)-1] {
		v := n.Int64()
		for _, p := range SmallPrimes {
			if p == v {
				return true
			}
		}
		if !skipInitialChecks {
			return false
		}
	}

	for _, p := range smallWitnesses {
		if new(big.Int).Mod(n, big.NewInt(p)).Sign() == 0 {
			return n.Cmp(big.NewInt(p)) == 0
		}
	}
	if !skipInitialChecks && !util.IsCoprime(n, primorial) {
		return false
	}

	switch {
	case n.Cmp(deterministicSmall) < 0:
		return millerRabin(n, bigs(smallWitnesses))
	case n.Cmp(deterministicLarge) < 0:
		return millerRabin(n, bigs(largeWitnesses))
	default:
		return millerRabin(n, randomWitnesses(n, rounds))
	}
}

func bigs(vs []int64) []*big.Int {
	res := make([]*big.Int, len(vs))
	for i, v := range vs {
		res[i] = big.NewInt(v)
	}
	return res
}

// randomWitnesses draws bases uniformly from [2, n-2].
func randomWitnesses(n *big.Int, rounds int) []*big.Int {
	upper := new(big.Int).Sub(n, two)
	res := make([]*big.Int, 0, rounds)
	for i := 0; i < rounds; i++ {
		span := new(big.Int).Sub(upper, one)
		a, err := rand.Int(rand.Reader, span)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand failure: %v", err))
		}
		res = append(res, a.Add(a, two))
	}
	return res
}

// millerRabin reports whether no base in witnesses proves n composite.
// n must be odd and larger than every witness.
func millerRabin(n *big.Int, witnesses []*big.Int) bool {
	nMinus1 := new(big.Int).Sub(n, one)
	r := nMinus1.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinus1, r)

	x := new(big.Int)
outer:
	for _, a := range witnesses {
		if new(big.Int).Mod(a, n).Sign() == 0 {
			continue
		}
		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		for i := uint(1); i < r; i++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(nMinus1) == 0 {
				continue outer
			}
		}
		return false
	}
	return true
}

// NextPrime returns the smallest prime larger than n.
func NextPrime(n *big.Int) *big.Int {
	if n.Cmp(two) < 0 {
		return big.NewInt(2)
	}
	c := new(big.Int).Add(n, one)
	if c.Bit(0) == 0 && c.Cmp(two) != 0 {
		c.Add(c, one)
	}
	for !IsProbablePrime(c, DefaultRounds, false) {
		c.Add(c, two)
	}
	return c
}

// PreviousPrime returns the largest prime smaller than n.
func PreviousPrime(n *big.Int) (*big.Int, error) {
	if n.Cmp(two) <= 0 {
		return nil, fmt.Errorf("%w: no prime below %v", util.ErrInvalidArgument, n)
	}
	if n.Cmp(big.NewInt(3)) == 0 {
		return big.NewInt(2), nil
	}
	c := new(big.Int).Sub(n, one)
	if c.Bit(0) == 0 {
		c.Sub(c, one)
	}
	for !IsProbablePrime(c, DefaultRounds, false) {
		c.Sub(c, two)
	}
	return c, nil
}
