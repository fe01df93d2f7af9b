// Package factor implements integer factorization by trial division and
// Pollard's rho, together with the totient functions built on it.
package factor

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/takakv/cyclic/prime"
	"github.com/takakv/cyclic/util"
)

// DefaultRounds bounds the number of rho iterations spent on splitting a
// single composite cofactor.
const DefaultRounds = 100_000

// ErrIncomplete reports that the round budget ran out before the integer was
// completely factored.
var ErrIncomplete = fmt.Errorf("%w: factorization budget exhausted", util.ErrUndetermined)

// Factor is a prime power Base^Exponent.
type Factor struct {
	Base     *big.Int
	Exponent int
}

func (f Factor) String() string {
	if f.Exponent == 1 {
		return f.Base.String()
	}
	return fmt.Sprintf("%v^%d", f.Base, f.Exponent)
}

// Format renders a factor list as "p1^e1 * p2^e2 * ...".
func Format(factors []Factor) string {
	if len(factors) == 0 {
		return "1"
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, " * ")
}

// Factorizer factors integers and memoises the results in its cache.
type Factorizer struct {
	cache  Cache
	rounds int
	log    *log.Entry
}

// Option configures a Factorizer.
type Option func(*Factorizer)

// WithCache replaces the default in-memory cache.
func WithCache(c Cache) Option {
	return func(f *Factorizer) { f.cache = c }
}

// WithRounds sets the rho iteration budget per split.
func WithRounds(rounds int) Option {
	return func(f *Factorizer) { f.rounds = rounds }
}

// WithLogger sets the logger used for budget and retry diagnostics.
func WithLogger(l *log.Entry) Option {
	return func(f *Factorizer) { f.log = l }
}

// New creates a Factorizer with a fresh MapCache and DefaultRounds.
func New(opts ...Option) *Factorizer {
	f := &Factorizer{
		cache:  NewMapCache(),
		rounds: DefaultRounds,
		log:    log.WithField("component", "factor"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFactorizer = New()

// Default returns the process-wide factorizer used by Factorize.
func Default() *Factorizer {
	return defaultFactorizer
}

// Factorize factors n with the process-wide factorizer.
func Factorize(n *big.Int) ([]Factor, error) {
	return defaultFactorizer.Factorize(n)
}

// Factorize returns the prime factorization of n > 0 sorted by base. The
// factorization of 1 is empty. ErrIncomplete is returned when a cofactor
// could not be split within the round budget.
func (f *Factorizer) Factorize(n *big.Int) ([]Factor, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: cannot factorize %v", util.ErrInvalidArgument, n)
	}

	key := n.String()
	if cached, ok := f.cache.Load(key); ok {
		f.log.Debugf("cache hit for %s", key)
		return cached, nil
	}

	var primes []*big.Int
	rest := new(big.Int).Set(n)
	q, r := new(big.Int), new(big.Int)
	for _, p := range prime.SmallPrimes {
		bp := big.NewInt(p)
		for {
			q.QuoRem(rest, bp, r)
			if r.Sign() != 0 {
				break
			}
			primes = append(primes, bp)
			rest.Set(q)
		}
	}

	if rest.Cmp(one) != 0 {
		found, err := f.split(rest)
		if err != nil {
			return nil, fmt.Errorf("factorizing %v: %w", n, err)
		}
		primes = append(primes, found...)
	}

	factors := SortAndCombine(primes)
	f.cache.Store(key, factors)
	return factors, nil
}

// split returns the prime factors of n > 1 with multiplicity.
func (f *Factorizer) split(n *big.Int) ([]*big.Int, error) {
	if prime.IsProbablePrime(n, prime.DefaultRounds, true) {
		return []*big.Int{new(big.Int).Set(n)}, nil
	}

	d := f.rho(n)
	if d == nil {
		f.log.Warnf("no factor of %v found within %d rounds", n, f.rounds)
		return nil, ErrIncomplete
	}

	left, err := f.split(d)
	if err != nil {
		return nil, err
	}
	right, err := f.split(new(big.Int).Quo(n, d))
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// rho finds a non-trivial divisor of the odd composite n, or returns nil when
// the budget is exhausted.
func (f *Factorizer) rho(n *big.Int) *big.Int {
	budget := f.rounds
	for c := uint64(1); budget > 0; c++ {
		var d *big.Int
		if n.BitLen() <= 256 {
			d = pollard[wordElt](newWordArith(n), c, &budget)
		} else {
			d = pollard[bigElt](newBigArith(n), c, &budget)
		}
		if d != nil {
			return d
		}
		f.log.Debugf("rho collapsed for %v with offset %d, retrying", n, c)
	}
	return nil
}

// SortAndCombine turns a list of primes with repetitions into sorted factors.
func SortAndCombine(primes []*big.Int) []Factor {
	sorted := make([]*big.Int, len(primes))
	copy(sorted, primes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	factors := []Factor{}
	for _, p := range sorted {
		if k := len(factors); k > 0 && factors[k-1].Base.Cmp(p) == 0 {
			factors[k-1].Exponent++
			continue
		}
		factors = append(factors, Factor{Base: new(big.Int).Set(p), Exponent: 1})
	}
	return factors
}

// Product multiplies a factor list back together.
func Product(factors []Factor) *big.Int {
	res := big.NewInt(1)
	for _, f := range factors {
		res.Mul(res, pow(f.Base, f.Exponent))
	}
	return res
}

// Phi computes Euler's totient from a factorization.
func Phi(factors []Factor) *big.Int {
	res := big.NewInt(1)
	for _, f := range factors {
		res.Mul(res, primePowerTotient(f))
	}
	return res
}

// Lambda computes Carmichael's function from a factorization.
func Lambda(factors []Factor) *big.Int {
	res := big.NewInt(1)
	for _, f := range factors {
		var l *big.Int
		if f.Base.Cmp(two) == 0 && f.Exponent >= 3 {
			l = pow(two, f.Exponent-2)
		} else {
			l = primePowerTotient(f)
		}
		// Both operands are positive, so LCM cannot fail.
		res, _ = util.LCM(res, l)
	}
	return res
}

// primePowerTotient returns p^(e-1) * (p-1).
func primePowerTotient(f Factor) *big.Int {
	res := pow(f.Base, f.Exponent-1)
	return res.Mul(res, new(big.Int).Sub(f.Base, one))
}

func pow(b *big.Int, e int) *big.Int {
	return new(big.Int).Exp(b, big.NewInt(int64(e)), nil)
}
