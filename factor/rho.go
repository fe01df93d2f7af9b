package factor

import (
	"math/big"

	"github.com/holiman/uint256"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// rhoBatch is the number of rho steps whose differences are multiplied
// together before a single gcd is taken.
const rhoBatch = 64

// arith is the modular arithmetic the rho walk needs, over an element type
// chosen by the size of the modulus.
type arith[T any] interface {
	modulus() *big.Int
	from(v uint64) T
	// step returns x^2 + c mod n.
	step(x T, c uint64) T
	// accumulate returns q * |x - y| mod n.
	accumulate(q, x, y T) T
	// gcd returns gcd(v, n).
	gcd(v T) *big.Int
}

// pollard runs Floyd's cycle detection on x -> x^2 + c. It returns a
// non-trivial divisor, or nil when the cycle collapses to n itself or the
// budget runs out.
func pollard[T any](a arith[T], c uint64, budget *int) *big.Int {
	n := a.modulus()
	x := a.from(2)
	y := x

	for *budget > 0 {
		xs, ys := x, y
		steps := min(rhoBatch, *budget)
		q := a.from(1)
		for i := 0; i < steps; i++ {
			x = a.step(x, c)
			y = a.step(a.step(y, c), c)
			q = a.accumulate(q, x, y)
		}
		*budget -= steps

		d := a.gcd(q)
		if d.Cmp(one) == 0 {
			continue
		}
		if d.Cmp(n) != 0 {
			return d
		}

		// The batch product hit a multiple of n: replay it one step at a time.
		x, y = xs, ys
		for i := 0; i < steps; i++ {
			x = a.step(x, c)
			y = a.step(a.step(y, c), c)
			d = a.gcd(a.accumulate(a.from(1), x, y))
			if d.Cmp(one) != 0 {
				break
			}
		}
		if d.Cmp(one) == 0 || d.Cmp(n) == 0 {
			return nil
		}
		return d
	}
	return nil
}

type wordElt = uint256.Int

// wordArith runs the walk on fixed-width 256-bit words.
type wordArith struct {
	n    uint256.Int
	nBig *big.Int
}

func newWordArith(n *big.Int) *wordArith {
	u, overflow := uint256.FromBig(n)
	if overflow {
		panic("modulus does not fit in 256 bits")
	}
	return &wordArith{n: *u, nBig: n}
}

func (a *wordArith) modulus() *big.Int { return a.nBig }

func (a *wordArith) from(v uint64) wordElt { return *uint256.NewInt(v) }

func (a *wordArith) step(x wordElt, c uint64) wordElt {
	var r uint256.Int
	r.MulMod(&x, &x, &a.n)
	r.AddMod(&r, uint256.NewInt(c), &a.n)
	return r
}

func (a *wordArith) accumulate(q, x, y wordElt) wordElt {
	var d uint256.Int
	if x.Gt(&y) {
		d.Sub(&x, &y)
	} else {
		d.Sub(&y, &x)
	}
	var r uint256.Int
	r.MulMod(&q, &d, &a.n)
	return r
}

func (a *wordArith) gcd(v wordElt) *big.Int {
	return new(big.Int).GCD(nil, nil, v.ToBig(), a.nBig)
}

type bigElt = *big.Int

// bigArith runs the walk on arbitrary-precision integers.
type bigArith struct {
	n *big.Int
}

func newBigArith(n *big.Int) *bigArith { return &bigArith{n: n} }

func (a *bigArith) modulus() *big.Int { return a.n }

func (a *bigArith) from(v uint64) bigElt { return new(big.Int).SetUint64(v) }

func (a *bigArith) step(x bigElt, c uint64) bigElt {
	r := new(big.Int).Mul(x, x)
	r.Add(r, new(big.Int).SetUint64(c))
	return r.Mod(r, a.n)
}

func (a *bigArith) accumulate(q, x, y bigElt) bigElt {
	d := new(big.Int).Sub(x, y)
	d.Abs(d)
	d.Mul(d, q)
	return d.Mod(d, a.n)
}

func (a *bigArith) gcd(v bigElt) *big.Int {
	return new(big.Int).GCD(nil, nil, v, a.n)
}
