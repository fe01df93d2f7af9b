package util

import (
	"fmt"
	"math/big"

	"github.com/ing-bank/zkrp/util/bn"
)

var one = big.NewInt(1)

// GCD returns the greatest common divisor of two non-negative integers.
func GCD(a, b *big.Int) (*big.Int, error) {
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, fmt.Errorf("%w: gcd(%v, %v) of a negative integer", ErrInvalidArgument, a, b)
	}
	return new(big.Int).GCD(nil, nil, a, b), nil
}

// LCM returns the least common multiple of two non-negative integers.
// LCM(0, x) is 0.
func LCM(a, b *big.Int) (*big.Int, error) {
	g, err := GCD(a, b)
	if err != nil {
		return nil, err
	}
	if g.Sign() == 0 {
		return new(big.Int), nil
	}
	l := new(big.Int).Quo(a, g)
	return l.Mul(l, b), nil
}

// Mod returns a mod m in [0, m), also for negative a.
func Mod(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive modulus %v", ErrInvalidArgument, m)
	}
	return new(big.Int).Mod(a, m), nil
}

// Bezout runs the extended Euclidean algorithm on two non-negative integers
// and returns x, y and g such that a*x + b*y = g = gcd(a, b).
func Bezout(a, b *big.Int) (x, y, g *big.Int, err error) {
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, nil, nil, fmt.Errorf("%w: bezout(%v, %v) of a negative integer", ErrInvalidArgument, a, b)
	}

	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}
	return oldS, oldT, oldR, nil
}

// ModInverse returns the inverse of value modulo modulus. The value must lie
// in (0, modulus).
func ModInverse(value, modulus *big.Int) (*big.Int, error) {
	if value.Sign() <= 0 || value.Cmp(modulus) >= 0 {
		return nil, fmt.Errorf("%w: %v is not in (0, %v)", ErrInvalidArgument, value, modulus)
	}
	x, _, g, err := Bezout(value, modulus)
	if err != nil {
		return nil, err
	}
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%v, %v) = %v", ErrNoInverse, value, modulus, g)
	}
	return x.Mod(x, modulus), nil
}

// ChineseRemainder combines x = r1 (mod m1) and x = r2 (mod m2) into
// x = r (mod m1*m2). The moduli must be positive and coprime.
func ChineseRemainder(m1, r1, m2, r2 *big.Int) (m, r *big.Int, err error) {
	if m1.Sign() <= 0 || m2.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: non-positive modulus in (%v, %v)", ErrInvalidArgument, m1, m2)
	}
	x, y, g, err := Bezout(m1, m2)
	if err != nil {
		return nil, nil, err
	}
	if g.Cmp(one) != 0 {
		return nil, nil, fmt.Errorf("%w: gcd(%v, %v) = %v", ErrNotCoprime, m1, m2, g)
	}

	// m1*x + m2*y = 1, so r1*m2*y + r2*m1*x is r1 mod m1 and r2 mod m2.
	m = bn.Multiply(m1, m2)
	r = new(big.Int).Add(
		bn.Multiply(bn.Multiply(r1, m2), y),
		bn.Multiply(bn.Multiply(r2, m1), x),
	)
	return m, bn.Mod(r, m), nil
}

// IsCoprime reports whether gcd(a, b) = 1 for non-negative a and b.
func IsCoprime(a, b *big.Int) bool {
	return new(big.Int).GCD(nil, nil, a, b).Cmp(one) == 0
}
