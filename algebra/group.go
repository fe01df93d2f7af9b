// Package algebra holds the behaviour shared by every finite group and ring:
// repetition (exponentiation or scalar multiplication), element orders and
// element formatting.
package algebra

import (
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/util"
)

var (
	// ErrOrderIndeterminate reports that an element order needs a structure
	// order, or a factorization of it, that is not available.
	ErrOrderIndeterminate = fmt.Errorf("%w: order cannot be determined", util.ErrUndetermined)
	// ErrNoOrder reports an element without a (multiplicative) order.
	ErrNoOrder = fmt.Errorf("%w: element has no order", util.ErrDomain)
	// ErrNotInvertible reports an element without an inverse.
	ErrNotInvertible = fmt.Errorf("%w: element is not invertible", util.ErrDomain)
)

// Element represents an element of a finite structure. Elements are
// immutable and every operation returns a new element.
type Element[E any] interface {
	// Equal reports whether the receiver equals x. Both must belong to the
	// same structure.
	Equal(x E) bool
	// String returns the raw representation of the element.
	String() string
}

// Repeater is a binary operation with an identity, which is all Repeat needs.
type Repeater[E any] interface {
	// RepetitionIdentity returns the identity of the repeated operation: the
	// group identity or the ring's one.
	RepetitionIdentity() E
	// RepetitionCombine applies the repeated operation to x and y.
	RepetitionCombine(x, y E) E
	// RepetitionInvert inverts x with respect to the repeated operation.
	RepetitionInvert(x E) (E, error)
}

// Structure represents a finite group, or a ring seen through its
// multiplication.
type Structure[E Element[E]] interface {
	Repeater[E]
	// RepetitionOrder returns the number of elements that have an order, or
	// nil if it is unknown.
	RepetitionOrder() *big.Int
	// RepetitionFactors returns the factorization of RepetitionOrder.
	RepetitionFactors() ([]factor.Factor, error)
	// HasOrder reports whether x has a finite order under repetition.
	HasOrder(x E) bool
}

// Group represents a finite group.
type Group[E Element[E]] interface {
	Structure[E]
	// Identity returns the group's identity element.
	Identity() E
	// Combine applies the group operation.
	Combine(x, y E) E
	// Invert returns the inverse of x.
	Invert(x E) (E, error)
	// Order returns the number of elements, or nil if it is unknown.
	Order() *big.Int
	// RandomElement returns a uniformly sampled element.
	RandomElement() (E, error)
	// ElementFromString parses an element.
	ElementFromString(s string) (E, error)
}

// Ring represents a finite commutative ring with one.
type Ring[E Element[E]] interface {
	Structure[E]
	Zero() E
	One() E
	Add(x, y E) E
	Subtract(x, y E) E
	Negate(x E) E
	Multiply(x, y E) E
	// Invert returns the multiplicative inverse of x.
	Invert(x E) (E, error)
	// Divide returns x * y^-1.
	Divide(x, y E) (E, error)
	// IsField reports whether every non-zero element is invertible.
	IsField() bool
	// Order returns the number of elements.
	Order() *big.Int
	RandomElement() (E, error)
	ElementFromString(s string) (E, error)
}

// Repeat combines x with itself n times by square-and-multiply. For a
// negative n the inverse of x is repeated -n times.
func Repeat[E any](s Repeater[E], x E, n *big.Int) (E, error) {
	if n.Sign() < 0 {
		inv, err := s.RepetitionInvert(x)
		if err != nil {
			var zero E
			return zero, err
		}
		x = inv
		n = new(big.Int).Neg(n)
	}

	res := s.RepetitionIdentity()
	for i := n.BitLen() - 1; i >= 0; i-- {
		res = s.RepetitionCombine(res, res)
		if n.Bit(i) == 1 {
			res = s.RepetitionCombine(res, x)
		}
	}
	return res, nil
}

// OrderOf returns the smallest positive n such that repeating x n times gives
// the identity. It strips prime factors from the structure's order for as
// long as the repetition stays the identity.
func OrderOf[E Element[E]](s Structure[E], x E) (*big.Int, error) {
	if !s.HasOrder(x) {
		return nil, fmt.Errorf("%w: %v", ErrNoOrder, x)
	}
	n := s.RepetitionOrder()
	if n == nil {
		return nil, fmt.Errorf("%w: structure order unknown", ErrOrderIndeterminate)
	}
	factors, err := s.RepetitionFactors()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrderIndeterminate, err)
	}

	identity := s.RepetitionIdentity()
	order := new(big.Int).Set(n)
	for _, f := range factors {
		for i := 0; i < f.Exponent; i++ {
			candidate := new(big.Int).Quo(order, f.Base)
			y, err := Repeat[E](s, x, candidate)
			if err != nil {
				return nil, err
			}
			if !y.Equal(identity) {
				break
			}
			order = candidate
		}
	}
	return order, nil
}

// IsPrimitive reports whether x generates every element with an order, i.e.
// whether its order equals the structure's repetition order.
func IsPrimitive[E Element[E]](s Structure[E], x E) (bool, error) {
	if !s.HasOrder(x) {
		return false, nil
	}
	order, err := OrderOf(s, x)
	if err != nil {
		return false, err
	}
	return order.Cmp(s.RepetitionOrder()) == 0, nil
}
