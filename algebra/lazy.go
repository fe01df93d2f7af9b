package algebra

import (
	"math/big"
	"sync"

	"github.com/takakv/cyclic/factor"
)

// Lazy is a value computed at most once, on first use.
type Lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

// Get returns the cached value, computing it with f on the first call.
func (l *Lazy[T]) Get(f func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.val, l.err = f()
	})
	return l.val, l.err
}

// OrderInfo caches a structure's repetition order and its factorization.
// Structures embed it to implement RepetitionOrder and RepetitionFactors.
type OrderInfo struct {
	compute    func() *big.Int
	factorizer *factor.Factorizer
	order      Lazy[*big.Int]
	factors    Lazy[[]factor.Factor]
}

// NewOrderInfo wraps compute, which returns the repetition order or nil if it
// is unknown. A nil factorizer selects factor.Default().
func NewOrderInfo(compute func() *big.Int, f *factor.Factorizer) *OrderInfo {
	if f == nil {
		f = factor.Default()
	}
	return &OrderInfo{compute: compute, factorizer: f}
}

// KnownOrder returns an OrderInfo for an order given up front.
func KnownOrder(order *big.Int, f *factor.Factorizer) *OrderInfo {
	o := new(big.Int).Set(order)
	return NewOrderInfo(func() *big.Int { return o }, f)
}

// RepetitionOrder returns the cached order, or nil if it is unknown.
func (o *OrderInfo) RepetitionOrder() *big.Int {
	n, _ := o.order.Get(func() (*big.Int, error) {
		return o.compute(), nil
	})
	return n
}

// RepetitionFactors returns the cached factorization of the order.
func (o *OrderInfo) RepetitionFactors() ([]factor.Factor, error) {
	return o.factors.Get(func() ([]factor.Factor, error) {
		n := o.RepetitionOrder()
		if n == nil {
			return nil, ErrOrderIndeterminate
		}
		return o.factorizer.Factorize(n)
	})
}

// Factorizer returns the factorizer used for the order.
func (o *OrderInfo) Factorizer() *factor.Factorizer {
	return o.factorizer
}
