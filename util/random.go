package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
)

// BitSource yields uniformly distributed 32-bit words.
type BitSource interface {
	Uint32() uint32
}

// NewSeededSource returns a deterministic generator for reproducible tests
// and demonstrations. It must never be used to produce key material.
func NewSeededSource(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func span(lower, upper *big.Int) (*big.Int, error) {
	if lower.Cmp(upper) > 0 {
		return nil, fmt.Errorf("%w: empty range [%v, %v]", ErrInvalidArgument, lower, upper)
	}
	s := new(big.Int).Sub(upper, lower)
	return s.Add(s, one), nil
}

// RandomInteger returns a uniformly random integer in [lower, upper], drawn
// from crypto/rand.
func RandomInteger(lower, upper *big.Int) (*big.Int, error) {
	s, err := span(lower, upper)
	if err != nil {
		return nil, err
	}
	r, err := rand.Int(rand.Reader, s)
	if err != nil {
		return nil, err
	}
	return r.Add(r, lower), nil
}

// PseudoRandomInteger returns a uniformly random integer in [lower, upper]
// drawn from src by rejection sampling.
func PseudoRandomInteger(src BitSource, lower, upper *big.Int) (*big.Int, error) {
	s, err := span(lower, upper)
	if err != nil {
		return nil, err
	}

	bits := s.BitLen()
	words := (bits + 31) / 32
	buf := make([]byte, 4*words)
	r := new(big.Int)
	for {
		for i := 0; i < words; i++ {
			w := src.Uint32()
			buf[4*i] = byte(w >> 24)
			buf[4*i+1] = byte(w >> 16)
			buf[4*i+2] = byte(w >> 8)
			buf[4*i+3] = byte(w)
		}
		// Keep exactly bits bits so each draw succeeds with probability > 1/2.
		r.SetBytes(buf)
		r.Rsh(r, uint(8*len(buf)-bits))
		if r.Cmp(s) < 0 {
			return r.Add(r, lower), nil
		}
	}
}
