package ring

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// BLS12377ScalarField returns the scalar field of the BLS12-377 curve.
func BLS12377ScalarField() *MultiplicativeRing {
	return primeField(fr.Modulus())
}

// GoldilocksField returns the field modulo 2^64 - 2^32 + 1.
func GoldilocksField() *MultiplicativeRing {
	return primeField(goldilocks.Modulus())
}

func primeField(p *big.Int) *MultiplicativeRing {
	r, err := NewMultiplicativeRing(p, new(big.Int).Sub(p, big.NewInt(1)))
	if err != nil {
		panic("invalid field definition")
	}
	return r
}
