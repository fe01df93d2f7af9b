package curve

import (
	"fmt"
	"math/big"

	circl "github.com/cloudflare/circl/group"
	"github.com/ing-bank/zkrp/crypto/p256"

	"github.com/takakv/cyclic/ring"
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid curve definition")
	}
	return v
}

// nistCurve builds a curve with a = -3 from the base point of a circl group.
// b follows from the base point: b = y^2 - x^3 + 3x.
func nistCurve(name string, g circl.Group, p, n *big.Int) *Curve {
	enc, err := g.Generator().MarshalBinary()
	if err != nil {
		panic(err)
	}
	size := (p.BitLen() + 7) / 8
	if len(enc) != 1+2*size || enc[0] != tagUncompressed {
		panic("invalid curve definition")
	}
	gx := new(big.Int).SetBytes(enc[1 : 1+size])
	gy := new(big.Int).SetBytes(enc[1+size:])

	b := new(big.Int).Mul(gy, gy)
	b.Sub(b, new(big.Int).Exp(gx, big.NewInt(3), nil))
	b.Add(b, new(big.Int).Mul(big.NewInt(3), gx))
	b.Mod(b, p)

	return named(name, p, n, big.NewInt(-3), b, gx, gy)
}

func named(name string, p, n, a, b, gx, gy *big.Int) *Curve {
	field, err := ring.NewMultiplicativeRing(p, new(big.Int).Sub(p, big.NewInt(1)))
	if err != nil {
		panic(fmt.Sprintf("invalid curve definition: %v", err))
	}
	c, err := New(field, a, b, n, WithName(name), WithGenerator(gx, gy))
	if err != nil {
		panic(fmt.Sprintf("invalid curve definition: %v", err))
	}
	return c
}

// P256 returns the NIST P-256 curve.
func P256() *Curve {
	p := mustHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff")
	n := mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
	return nistCurve("P-256", circl.P256, p, n)
}

// P384 returns the NIST P-384 curve.
func P384() *Curve {
	p := mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff")
	n := mustHex("ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973")
	return nistCurve("P-384", circl.P384, p, n)
}

// Secp256k1 returns the secp256k1 curve, y^2 = x^3 + 7.
func Secp256k1() *Curve {
	p := mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	n := mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	g := new(p256.P256).ScalarBaseMult(big.NewInt(1))
	return named("secp256k1", p, n, big.NewInt(0), big.NewInt(7), g.X, g.Y)
}

// Named returns the curve called name: P-256, P-384 or secp256k1.
func Named(name string) (*Curve, error) {
	switch name {
	case "P-256", "p256", "P256", "secp256r1":
		return P256(), nil
	case "P-384", "p384", "P384", "secp384r1":
		return P384(), nil
	case "secp256k1", "p256k1":
		return Secp256k1(), nil
	}
	return nil, fmt.Errorf("%w: unknown curve %q", ErrUnknownCurve, name)
}
