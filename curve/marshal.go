package curve

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/takakv/cyclic/util"
)

// ECPoint is the JSON form of a point. The point at infinity is encoded as
// x = 0, y = 0.
type ECPoint struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

// SEC1 encoding prefixes.
const (
	tagInfinity     = 0x00
	tagCompressed   = 0x02
	tagUncompressed = 0x04
)

// ErrEncoding reports a malformed point encoding.
var ErrEncoding = fmt.Errorf("%w: malformed point encoding", util.ErrValidation)

func (p *Point) MarshalJSON() ([]byte, error) {
	if p.IsInfinity() {
		return json.Marshal(ECPoint{X: new(big.Int), Y: new(big.Int)})
	}
	return json.Marshal(ECPoint{X: p.X(), Y: p.Y()})
}

// PointFromJSON decodes a point written by MarshalJSON. (0, 0) decodes to
// the point at infinity unless it lies on the curve.
func (c *Curve) PointFromJSON(data []byte) (*Point, error) {
	var ep ECPoint
	if err := json.Unmarshal(data, &ep); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if ep.X == nil || ep.Y == nil {
		return nil, fmt.Errorf("%w: missing coordinate", ErrEncoding)
	}
	if ep.X.Sign() == 0 && ep.Y.Sign() == 0 && !c.b.IsZero() {
		return c.Infinity(), nil
	}
	return c.Point(ep.X, ep.Y)
}

// coordinateLength is the byte length of an encoded field element.
func (c *Curve) coordinateLength() int {
	return (c.field.Modulus().BitLen() + 7) / 8
}

// MarshalBinary encodes p in uncompressed SEC1 form, 0x04 || x || y, and the
// point at infinity as the single byte 0x00.
func (p *Point) MarshalBinary() ([]byte, error) {
	if p.IsInfinity() {
		return []byte{tagInfinity}, nil
	}
	n := p.curve.coordinateLength()
	b := make([]byte, 1+2*n)
	b[0] = tagUncompressed
	p.x.Value().FillBytes(b[1 : 1+n])
	p.y.Value().FillBytes(b[1+n:])
	return b, nil
}

// MarshalBinaryCompress encodes p in compressed SEC1 form, 0x02 or 0x03
// followed by x, the tag carrying the parity of y.
func (p *Point) MarshalBinaryCompress() ([]byte, error) {
	if p.IsInfinity() {
		return []byte{tagInfinity}, nil
	}
	n := p.curve.coordinateLength()
	b := make([]byte, 1+n)
	b[0] = tagCompressed | byte(p.y.Value().Bit(0))
	p.x.Value().FillBytes(b[1:])
	return b, nil
}

// PointFromBytes decodes a point in any of the forms written by
// MarshalBinary and MarshalBinaryCompress.
func (c *Curve) PointFromBytes(b []byte) (*Point, error) {
	n := c.coordinateLength()
	switch {
	case len(b) == 1 && b[0] == tagInfinity:
		return c.Infinity(), nil
	case len(b) == 1+2*n && b[0] == tagUncompressed:
		x := new(big.Int).SetBytes(b[1 : 1+n])
		y := new(big.Int).SetBytes(b[1+n:])
		return c.Point(x, y)
	case len(b) == 1+n && (b[0] == tagCompressed || b[0] == tagCompressed|1):
		ps, err := c.PointsAt(new(big.Int).SetBytes(b[1:]))
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			if p.y.Value().Bit(0) == uint(b[0]&1) {
				return p, nil
			}
		}
		return nil, fmt.Errorf("%w: no point with x = %x", ErrNotOnCurve, b[1:])
	}
	return nil, fmt.Errorf("%w: %d bytes with tag %#x", ErrEncoding, len(b), firstByte(b))
}

func firstByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
