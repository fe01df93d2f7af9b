// Package curve implements the group of points of a short Weierstrass
// elliptic curve y^2 = x^3 + ax + b over a prime field.
package curve

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/ring"
	"github.com/takakv/cyclic/util"
)

// BruteForceCutoff is the largest field modulus, exclusive, for which points
// are enumerated to count the curve order.
const BruteForceCutoff = 100000

// RandomSearchLimit bounds the x-coordinates tried when sampling a point on
// a curve too large to enumerate.
const RandomSearchLimit = 1000

var _ algebra.Group[*Point] = (*Curve)(nil)

var (
	// ErrNotAField reports a coefficient ring that is not a prime field.
	ErrNotAField = fmt.Errorf("%w: curve coefficients must come from a prime field", util.ErrValidation)
	// ErrSingular reports a curve with zero discriminant.
	ErrSingular = fmt.Errorf("%w: singular curve", util.ErrValidation)
	// ErrNotOnCurve reports coordinates that do not satisfy the curve
	// equation.
	ErrNotOnCurve = fmt.Errorf("%w: point not on curve", util.ErrValidation)
	// ErrTooLarge reports an enumeration over a field at or above
	// BruteForceCutoff.
	ErrTooLarge = fmt.Errorf("%w: field too large to enumerate", util.ErrUndetermined)
	// ErrUnknownCurve reports a curve name Named does not know.
	ErrUnknownCurve = fmt.Errorf("%w: curve", util.ErrNotFound)
)

type config struct {
	factorizer *factor.Factorizer
	name       string
	gx, gy     *big.Int
}

// Option configures a curve.
type Option func(*config)

// WithFactorizer sets the factorizer used for the curve order.
func WithFactorizer(f *factor.Factorizer) Option {
	return func(c *config) { c.factorizer = f }
}

// WithName names the curve.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithGenerator fixes the base point returned by Generator.
func WithGenerator(x, y *big.Int) Option {
	return func(c *config) { c.gx, c.gy = x, y }
}

// Curve is the group of points of y^2 = x^3 + ax + b over a prime field.
type Curve struct {
	*algebra.OrderInfo
	field     *ring.MultiplicativeRing
	a, b      *ring.RingElement
	name      string
	base      *Point
	generator algebra.Lazy[*Point]
}

// Point is an affine point of a Curve, or the point at infinity when x and y
// are nil.
type Point struct {
	curve *Curve
	x, y  *ring.RingElement
}

// New returns the curve y^2 = x^3 + ax + b over field, which must have odd
// characteristic. The coefficients are reduced modulo the field modulus. If
// order is nil the number of points is counted when the field is smaller than
// BruteForceCutoff, and stays unknown otherwise.
func New(field *ring.MultiplicativeRing, a, b, order *big.Int, opts ...Option) (*Curve, error) {
	if field == nil || !field.IsField() {
		return nil, fmt.Errorf("%w: %v", ErrNotAField, field)
	}
	if field.Modulus().Cmp(big.NewInt(2)) == 0 {
		return nil, fmt.Errorf("%w: short Weierstrass form over GF(2)", ErrSingular)
	}
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: missing coefficient", util.ErrInvalidArgument)
	}
	if order != nil && order.Sign() <= 0 {
		return nil, fmt.Errorf("%w: order must be positive", util.ErrInvalidArgument)
	}
	cfg := &config{factorizer: factor.Default()}
	for _, o := range opts {
		o(cfg)
	}

	c := &Curve{
		field: field,
		a:     field.FromInt(a),
		b:     field.FromInt(b),
		name:  cfg.name,
	}
	// 4a^3 + 27b^2
	disc := field.FromInt64(4).Multiply(c.a).Multiply(c.a).Multiply(c.a).
		Add(field.FromInt64(27).Multiply(c.b).Multiply(c.b))
	if disc.IsZero() {
		return nil, fmt.Errorf("%w: 4a^3 + 27b^2 = 0 over %v", ErrSingular, field)
	}

	var known *big.Int
	if order != nil {
		known = new(big.Int).Set(order)
	}
	c.OrderInfo = algebra.NewOrderInfo(func() *big.Int {
		if known != nil {
			return known
		}
		if !c.enumerable() {
			return nil
		}
		return c.countPoints()
	}, cfg.factorizer)

	if cfg.gx != nil || cfg.gy != nil {
		if cfg.gx == nil || cfg.gy == nil {
			return nil, fmt.Errorf("%w: generator needs both coordinates", util.ErrInvalidArgument)
		}
		g, err := c.Point(cfg.gx, cfg.gy)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		c.base = g
	}
	return c, nil
}

func (c *Curve) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("E(%v): y^2 = x^3 + %vx + %v", c.field, c.a, c.b)
}

// Name returns the curve name, empty for an unnamed curve.
func (c *Curve) Name() string { return c.name }

// Field returns the coefficient field.
func (c *Curve) Field() *ring.MultiplicativeRing { return c.field }

// A returns the coefficient of x.
func (c *Curve) A() *ring.RingElement { return c.a }

// B returns the constant coefficient.
func (c *Curve) B() *ring.RingElement { return c.b }

// Order returns the number of points, or nil if it is unknown.
func (c *Curve) Order() *big.Int {
	n := c.RepetitionOrder()
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}

// Equal reports whether c and d share the field and coefficients.
func (c *Curve) Equal(d *Curve) bool {
	if c == d {
		return true
	}
	return d != nil && c.field.Equal(d.field) && c.a.Equal(d.a) && c.b.Equal(d.b)
}

func (c *Curve) enumerable() bool {
	return c.field.Modulus().Cmp(big.NewInt(BruteForceCutoff)) < 0
}

// rhs evaluates x^3 + ax + b.
func (c *Curve) rhs(x *ring.RingElement) *ring.RingElement {
	return x.Multiply(x).Multiply(x).Add(c.a.Multiply(x)).Add(c.b)
}

func (c *Curve) contains(x, y *ring.RingElement) bool {
	return y.Multiply(y).Equal(c.rhs(x))
}

// Infinity returns the point at infinity, the identity of the group.
func (c *Curve) Infinity() *Point { return &Point{curve: c} }

// Identity returns the point at infinity.
func (c *Curve) Identity() *Point { return c.Infinity() }

// Point returns the affine point (x, y). Both coordinates must lie in
// [0, p) and satisfy the curve equation.
func (c *Curve) Point(x, y *big.Int) (*Point, error) {
	xe, err := c.field.Element(x)
	if err != nil {
		return nil, err
	}
	ye, err := c.field.Element(y)
	if err != nil {
		return nil, err
	}
	return c.point(xe, ye)
}

func (c *Curve) point(x, y *ring.RingElement) (*Point, error) {
	if !c.contains(x, y) {
		return nil, fmt.Errorf("%w: (%v, %v) on %v", ErrNotOnCurve, x, y, c)
	}
	return &Point{curve: c, x: x, y: y}, nil
}

// PointsAt returns the points with the given x-coordinate: none, one when
// y = 0, or two ordered by y.
func (c *Curve) PointsAt(x *big.Int) ([]*Point, error) {
	xe, err := c.field.Element(x)
	if err != nil {
		return nil, err
	}
	return c.pointsAt(xe)
}

func (c *Curve) pointsAt(x *ring.RingElement) ([]*Point, error) {
	roots, ok, err := c.rhs(x).Sqrt()
	if err != nil || !ok {
		return nil, err
	}
	res := []*Point{{curve: c, x: x, y: roots[0]}}
	if !roots[1].Equal(roots[0]) {
		res = append(res, &Point{curve: c, x: x, y: roots[1]})
	}
	return res, nil
}

// AllElements lists every point, infinity first and then by increasing x.
// It fails with ErrTooLarge for fields at or above BruteForceCutoff.
func (c *Curve) AllElements() ([]*Point, error) {
	if !c.enumerable() {
		return nil, fmt.Errorf("%w: %v", ErrTooLarge, c.field)
	}
	res := []*Point{c.Infinity()}
	for _, x := range c.field.AllElements() {
		ps, err := c.pointsAt(x)
		if err != nil {
			return nil, err
		}
		res = append(res, ps...)
	}
	return res, nil
}

func (c *Curve) countPoints() *big.Int {
	ps, err := c.AllElements()
	if err != nil {
		return nil
	}
	return big.NewInt(int64(len(ps)))
}

// Generator returns the configured base point. Curves without one that are
// small enough to enumerate return the first point of maximal order; the
// search fails with util.ErrNotFound if the group is not cyclic.
func (c *Curve) Generator() (*Point, error) {
	if c.base != nil {
		return c.base, nil
	}
	return c.generator.Get(func() (*Point, error) {
		ps, err := c.AllElements()
		if err != nil {
			return nil, fmt.Errorf("%w: no base point for %v", util.ErrNotFound, c)
		}
		for _, p := range ps {
			ok, err := p.IsPrimitive()
			if err != nil {
				return nil, err
			}
			if ok {
				return p, nil
			}
		}
		return nil, fmt.Errorf("%w: %v is not cyclic", util.ErrNotFound, c)
	})
}

// RandomElement returns a random point. Small curves are sampled uniformly
// from their enumeration; larger ones by a random x-coordinate and sign.
func (c *Curve) RandomElement() (*Point, error) {
	return c.sample(
		func(n *big.Int) (*big.Int, error) {
			return util.RandomInteger(big.NewInt(0), new(big.Int).Sub(n, big.NewInt(1)))
		})
}

// PseudoRandomElement returns a point drawn from src.
func (c *Curve) PseudoRandomElement(src util.BitSource) (*Point, error) {
	return c.sample(
		func(n *big.Int) (*big.Int, error) {
			return util.PseudoRandomInteger(src, big.NewInt(0), new(big.Int).Sub(n, big.NewInt(1)))
		})
}

// sample picks a point using below, which returns an integer in [0, n).
func (c *Curve) sample(below func(n *big.Int) (*big.Int, error)) (*Point, error) {
	if c.enumerable() {
		ps, err := c.AllElements()
		if err != nil {
			return nil, err
		}
		i, err := below(big.NewInt(int64(len(ps))))
		if err != nil {
			return nil, err
		}
		return ps[i.Int64()], nil
	}

	p := c.field.Modulus()
	for i := 0; i < RandomSearchLimit; i++ {
		v, err := below(p)
		if err != nil {
			return nil, err
		}
		ps, err := c.pointsAt(c.field.FromInt(v))
		if err != nil {
			return nil, err
		}
		if len(ps) == 0 {
			continue
		}
		sign, err := below(big.NewInt(2))
		if err != nil {
			return nil, err
		}
		return ps[int(sign.Int64())%len(ps)], nil
	}
	return nil, fmt.Errorf("%w: no point after %d attempts", util.ErrNotFound, RandomSearchLimit)
}

// ElementFromString parses "(x, y)" with decimal or 0x-prefixed coordinates,
// or "O", "inf" or "infinity" for the point at infinity.
func (c *Curve) ElementFromString(s string) (*Point, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "o", "inf", "infinity":
		return c.Infinity(), nil
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%w: malformed point %q", util.ErrInvalidArgument, s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: malformed point %q", util.ErrInvalidArgument, s)
	}
	x, err := c.field.ElementFromString(parts[0])
	if err != nil {
		return nil, err
	}
	y, err := c.field.ElementFromString(parts[1])
	if err != nil {
		return nil, err
	}
	return c.point(x, y)
}

func (c *Curve) Combine(x, y *Point) *Point { return x.Combine(y) }

func (c *Curve) Invert(x *Point) (*Point, error) { return x.Invert(), nil }

func (c *Curve) RepetitionIdentity() *Point { return c.Infinity() }

func (c *Curve) RepetitionCombine(x, y *Point) *Point { return x.Combine(y) }

func (c *Curve) RepetitionInvert(x *Point) (*Point, error) { return x.Invert(), nil }

// HasOrder reports true: every point has a finite order.
func (c *Curve) HasOrder(*Point) bool { return true }

func (p *Point) check(q *Point) {
	if !p.curve.Equal(q.curve) {
		panic("incompatible groups")
	}
}

// Curve returns the curve owning p.
func (p *Point) Curve() *Curve { return p.curve }

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool { return p.x == nil }

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool { return p.IsInfinity() }

// X returns the x-coordinate, or nil for the point at infinity.
func (p *Point) X() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return p.x.Value()
}

// Y returns the y-coordinate, or nil for the point at infinity.
func (p *Point) Y() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return p.y.Value()
}

// Combine returns p + q.
func (p *Point) Combine(q *Point) *Point {
	p.check(q)
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	if p.x.Equal(q.x) && p.y.Equal(q.y.Negate()) {
		return p.curve.Infinity()
	}

	var num, den *ring.RingElement
	if p.x.Equal(q.x) {
		// tangent: (3x^2 + a) / 2y
		num = p.curve.field.FromInt64(3).Multiply(p.x).Multiply(p.x).Add(p.curve.a)
		den = p.y.Add(p.y)
	} else {
		// secant: (y2 - y1) / (x2 - x1)
		num = q.y.Subtract(p.y)
		den = q.x.Subtract(p.x)
	}
	s, err := num.Divide(den)
	if err != nil {
		// den is a non-zero field element once P + (-P) is excluded.
		panic(err)
	}
	x := s.Multiply(s).Subtract(p.x).Subtract(q.x)
	y := p.x.Subtract(x).Multiply(s).Subtract(p.y)
	return &Point{curve: p.curve, x: x, y: y}
}

// Double returns p + p.
func (p *Point) Double() *Point { return p.Combine(p) }

// Invert returns -p.
func (p *Point) Invert() *Point {
	if p.IsInfinity() {
		return p
	}
	return &Point{curve: p.curve, x: p.x, y: p.y.Negate()}
}

// Repeat returns n * p.
func (p *Point) Repeat(n *big.Int) *Point {
	res, _ := algebra.Repeat[*Point](p.curve, p, n)
	return res
}

// Order returns the order of p.
func (p *Point) Order() (*big.Int, error) {
	return algebra.OrderOf[*Point](p.curve, p)
}

// IsPrimitive reports whether p generates the whole curve.
func (p *Point) IsPrimitive() (bool, error) {
	return algebra.IsPrimitive[*Point](p.curve, p)
}

// Equal compares two points of the same curve. It panics if the curves
// differ.
func (p *Point) Equal(q *Point) bool {
	p.check(q)
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// StrictEqual reports whether q lies on the same curve and equals p.
func (p *Point) StrictEqual(q *Point) bool {
	return q != nil && p.curve.Equal(q.curve) && p.Equal(q)
}

func (p *Point) String() string { return p.Format(algebra.Raw) }

// Format writes "(x, y)" with coordinates in format f, or "O" at infinity.
func (p *Point) Format(f algebra.Format) string {
	if p.IsInfinity() {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.x.Format(f), p.y.Format(f))
}
