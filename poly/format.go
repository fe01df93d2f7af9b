package poly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/util"
)

const (
	// Variable is the indeterminate used by String and Parse.
	Variable = "x"
	// MaxDegree bounds the exponents accepted by Parse.
	MaxDegree = SearchLimit
)

func (p *Polynomial[E]) String() string {
	return p.Text(Variable)
}

// Text writes p in the indeterminate v, highest degree first, for example
// "x^2 + 3x + 1". Coefficients that contain spaces are parenthesized.
func (p *Polynomial[E]) Text(v string) string {
	if p.IsZero() {
		return p.field.Zero().String()
	}
	one := p.field.One()
	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if isZero(p.field, c) {
			continue
		}
		coeff := c.String()
		if strings.ContainsAny(coeff, " +") {
			coeff = "(" + coeff + ")"
		}
		switch {
		case i == 0:
			terms = append(terms, coeff)
		case c.Equal(one):
			terms = append(terms, v+power(i))
		default:
			terms = append(terms, coeff+v+power(i))
		}
	}
	return strings.Join(terms, " + ")
}

func power(i int) string {
	if i == 1 {
		return ""
	}
	return "^" + strconv.Itoa(i)
}

// Parse reads a polynomial in x written as a sum or difference of terms such
// as "3x^2", "x", "(t + 1)x" or "5". Coefficients are parsed by the field.
func Parse[E algebra.Element[E]](f Field[E], s string) (*Polynomial[E], error) {
	return ParseText(f, s, Variable)
}

// ParseText is Parse with the indeterminate v.
func ParseText[E algebra.Element[E]](f Field[E], s, v string) (*Polynomial[E], error) {
	terms, err := splitTerms(s)
	if err != nil {
		return nil, err
	}

	var coeffs []E
	for _, t := range terms {
		coeff, degree, err := parseTerm(f, t.text, v)
		if err != nil {
			return nil, err
		}
		if t.neg {
			coeff = f.Negate(coeff)
		}
		for len(coeffs) <= degree {
			coeffs = append(coeffs, f.Zero())
		}
		coeffs[degree] = f.Add(coeffs[degree], coeff)
	}
	return Trim(f, coeffs...), nil
}

// summand is a signed term of a parsed polynomial.
type summand struct {
	text string
	neg  bool
}

// splitTerms splits s on the plus and minus signs outside parentheses. A minus
// sign that opens a term negates it, as in "-x" or "x + -1".
func splitTerms(s string) ([]summand, error) {
	var terms []summand
	depth, start, neg := 0, 0, false
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced parentheses in %q", util.ErrInvalidArgument, s)
			}
		case '+', '-':
			if depth > 0 {
				continue
			}
			pending := strings.TrimSpace(s[start:i])
			if pending == "" {
				if r == '+' {
					return nil, fmt.Errorf("%w: empty term in %q", util.ErrInvalidArgument, s)
				}
				neg = !neg
				start = i + 1
				continue
			}
			terms = append(terms, summand{text: pending, neg: neg})
			start, neg = i+1, r == '-'
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced parentheses in %q", util.ErrInvalidArgument, s)
	}
	last := strings.TrimSpace(s[start:])
	if last == "" {
		return nil, fmt.Errorf("%w: empty term in %q", util.ErrInvalidArgument, s)
	}
	return append(terms, summand{text: last, neg: neg}), nil
}

func parseTerm[E algebra.Element[E]](f Field[E], term, v string) (E, int, error) {
	coeff, degree := term, 0

	// The indeterminate is the last occurrence of v followed by nothing or an
	// exponent, which keeps hexadecimal coefficients such as 0xa intact.
	if i := strings.LastIndex(term, v); i >= 0 {
		rest := term[i+len(v):]
		switch {
		case rest == "":
			coeff, degree = term[:i], 1
		case strings.HasPrefix(rest, "^"):
			d, err := strconv.Atoi(rest[1:])
			if err != nil || d < 0 {
				var zero E
				return zero, 0, fmt.Errorf("%w: bad exponent in %q", util.ErrInvalidArgument, term)
			}
			if d > MaxDegree {
				var zero E
				return zero, 0, fmt.Errorf("%w: exponent of %q exceeds %d", util.ErrInvalidArgument, term, MaxDegree)
			}
			coeff, degree = term[:i], d
		}
	}

	coeff = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(coeff), "*"))
	if coeff == "" {
		return f.One(), degree, nil
	}
	if strings.HasPrefix(coeff, "(") && strings.HasSuffix(coeff, ")") {
		coeff = coeff[1 : len(coeff)-1]
	}
	c, err := f.ElementFromString(coeff)
	return c, degree, err
}
