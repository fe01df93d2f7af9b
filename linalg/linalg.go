// Package linalg solves linear systems over finite rings by Gaussian
// elimination. Pivots are chosen by invertibility since ring elements carry
// no ordering.
package linalg

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/util"
)

var (
	// ErrSingularMatrix reports a column without an invertible pivot.
	ErrSingularMatrix = fmt.Errorf("%w: singular matrix", util.ErrDomain)
	// ErrInconsistent reports an overdetermined system whose surplus
	// equations contradict the solution.
	ErrInconsistent = fmt.Errorf("%w: inconsistent system", util.ErrDomain)
	// ErrDimension reports an empty, ragged or mismatched system.
	ErrDimension = fmt.Errorf("%w: dimension mismatch", util.ErrValidation)
	// ErrUnderdetermined reports a system with fewer equations than unknowns.
	ErrUnderdetermined = fmt.Errorf("%w: underdetermined system", util.ErrValidation)
)

// Ring is the arithmetic elimination needs.
type Ring[E algebra.Element[E]] interface {
	Zero() E
	One() E
	Add(x, y E) E
	Subtract(x, y E) E
	Multiply(x, y E) E
	Invert(x E) (E, error)
}

type config struct {
	log *log.Entry
}

// Option configures an elimination.
type Option func(*config)

// WithDebug logs every pivot step to l at debug level.
func WithDebug(l *log.Entry) Option {
	return func(c *config) { c.log = l }
}

func (c *config) debugf(format string, args ...any) {
	if c.log != nil {
		c.log.Debugf(format, args...)
	}
}

// shape returns the column count of a rectangular, non-empty matrix.
func shape[E any](matrix [][]E) (int, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return 0, fmt.Errorf("%w: empty matrix", ErrDimension)
	}
	cols := len(matrix[0])
	for i, row := range matrix {
		if len(row) != cols {
			return 0, fmt.Errorf("%w: row %d has %d entries, want %d", ErrDimension, i, len(row), cols)
		}
	}
	return cols, nil
}

// augment copies matrix with extra appended to every row.
func augment[E any](matrix [][]E, extra func(i int) []E) [][]E {
	res := make([][]E, len(matrix))
	for i, row := range matrix {
		tail := extra(i)
		res[i] = append(append(make([]E, 0, len(row)+len(tail)), row...), tail...)
	}
	return res
}

// forward reduces the first cols columns of m to upper triangular form with
// a unit diagonal.
func forward[E algebra.Element[E]](r Ring[E], m [][]E, cols int, cfg *config) error {
	for c := 0; c < cols; c++ {
		pivot := -1
		var inv E
		for i := c; i < len(m); i++ {
			v, err := r.Invert(m[i][c])
			if err == nil {
				pivot, inv = i, v
				break
			}
		}
		if pivot < 0 {
			cfg.debugf("column %d: no invertible pivot", c)
			return fmt.Errorf("%w: no invertible pivot in column %d", ErrSingularMatrix, c)
		}
		if pivot != c {
			cfg.debugf("column %d: swapping rows %d and %d", c, c, pivot)
			m[c], m[pivot] = m[pivot], m[c]
		}
		cfg.debugf("column %d: pivot %v", c, m[c][c])

		for j := c; j < len(m[c]); j++ {
			m[c][j] = r.Multiply(m[c][j], inv)
		}
		for i := c + 1; i < len(m); i++ {
			f := m[i][c]
			for j := c; j < len(m[i]); j++ {
				m[i][j] = r.Subtract(m[i][j], r.Multiply(f, m[c][j]))
			}
		}
	}
	return nil
}

// backward clears the entries above the unit diagonal.
func backward[E algebra.Element[E]](r Ring[E], m [][]E, cols int) {
	for c := cols - 1; c > 0; c-- {
		for i := 0; i < c; i++ {
			f := m[i][c]
			for j := c; j < len(m[i]); j++ {
				m[i][j] = r.Subtract(m[i][j], r.Multiply(f, m[c][j]))
			}
		}
	}
}

// Solve returns x with matrix * x = vector. The matrix needs at least as many
// rows as columns; surplus rows must reduce to 0 = 0.
func Solve[E algebra.Element[E]](r Ring[E], matrix [][]E, vector []E, opts ...Option) ([]E, error) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrDimension)
	}
	if len(matrix) != len(vector) {
		return nil, fmt.Errorf("%w: %d rows, %d constants", ErrDimension, len(matrix), len(vector))
	}
	cols, err := shape(matrix)
	if err != nil {
		return nil, err
	}
	if len(matrix) < cols {
		return nil, fmt.Errorf("%w: %d equations, %d unknowns", ErrUnderdetermined, len(matrix), cols)
	}

	m := augment(matrix, func(i int) []E { return []E{vector[i]} })
	if err := forward(r, m, cols, cfg); err != nil {
		return nil, err
	}
	zero := r.Zero()
	for i := cols; i < len(m); i++ {
		if !m[i][cols].Equal(zero) {
			return nil, fmt.Errorf("%w: equation %d reduces to 0 = %v", ErrInconsistent, i, m[i][cols])
		}
	}
	backward(r, m, cols)

	x := make([]E, cols)
	for i := range x {
		x[i] = m[i][cols]
	}
	return x, nil
}

// IsInvertible reports whether matrix is square and invertible. Only the
// forward pass runs, and it stops at the first column without a pivot.
func IsInvertible[E algebra.Element[E]](r Ring[E], matrix [][]E) bool {
	cols, err := shape(matrix)
	if err != nil || cols != len(matrix) {
		return false
	}
	m := augment(matrix, func(int) []E { return nil })
	return forward(r, m, cols, &config{}) == nil
}

// Inverse returns the inverse of a square matrix by Gauss-Jordan
// elimination of [A | I].
func Inverse[E algebra.Element[E]](r Ring[E], matrix [][]E, opts ...Option) ([][]E, error) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	n, err := shape(matrix)
	if err != nil {
		return nil, err
	}
	if n != len(matrix) {
		return nil, fmt.Errorf("%w: %dx%d matrix is not square", ErrDimension, len(matrix), n)
	}

	m := augment(matrix, func(i int) []E {
		row := make([]E, n)
		for j := range row {
			row[j] = r.Zero()
		}
		row[i] = r.One()
		return row
	})
	if err := forward(r, m, n, cfg); err != nil {
		return nil, err
	}
	backward(r, m, n)

	inv := make([][]E, n)
	for i := range inv {
		inv[i] = m[i][n:]
	}
	return inv, nil
}

// Apply returns the product matrix * vector.
func Apply[E algebra.Element[E]](r Ring[E], matrix [][]E, vector []E) ([]E, error) {
	cols, err := shape(matrix)
	if err != nil {
		return nil, err
	}
	if cols != len(vector) {
		return nil, fmt.Errorf("%w: %d columns, vector of %d", ErrDimension, cols, len(vector))
	}
	res := make([]E, len(matrix))
	for i, row := range matrix {
		acc := r.Zero()
		for j, v := range row {
			acc = r.Add(acc, r.Multiply(v, vector[j]))
		}
		res[i] = acc
	}
	return res, nil
}
