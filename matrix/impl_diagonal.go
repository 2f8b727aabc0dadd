// SPDX-License-Identifier: MIT

// Package matrix - Diagonal storage.
//
// Diagonal keeps only the n entries of the main diagonal. Reads off the
// diagonal return 0; writes off the diagonal are accepted only for 0, so the
// matrix can never silently lose structure.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxDiagAt  = "At"
	ctxDiagSet = "Set"
	ctxDiagNew = "NewDiagonal"
)

// Diagonal is an n×n matrix that stores only its main diagonal.
type Diagonal struct {
	d []float64 // main diagonal; len == n
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Diagonal)(nil)
	_ fmt.Stringer = (*Diagonal)(nil)
)

// NewDiagonal returns diag(d) holding a copy of d.
//
// Errors:
//   - ErrInvalidDimensions when d is empty.
//   - ErrNaNInf when an entry is not finite.
//
// Complexity: O(n).
func NewDiagonal(d []float64) (*Diagonal, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxDiagNew, ErrInvalidDimensions)
	}
	cp := make([]float64, len(d))
	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: entry %d: %w", ctxDiagNew, i, ErrNaNInf)
		}
		cp[i] = v
	}

	return &Diagonal{d: cp}, nil
}

func diagonalErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Diagonal.%s(%d,%d): %w", method, row, col, err)
}

// Rows returns n.
func (m *Diagonal) Rows() int { return len(m.d) }

// Cols returns n.
func (m *Diagonal) Cols() int { return len(m.d) }

// At returns d[i] on the diagonal and 0 elsewhere.
func (m *Diagonal) At(i, j int) (float64, error) {
	n := len(m.d)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, diagonalErrorf(ctxDiagAt, i, j, ErrOutOfRange)
	}
	if i != j {
		return 0, nil
	}

	return m.d[i], nil
}

// Set writes v on the diagonal. Off the diagonal only v == 0 is accepted.
//
// Errors:
//   - ErrOutOfRange, ErrNaNInf, ErrOffDiagonal.
func (m *Diagonal) Set(i, j int, v float64) error {
	n := len(m.d)
	if i < 0 || i >= n || j < 0 || j >= n {
		return diagonalErrorf(ctxDiagSet, i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return diagonalErrorf(ctxDiagSet, i, j, ErrNaNInf)
	}
	if i != j {
		if v != 0 {
			return diagonalErrorf(ctxDiagSet, i, j, ErrOffDiagonal)
		}
		return nil
	}
	m.d[i] = v

	return nil
}

// Clone returns a deep copy.
func (m *Diagonal) Clone() Matrix {
	cp := make([]float64, len(m.d))
	copy(cp, m.d)

	return &Diagonal{d: cp}
}

// Diagonal returns a copy of the main diagonal.
func (m *Diagonal) Diagonal() []float64 {
	cp := make([]float64, len(m.d))
	copy(cp, m.d)

	return cp
}

// Dense materializes the matrix as an n×n *Dense.
// Complexity: O(n^2).
func (m *Diagonal) Dense() *Dense {
	n := len(m.d)
	out, _ := NewDense(n, n) // n > 0 is guaranteed by NewDiagonal
	for i, v := range m.d {
		out.data[i*n+i] = v
	}

	return out
}

// String renders the matrix in the same row format as Dense.
func (m *Diagonal) String() string {
	var b strings.Builder
	n := len(m.d)
	var i, j int
	for i = 0; i < n; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < n; j++ {
			if i == j {
				b.WriteString(fmt.Sprintf("%g", m.d[i]))
			} else {
				b.WriteString("0")
			}
			if j+1 < n {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
