// SPDX-License-Identifier: MIT

// Package matrix - Cholesky factorization A = L·Lᵗ for symmetric
// positive-definite input.

package matrix

import (
	"fmt"
	"math"
)

const opCholesky = "Cholesky"

// Cholesky holds the lower-triangular factor L with A = L·Lᵗ.
type Cholesky struct {
	l *Dense
}

// NewCholesky factorizes a symmetric positive-definite matrix.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(a, DefaultEpsilon).
//   - Stage 2: column-by-column Cholesky–Banachiewicz; every pivot must be > 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func NewCholesky(a Matrix) (*Cholesky, error) {
	if err := ValidateSymmetric(a, DefaultEpsilon); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	src, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := src.r
	l, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var (
		i, j, k  int
		sum, ljj float64
	)
	for j = 0; j < n; j++ {
		sum = src.data[j*n+j]
		for k = 0; k < j; k++ {
			sum -= l.data[j*n+k] * l.data[j*n+k]
		}
		if !(sum > 0) { // also rejects NaN
			return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d: %w", j, ErrNotPositiveDefinite))
		}
		ljj = math.Sqrt(sum)
		l.data[j*n+j] = ljj
		for i = j + 1; i < n; i++ {
			sum = src.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= l.data[i*n+k] * l.data[j*n+k]
			}
			l.data[i*n+j] = sum / ljj
		}
	}

	return &Cholesky{l: l}, nil
}

// L returns a copy of the lower-triangular factor.
func (c *Cholesky) L() *Dense { return c.l.Clone().(*Dense) }

// LT returns Lᵗ, the upper-triangular factor with A = (Lᵗ)ᵗ·Lᵗ.
func (c *Cholesky) LT() *Dense {
	t, _ := Transpose(c.l) // c.l is a valid non-nil Dense
	return t.(*Dense)
}
