// SPDX-License-Identifier: MIT

// Package matrix - Householder QR with a caller-supplied singularity threshold.
//
// Purpose:
//   - Factorize an m×n matrix A (m ≥ n) as A = Q·R with Householder reflections.
//   - Let the caller decide when R is "too singular": the factorization is
//     refused for solving as soon as any |R[i,i]| <= threshold.
//
// Storage:
//   - qrt[j] holds column j of the working matrix (column-major). After the
//     factorization qrt[j][i] for i<j is R[i,j]; qrt[j][i] for i>=j is the
//     j-th Householder vector. R's diagonal lives separately in rDiag.
//   - rDiag[k] is exactly ∓‖A[k:,k]‖ (sign opposite to the pivot), never a
//     product of reflections, so thresholds close to a pivot compare against
//     the column norm itself.

package matrix

import (
	"fmt"
	"math"
)

const (
	opQR        = "QR"
	opQRSolve   = "QR.Solve"
	opQRInverse = "QR.Inverse"
)

// QR is a Householder QR factorization bound to a singularity threshold.
// A QR value is immutable after NewQR and safe for concurrent use.
type QR struct {
	m, n      int         // rows and columns of the factorized matrix
	qrt       [][]float64 // n columns of length m (see package notes)
	rDiag     []float64   // diagonal of R
	threshold float64     // |R[i,i]| <= threshold ⇒ singular
}

// NewQR factorizes a (m×n, m ≥ n) and binds the given singularity threshold.
//
// Implementation:
//   - Stage 1: validate input and threshold; copy A column-wise.
//   - Stage 2: for each minor k, compute the column norm, store rDiag[k],
//     build the reflector in place and apply it to the remaining columns.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (m < n), ErrBadThreshold.
//
// Complexity:
//   - Time O(m·n²), Space O(m·n).
func NewQR(a Matrix, threshold float64) (*QR, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opQR, err)
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return nil, matrixErrorf(opQR, ErrBadThreshold)
	}
	m, n := a.Rows(), a.Cols()
	if m < n {
		return nil, matrixErrorf(opQR, fmt.Errorf("%dx%d has more columns than rows: %w", m, n, ErrDimensionMismatch))
	}
	src, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opQR, err)
	}

	qrt := make([][]float64, n)
	var i, j int
	for j = 0; j < n; j++ {
		qrt[j] = make([]float64, m)
		for i = 0; i < m; i++ {
			qrt[j][i] = src.data[i*n+j]
		}
	}
	rDiag := make([]float64, n)

	var (
		minor, row int
		xNormSqr   float64 // ‖A[minor:,minor]‖²
		alpha      float64 // signed column norm, becomes R[minor,minor]
		dot        float64 // reflector applied to one column
	)
	for minor = 0; minor < n; minor++ {
		col := qrt[minor]
		xNormSqr = NormZero
		for row = minor; row < m; row++ {
			xNormSqr += col[row] * col[row]
		}
		alpha = math.Sqrt(xNormSqr)
		if col[minor] > 0 {
			alpha = -alpha
		}
		rDiag[minor] = alpha
		if alpha == 0 {
			continue // zero column
		}

		// v = x - alpha*e1; |v|² = -2*alpha*v[minor]
		col[minor] -= alpha
		for j = minor + 1; j < n; j++ {
			other := qrt[j]
			dot = ZeroSum
			for row = minor; row < m; row++ {
				dot -= other[row] * col[row]
			}
			dot /= alpha * col[minor]
			for row = minor; row < m; row++ {
				other[row] -= dot * col[row]
			}
		}
	}

	return &QR{m: m, n: n, qrt: qrt, rDiag: rDiag, threshold: threshold}, nil
}

// IsNonSingular reports whether every |R[i,i]| is finite and exceeds the
// threshold. An overflowed (±Inf) or NaN pivot counts as singular.
// Complexity: O(n).
func (qr *QR) IsNonSingular() bool {
	for _, d := range qr.rDiag {
		if math.IsNaN(d) || math.IsInf(d, 0) || math.Abs(d) <= qr.threshold {
			return false
		}
	}

	return true
}

// Threshold returns the singularity threshold bound at construction.
func (qr *QR) Threshold() float64 { return qr.threshold }

// RDiag returns a copy of the diagonal of R.
func (qr *QR) RDiag() []float64 {
	out := make([]float64, len(qr.rDiag))
	copy(out, qr.rDiag)

	return out
}

// R materializes the n×n upper-triangular factor.
// Complexity: O(n²).
func (qr *QR) R() *Dense {
	r, _ := NewDense(qr.n, qr.n) // n > 0 is guaranteed by the validated input
	var i, j int
	for i = 0; i < qr.n; i++ {
		r.data[i*qr.n+i] = qr.rDiag[i]
		for j = i + 1; j < qr.n; j++ {
			r.data[i*qr.n+j] = qr.qrt[j][i]
		}
	}

	return r
}

// Solve returns the least-squares solution X of A·X ≈ B (exact when A is square).
//
// Implementation:
//   - Stage 1: refuse when singular under the bound threshold.
//   - Stage 2: per column of B, apply Qᵀ through the stored reflectors, then
//     back-substitute against R.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (B.Rows() != m), ErrSingular.
//
// Complexity:
//   - Time O(k·m·n) for k right-hand sides, Space O(m + n·k).
func (qr *QR) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}
	if b.Rows() != qr.m {
		return nil, matrixErrorf(opQRSolve, ErrDimensionMismatch)
	}
	if !qr.IsNonSingular() {
		return nil, matrixErrorf(opQRSolve, ErrSingular)
	}
	rhs, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}

	return qr.solve(rhs), nil
}

// Inverse returns A⁻¹ for a square factorized matrix.
//
// Errors:
//   - ErrDimensionMismatch (non-square A), ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func (qr *QR) Inverse() (*Dense, error) {
	if qr.m != qr.n {
		return nil, matrixErrorf(opQRInverse, ErrDimensionMismatch)
	}
	if !qr.IsNonSingular() {
		return nil, matrixErrorf(opQRInverse, ErrSingular)
	}
	I, err := NewIdentity(qr.n)
	if err != nil {
		return nil, matrixErrorf(opQRInverse, err)
	}

	return qr.solve(I), nil
}

// solve runs the Qᵀ application and back substitution. The caller has
// already checked shape and singularity.
func (qr *QR) solve(b *Dense) *Dense {
	m, n, k := qr.m, qr.n, b.c
	x, _ := NewDense(n, k) // n, k > 0
	y := make([]float64, m)

	var (
		col, minor, row, i, j int
		dot, yj               float64
	)
	for col = 0; col < k; col++ {
		for row = 0; row < m; row++ {
			y[row] = b.data[row*k+col]
		}

		// y = Qᵀ·b
		for minor = 0; minor < n; minor++ {
			v := qr.qrt[minor]
			dot = ZeroSum
			for row = minor; row < m; row++ {
				dot += y[row] * v[row]
			}
			dot /= qr.rDiag[minor] * v[minor]
			for row = minor; row < m; row++ {
				y[row] += dot * v[row]
			}
		}

		// R·x = y (bottom-up)
		for j = n - 1; j >= 0; j-- {
			y[j] /= qr.rDiag[j]
			yj = y[j]
			x.data[j*k+col] = yj
			for i = 0; i < j; i++ {
				y[i] -= yj * qr.qrt[j][i]
			}
		}
	}

	return x
}
