// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Statistical transforms over symmetric positive semi-definite matrices,
//     built from the canonical kernels.
//
// Exposed API:
//   - Correlation(cov)      -> corr  // Cov[i,j] / (σ_i·σ_j); degenerate σ=0 → zeroed row/column
//   - StandardDeviations(cov) -> σ   // √Cov[i,i]
//
// Determinism & Performance:
//   - Fixed i→j traversal; the diagonal is exactly 1 for non-degenerate entries.

package matrix

import (
	"fmt"
	"math"
)

const (
	opCorrelation = "Correlation"
	opStdDevs     = "StandardDeviations"
)

// StandardDeviations returns √diag(cov).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf when a
//     diagonal entry is negative or not finite.
//
// Complexity: O(n).
func StandardDeviations(cov Matrix) ([]float64, error) {
	d, err := Diag(cov)
	if err != nil {
		return nil, matrixErrorf(opStdDevs, err)
	}
	for i, v := range d {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opStdDevs, fmt.Errorf("variance[%d]=%g: %w", i, v, ErrNaNInf))
		}
		d[i] = math.Sqrt(v)
	}

	return d, nil
}

// Correlation converts a covariance matrix into the correlation matrix
// Corr[i,j] = Cov[i,j] / (σ_i·σ_j).
//
// Implementation:
//   - Stage 1: σ = StandardDeviations(cov) after a symmetry check at DefaultEpsilon.
//   - Stage 2: invσ with 0 for degenerate σ == 0; Corr = diag(invσ)·Cov·diag(invσ).
//   - Stage 3: pin the diagonal of non-degenerate rows to exactly 1.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func Correlation(cov Matrix) (*Dense, error) {
	if err := ValidateSymmetric(cov, DefaultEpsilon); err != nil {
		return nil, matrixErrorf(opCorrelation, err)
	}
	sd, err := StandardDeviations(cov)
	if err != nil {
		return nil, matrixErrorf(opCorrelation, err)
	}
	inv := make([]float64, len(sd))
	for i, s := range sd {
		if s > 0 {
			inv[i] = 1 / s
		}
	}

	src, err := asDense(cov)
	if err != nil {
		return nil, matrixErrorf(opCorrelation, err)
	}
	n := src.r
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCorrelation, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			out.data[i*n+j] = src.data[i*n+j] * inv[i] * inv[j]
		}
		if inv[i] > 0 {
			out.data[i*n+i] = 1
		}
	}

	return out, nil
}
