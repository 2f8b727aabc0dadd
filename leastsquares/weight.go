// SPDX-License-Identifier: MIT

// Package leastsquares - weighting variant.
//
// The weight square root S is resolved once at Build time into one of two
// shapes. Diagonal weights keep only the row factors and apply through row
// scaling; everything else keeps S as a matrix and applies through Mul.

package leastsquares

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lsq/matrix"
)

// WeightKind names the resolved representation of the weight square root.
type WeightKind int

const (
	// WeightDiagonal row-scales by the elementwise square root of diag(W).
	WeightDiagonal WeightKind = iota
	// WeightDense multiplies by the full factor S.
	WeightDense
)

// String implements fmt.Stringer.
func (k WeightKind) String() string {
	switch k {
	case WeightDiagonal:
		return "diagonal"
	case WeightDense:
		return "dense"
	default:
		return fmt.Sprintf("WeightKind(%d)", int(k))
	}
}

// weighting is the resolved S. Exactly one of factors / sqrt is populated,
// selected by kind. It is read-only after construction and shared by every
// Evaluation of a Problem.
type weighting struct {
	kind    WeightKind
	factors []float64     // WeightDiagonal: S = diag(factors)
	sqrt    matrix.Matrix // WeightDense: S, N×N
}

// identityWeighting returns S = I for n observations.
func identityWeighting(n int) *weighting {
	f := make([]float64, n)
	for i := range f {
		f[i] = 1
	}

	return &weighting{kind: WeightDiagonal, factors: f}
}

// newWeighting resolves S from either the weight W or a caller-supplied
// square root. Both nil means identity.
//
// Implementation:
//   - W diagonal: factors are √W_ii; a negative W_ii is ErrNonPositiveWeight.
//   - W dense: S = Lᵗ from the Cholesky factorization W = L·Lᵗ.
//   - S supplied: diagonal S keeps its diagonal as factors, otherwise a copy is kept.
func newWeighting(weight, weightSqrt matrix.Matrix, n int) (*weighting, error) {
	hasWeight := matrix.ValidateNotNil(weight) == nil
	hasSqrt := matrix.ValidateNotNil(weightSqrt) == nil
	switch {
	case hasWeight && hasSqrt:
		return nil, ErrConflictingWeights
	case hasWeight:
		return weightingFromWeight(weight, n)
	case hasSqrt:
		return weightingFromSqrt(weightSqrt, n)
	default:
		return identityWeighting(n), nil
	}
}

func weightingFromWeight(w matrix.Matrix, n int) (*weighting, error) {
	if err := matrix.ValidateShape(w, n, n); err != nil {
		return nil, err
	}
	diagonal, err := matrix.IsZeroOffDiagonal(w, 0)
	if err != nil {
		return nil, err
	}
	if !diagonal {
		chol, err := matrix.NewCholesky(w)
		if err != nil {
			return nil, err
		}

		return &weighting{kind: WeightDense, sqrt: chol.LT()}, nil
	}

	d, err := matrix.Diag(w)
	if err != nil {
		return nil, err
	}
	for i, v := range d {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("W[%d,%d]=%g: %w", i, i, v, ErrNonPositiveWeight)
		}
		d[i] = math.Sqrt(v)
	}

	return &weighting{kind: WeightDiagonal, factors: d}, nil
}

func weightingFromSqrt(s matrix.Matrix, n int) (*weighting, error) {
	if err := matrix.ValidateShape(s, n, n); err != nil {
		return nil, err
	}
	diagonal, err := matrix.IsZeroOffDiagonal(s, 0)
	if err != nil {
		return nil, err
	}
	if diagonal {
		d, err := matrix.Diag(s)
		if err != nil {
			return nil, err
		}
		for i, v := range d {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("S[%d,%d]=%g: %w", i, i, v, matrix.ErrNaNInf)
			}
		}

		return &weighting{kind: WeightDiagonal, factors: d}, nil
	}

	return &weighting{kind: WeightDense, sqrt: s.Clone()}, nil
}

// applyVec returns S·x as a fresh slice.
func (w *weighting) applyVec(x []float64) ([]float64, error) {
	if w.kind == WeightDense {
		return matrix.MatVec(w.sqrt, x)
	}
	if err := matrix.ValidateVecLen(x, len(w.factors)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, f := range w.factors {
		out[i] = f * x[i]
	}

	return out, nil
}

// applyMat returns S·m as a fresh matrix.
func (w *weighting) applyMat(m matrix.Matrix) (matrix.Matrix, error) {
	if w.kind == WeightDense {
		return matrix.Mul(w.sqrt, m)
	}

	return matrix.ScaleRows(m, w.factors)
}

// asMatrix materializes S.
func (w *weighting) asMatrix() matrix.Matrix {
	if w.kind == WeightDense {
		return w.sqrt.Clone()
	}
	d, err := matrix.NewDiagonal(w.factors)
	if err != nil {
		// unreachable: factors are validated finite and non-empty in newWeighting
		panic(err)
	}

	return d
}
