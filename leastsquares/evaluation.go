// SPDX-License-Identifier: MIT

// Package leastsquares - Evaluation.
//
// An Evaluation pins the model output at one point. Every Compute method is a
// pure function of that output, the problem's target and the weight square
// root S; nothing is cached and nothing is mutated.

package leastsquares

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lsq/matrix"
)

// Evaluation is the model's value and Jacobian at one point together with the
// problem data needed to derive weighted quantities from them.
type Evaluation struct {
	point    []float64
	value    []float64     // raw model value, length N expected
	jacobian matrix.Matrix // raw model Jacobian, N×P expected
	target   []float64     // shared with the Problem, read-only
	weight   *weighting    // shared with the Problem, read-only
	params   int
}

// Point returns a copy of the point this evaluation was computed at.
func (e *Evaluation) Point() []float64 { return cloneVec(e.point) }

// ComputeResiduals returns S·(target − value).
//
// Errors:
//   - ErrDimensionMismatch when the model value is not of length N.
func (e *Evaluation) ComputeResiduals() ([]float64, error) {
	if err := matrix.ValidateVecLen(e.value, len(e.target)); err != nil {
		return nil, lsqErrorf(opResiduals, err)
	}
	raw := make([]float64, len(e.target))
	floats.SubTo(raw, e.target, e.value)
	r, err := e.weight.applyVec(raw)
	if err != nil {
		return nil, lsqErrorf(opResiduals, err)
	}

	return r, nil
}

// ComputeValue returns S·value, the weighted model value.
//
// Errors:
//   - ErrDimensionMismatch when the model value is not of length N.
func (e *Evaluation) ComputeValue() ([]float64, error) {
	if err := matrix.ValidateVecLen(e.value, len(e.target)); err != nil {
		return nil, lsqErrorf(opValue, err)
	}
	v, err := e.weight.applyVec(e.value)
	if err != nil {
		return nil, lsqErrorf(opValue, err)
	}

	return v, nil
}

// ComputeJacobian returns S·J, the weighted Jacobian.
//
// Errors:
//   - ErrDimensionMismatch when J is nil or not N×P.
func (e *Evaluation) ComputeJacobian() (matrix.Matrix, error) {
	if err := matrix.ValidateShape(e.jacobian, len(e.target), e.params); err != nil {
		if errors.Is(err, matrix.ErrNilMatrix) {
			err = fmt.Errorf("nil Jacobian: %w", ErrDimensionMismatch)
		}
		return nil, lsqErrorf(opJacobian, err)
	}
	j, err := e.weight.applyMat(e.jacobian)
	if err != nil {
		return nil, lsqErrorf(opJacobian, err)
	}

	return j, nil
}

// ComputeCost returns the Euclidean norm of the weighted residuals,
// equivalently √(rᵗ·W·r) for the raw residual r.
func (e *Evaluation) ComputeCost() (float64, error) {
	r, err := e.ComputeResiduals()
	if err != nil {
		return 0, lsqErrorf(opCost, err)
	}

	return floats.Norm(r, 2), nil
}

// ComputeRMS returns cost/√N.
//
// Errors:
//   - ErrNoObservations for N == 0, plus anything ComputeCost reports.
func (e *Evaluation) ComputeRMS() (float64, error) {
	n := len(e.target)
	if n == 0 {
		return 0, lsqErrorf(opRMS, ErrNoObservations)
	}
	cost, err := e.ComputeCost()
	if err != nil {
		return 0, lsqErrorf(opRMS, err)
	}

	return cost / math.Sqrt(float64(n)), nil
}

// ComputeChiSquare returns the weighted sum of squared residuals, cost².
func (e *Evaluation) ComputeChiSquare() (float64, error) {
	r, err := e.ComputeResiduals()
	if err != nil {
		return 0, lsqErrorf(opChiSquare, err)
	}

	return floats.Dot(r, r), nil
}

// ComputeReducedChiSquare returns cost²/(N−P), the usual scale for the
// covariance when the weights are only known up to a factor.
//
// Errors:
//   - ErrNoDegreesOfFreedom when N <= P.
func (e *Evaluation) ComputeReducedChiSquare() (float64, error) {
	dof := len(e.target) - e.params
	if dof <= 0 {
		return 0, lsqErrorf(opReducedChi2, fmt.Errorf("N=%d, P=%d: %w", len(e.target), e.params, ErrNoDegreesOfFreedom))
	}
	chi2, err := e.ComputeChiSquare()
	if err != nil {
		return 0, lsqErrorf(opReducedChi2, err)
	}

	return chi2 / float64(dof), nil
}

// ComputeCovariances returns (Jwᵗ·Jw)⁻¹ for the weighted Jacobian Jw.
//
// Implementation:
//   - Stage 1: Jw = ComputeJacobian(); form the P×P normal matrix Jwᵗ·Jw.
//   - Stage 2: Householder QR bound to threshold; any |R_ii| <= threshold is singular.
//   - Stage 3: invert through the factorization.
//
// Errors:
//   - ErrSingular, matrix.ErrBadThreshold (negative or non-finite threshold),
//     ErrDimensionMismatch from ComputeJacobian.
//
// Complexity:
//   - Time O(N·P² + P³), Space O(N·P + P²).
func (e *Evaluation) ComputeCovariances(threshold float64) (matrix.Matrix, error) {
	j, err := e.ComputeJacobian()
	if err != nil {
		return nil, lsqErrorf(opCovariances, err)
	}
	jt, err := matrix.Transpose(j)
	if err != nil {
		return nil, lsqErrorf(opCovariances, err)
	}
	normal, err := matrix.Mul(jt, j)
	if err != nil {
		return nil, lsqErrorf(opCovariances, err)
	}
	qr, err := matrix.NewQR(normal, threshold)
	if err != nil {
		return nil, lsqErrorf(opCovariances, err)
	}
	inv, err := qr.Inverse()
	if err != nil {
		return nil, lsqErrorf(opCovariances, err)
	}

	return inv, nil
}

// ComputeSigma returns √diag(ComputeCovariances(threshold)), the standard
// deviation of each parameter.
func (e *Evaluation) ComputeSigma(threshold float64) ([]float64, error) {
	cov, err := e.ComputeCovariances(threshold)
	if err != nil {
		return nil, lsqErrorf(opSigma, err)
	}
	sigma, err := matrix.StandardDeviations(cov)
	if err != nil {
		return nil, lsqErrorf(opSigma, err)
	}

	return sigma, nil
}

// ComputeCorrelations returns the parameter correlation matrix derived from
// ComputeCovariances(threshold). Off-diagonal entries near ±1 flag
// parameters the data cannot tell apart.
func (e *Evaluation) ComputeCorrelations(threshold float64) (matrix.Matrix, error) {
	cov, err := e.ComputeCovariances(threshold)
	if err != nil {
		return nil, lsqErrorf(opCorrelations, err)
	}
	corr, err := matrix.Correlation(cov)
	if err != nil {
		return nil, lsqErrorf(opCorrelations, err)
	}

	return corr, nil
}
