// SPDX-License-Identifier: MIT
// Package leastsquares: sentinel error set.
// Match with errors.Is; call sites wrap with an operation tag via lsqErrorf.

package leastsquares

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lsq/matrix"
)

var (
	// ErrNilModel is returned by Build when no model function is configured.
	ErrNilModel = errors.New("leastsquares: model function is nil")

	// ErrNoObservations is returned when the target vector is empty.
	ErrNoObservations = errors.New("leastsquares: no observations")

	// ErrNoParameters is returned when the start point is empty.
	ErrNoParameters = errors.New("leastsquares: no parameters")

	// ErrConflictingWeights is returned when both Weight and WeightSqrt are set.
	ErrConflictingWeights = errors.New("leastsquares: weight and weight square root are mutually exclusive")

	// ErrNonPositiveWeight is returned for a negative entry of a diagonal weight.
	ErrNonPositiveWeight = errors.New("leastsquares: diagonal weight must be non-negative")

	// ErrTooManyEvaluations is returned by Evaluate once the configured
	// maximum number of model evaluations has been exceeded.
	ErrTooManyEvaluations = errors.New("leastsquares: maximal evaluation count exceeded")

	// ErrModel wraps an error reported by the model function itself.
	ErrModel = errors.New("leastsquares: model function failed")

	// ErrNoDegreesOfFreedom is returned by ComputeReducedChiSquare when N <= P.
	ErrNoDegreesOfFreedom = errors.New("leastsquares: no degrees of freedom")
)

// Shared with the matrix layer so callers need a single import to match them.
var (
	// ErrDimensionMismatch marks any declared-vs-actual length or shape disagreement.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrSingular marks a covariance inversion refused under the caller's threshold.
	ErrSingular = matrix.ErrSingular
)

// Operation tags.
const (
	opBuild        = "Build"
	opEvaluate     = "Evaluate"
	opResiduals    = "ComputeResiduals"
	opValue        = "ComputeValue"
	opJacobian     = "ComputeJacobian"
	opCost         = "ComputeCost"
	opRMS          = "ComputeRMS"
	opChiSquare    = "ComputeChiSquare"
	opReducedChi2  = "ComputeReducedChiSquare"
	opCovariances  = "ComputeCovariances"
	opSigma        = "ComputeSigma"
	opCorrelations = "ComputeCorrelations"
)

// lsqErrorf wraps err with an operation tag, preserving the sentinel via %w.
func lsqErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
