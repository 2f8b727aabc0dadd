// SPDX-License-Identifier: MIT

package leastsquares

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lsq/matrix"
)

// Config holds the data that defines a least-squares problem. It is a plain
// value; Build validates it once and produces an immutable Problem.
//
//	Start      – initial parameter vector (length P > 0).
//	Target     – observed values (length N > 0).
//	Weight     – N×N weight matrix W; nil means identity.
//	WeightSqrt – N×N factor S with W = Sᵗ·S; mutually exclusive with Weight.
//	Model      – value and Jacobian of the model.
type Config struct {
	Start      []float64
	Target     []float64
	Weight     matrix.Matrix
	WeightSqrt matrix.Matrix
	Model      ModelFunc
}

// Build validates the configuration and returns a Problem.
//
// Implementation:
//   - Stage 1: reject a nil model, empty target, empty start and non-finite entries.
//   - Stage 2: resolve the weight square root (diagonal, Cholesky or supplied).
//   - Stage 3: copy start and target so later caller mutations cannot leak in.
//
// Errors:
//   - ErrNilModel, ErrNoObservations, ErrNoParameters, ErrConflictingWeights,
//     ErrNonPositiveWeight, ErrDimensionMismatch, matrix.ErrNaNInf,
//     matrix.ErrAsymmetry and matrix.ErrNotPositiveDefinite from Cholesky.
func (c Config) Build(opts ...Option) (*Problem, error) {
	if c.Model == nil {
		return nil, lsqErrorf(opBuild, ErrNilModel)
	}
	n, p := len(c.Target), len(c.Start)
	if n == 0 {
		return nil, lsqErrorf(opBuild, ErrNoObservations)
	}
	if p == 0 {
		return nil, lsqErrorf(opBuild, ErrNoParameters)
	}
	if err := validateFinite("target", c.Target); err != nil {
		return nil, lsqErrorf(opBuild, err)
	}
	if err := validateFinite("start", c.Start); err != nil {
		return nil, lsqErrorf(opBuild, err)
	}

	w, err := newWeighting(c.Weight, c.WeightSqrt, n)
	if err != nil {
		return nil, lsqErrorf(opBuild, err)
	}

	o := gatherOptions(opts...)
	o.Logger.Debug("least-squares problem built",
		"observations", n,
		"parameters", p,
		"weight", w.kind.String(),
		"max_evaluations", o.MaxEvaluations,
	)

	return &Problem{
		start:  cloneVec(c.Start),
		target: cloneVec(c.Target),
		weight: w,
		model:  c.Model,
		opts:   o,
	}, nil
}

func validateFinite(name string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d]=%g: %w", name, i, x, matrix.ErrNaNInf)
		}
	}

	return nil
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
