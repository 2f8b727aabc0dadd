// SPDX-License-Identifier: MIT

package leastsquares

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/lsq/matrix"
)

// Problem is an immutable least-squares problem. The only mutable state is
// the evaluation counter, which is atomic; Evaluate may be called from many
// goroutines at once.
type Problem struct {
	start  []float64
	target []float64
	weight *weighting
	model  ModelFunc
	opts   Options

	evaluations atomic.Int64
}

// Start returns a copy of the initial parameter vector.
func (p *Problem) Start() []float64 { return cloneVec(p.start) }

// ObservationSize returns N, the number of observations.
func (p *Problem) ObservationSize() int { return len(p.target) }

// ParameterSize returns P, the number of parameters.
func (p *Problem) ParameterSize() int { return len(p.start) }

// Evaluations returns how many times Evaluate has been called, including
// calls rejected by the evaluation cap.
func (p *Problem) Evaluations() int { return int(p.evaluations.Load()) }

// WeightKind reports how the weight square root was resolved.
func (p *Problem) WeightKind() WeightKind { return p.weight.kind }

// WeightSqrt returns a copy of S, the N×N factor with W = Sᵗ·S.
func (p *Problem) WeightSqrt() matrix.Matrix { return p.weight.asMatrix() }

// Evaluate runs the model at point and wraps the raw result.
//
// Implementation:
//   - Stage 1: increment the counter; past the cap fail without running the model.
//   - Stage 2: check len(point) == P and run the model on a private copy.
//   - Stage 3: bump the optional metric and return the Evaluation. Shape
//     checks of the model output happen lazily in the Compute methods.
//
// Errors:
//   - ErrTooManyEvaluations, ErrDimensionMismatch, ErrModel (wrapping the
//     model's own error).
func (p *Problem) Evaluate(point []float64) (*Evaluation, error) {
	count := p.evaluations.Add(1)
	if limit := p.opts.MaxEvaluations; limit > 0 && count > int64(limit) {
		p.opts.Logger.Warn("evaluation limit exceeded", "max_evaluations", limit, "count", count)
		return nil, lsqErrorf(opEvaluate, fmt.Errorf("max %d: %w", limit, ErrTooManyEvaluations))
	}
	if err := matrix.ValidateVecLen(point, len(p.start)); err != nil {
		return nil, lsqErrorf(opEvaluate, err)
	}

	pt := cloneVec(point)
	value, jacobian, err := p.model(cloneVec(pt))
	if err != nil {
		return nil, lsqErrorf(opEvaluate, fmt.Errorf("%w: %w", ErrModel, err))
	}
	if p.opts.Counter != nil {
		p.opts.Counter.Inc()
	}
	p.opts.Logger.Debug("model evaluated", "count", count, "parameters", len(pt))

	return &Evaluation{
		point:    pt,
		value:    value,
		jacobian: jacobian,
		target:   p.target,
		weight:   p.weight,
		params:   len(p.start),
	}, nil
}
