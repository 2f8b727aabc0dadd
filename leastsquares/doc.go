// SPDX-License-Identifier: MIT

// Package leastsquares models a weighted non-linear least-squares problem and
// the quantities an optimizer derives from one evaluation of it.
//
// 🚀 What is in here?
//
//	Problem    — immutable bundle of start point, target vector, weighting and
//	             model function, built once from a Config.
//	Evaluation — the model's value and Jacobian at one point, plus everything
//	             derived from them: weighted residuals, weighted Jacobian,
//	             cost, RMS, covariance and parameter sigma.
//
// ✨ Weighting:
//
//	Given the weight matrix W = L·Lᵗ, every derived quantity funnels through
//	the single factor S = Lᵗ:
//
//	  residuals = S·(target − value)
//	  jacobian  = S·J
//	  value     = S·value
//	  cost      = ‖residuals‖₂           (cost² = rᵗ·W·r)
//	  rms       = cost / √N
//	  cov       = (jacobianᵗ·jacobian)⁻¹ (QR with caller threshold)
//	  sigma_i   = √cov_ii
//
//	Diagonal weights use the elementwise square root (row scaling); dense
//	weights use the Cholesky factor. The choice is made once at Build time.
//
// ⚙️ Usage:
//
//	problem, err := leastsquares.Config{
//	    Start:  []float64{1, 1},
//	    Target: observed,
//	    Weight: weights, // nil means identity
//	    Model:  model,
//	}.Build(leastsquares.WithMaxEvaluations(1000))
//
//	ev, err := problem.Evaluate(problem.Start())
//	cost, err := ev.ComputeCost()
//	sigma, err := ev.ComputeSigma(1e-14)
//
// Concurrency:
//
//	A Problem is safe for concurrent Evaluate calls; the only shared mutable
//	state is the atomic evaluation counter. Each Evaluation is independent
//	and immutable.
package leastsquares
