// SPDX-License-Identifier: MIT

// Package lsq is a toolkit for weighted non-linear least-squares problems
// and the statistics around them.
//
// 🚀 What is inside?
//
//	matrix/       — Matrix interface, Dense & Diagonal storage, validators,
//	                Add/Sub/Mul/Transpose/Scale/MatVec kernels, Householder QR
//	                with a caller-chosen singularity threshold, Cholesky
//	leastsquares/ — Problem (start, target, weight, model) and Evaluation
//	                (residuals, Jacobian, cost, RMS, covariance, sigma)
//	ttest/        — one-sample, paired and two-sample Student's t-tests
//
// ✨ Why?
//
//   - One evaluation, every derived quantity: residuals, weighted Jacobian,
//     cost, RMS, χ² and parameter uncertainties come from a single model call.
//   - Weighted the right way: every quantity goes through S = Lᵗ with W = L·Lᵗ;
//     a diagonal weight costs a row scaling, a dense one a Cholesky factor.
//   - Explicit numerics: covariance inversion refuses to run when any |R_ii|
//     of the QR factor is at or below the threshold you pass.
//   - Safe to share: a Problem is immutable apart from its atomic evaluation
//     counter, so optimizers may evaluate from many goroutines.
//
// Quick example:
//
//	problem, _ := leastsquares.Config{
//	    Start:  []float64{1, 1},
//	    Target: ys,
//	    Model:  model,
//	}.Build(leastsquares.WithMaxEvaluations(1000))
//
//	ev, _ := problem.Evaluate(problem.Start())
//	rms, _ := ev.ComputeRMS()
//	sigma, _ := ev.ComputeSigma(1e-12)
//
//	go get github.com/katalvlaran/lsq
package lsq
