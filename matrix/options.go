// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
package matrix

const (
	// DefaultEpsilon is the absolute tolerance used by structural checks
	// such as the symmetry test in NewCholesky.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on
	// construction and Set.
	DefaultValidateNaNInf = true
)

// Additive identities for accumulation loops.
const (
	// ZeroSum is the initial value for dot products and substitutions.
	ZeroSum = 0.0

	// NormZero is the initial value for squared-norm accumulation.
	NormZero = 0.0
)
