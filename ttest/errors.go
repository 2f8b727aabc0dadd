// SPDX-License-Identifier: MIT

package ttest

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned for a sample (or Summary) with fewer than two observations.
	ErrInsufficientData = errors.New("ttest: need at least two observations")

	// ErrLengthMismatch is returned by paired tests when the samples differ in length.
	ErrLengthMismatch = errors.New("ttest: paired samples differ in length")

	// ErrAlphaOutOfRange is returned when alpha is not in (0, 0.5).
	ErrAlphaOutOfRange = errors.New("ttest: alpha must be in (0, 0.5)")

	// ErrInvalidSummary is returned for a Summary with a negative or non-finite variance or a non-finite mean.
	ErrInvalidSummary = errors.New("ttest: invalid summary statistics")

	// ErrConvergence is returned when the t distribution could not be evaluated.
	ErrConvergence = errors.New("ttest: distribution evaluation did not converge")
)

// ttestErrorf wraps err with an operation tag.
func ttestErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
