// SPDX-License-Identifier: MIT

package ttest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the sufficient statistic of a sample for a t-test.
type Summary struct {
	Mean     float64 // arithmetic mean
	Variance float64 // unbiased sample variance (divisor N−1)
	N        int     // number of observations
}

// Summarize computes the Summary of a sample.
//
// Errors:
//   - ErrInsufficientData when len(sample) < 2.
func Summarize(sample []float64) (Summary, error) {
	if len(sample) < 2 {
		return Summary{}, ttestErrorf("Summarize", fmt.Errorf("n=%d: %w", len(sample), ErrInsufficientData))
	}
	mean, variance := stat.MeanVariance(sample, nil)

	return Summary{Mean: mean, Variance: variance, N: len(sample)}, nil
}

// validate checks the preconditions every FromSummary form shares.
func (s Summary) validate() error {
	if s.N < 2 {
		return fmt.Errorf("n=%d: %w", s.N, ErrInsufficientData)
	}
	if math.IsNaN(s.Mean) || math.IsInf(s.Mean, 0) {
		return fmt.Errorf("mean=%g: %w", s.Mean, ErrInvalidSummary)
	}
	if !(s.Variance >= 0) || math.IsInf(s.Variance, 0) {
		return fmt.Errorf("variance=%g: %w", s.Variance, ErrInvalidSummary)
	}

	return nil
}

// stdErr2 is the squared standard error of the mean, Var/N.
func (s Summary) stdErr2() float64 { return s.Variance / float64(s.N) }

// differences returns a − b elementwise.
func differences(a, b []float64) []float64 {
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)

	return d
}
