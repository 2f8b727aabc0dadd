// SPDX-License-Identifier: MIT

package ttest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Operation tags.
const (
	opT             = "T"
	opPairedT       = "PairedT"
	opTwoSampleT    = "TwoSampleT"
	opPValue        = "PValue"
	opPairedPValue  = "PairedPValue"
	opTwoSamplePVal = "TwoSamplePValue"
	opTest          = "Test"
	opPairedTest    = "PairedTest"
	opTwoSampleTest = "TwoSampleTest"
)

// statistic is a t value together with its degrees of freedom.
type statistic struct {
	t   float64
	dof float64
}

// oneSample computes t = (mean − mu) / √(Var/N) with N−1 degrees of freedom.
func oneSample(mu float64, s Summary) (statistic, error) {
	if err := s.validate(); err != nil {
		return statistic{}, err
	}

	return statistic{
		t:   (s.Mean - mu) / math.Sqrt(s.stdErr2()),
		dof: float64(s.N - 1),
	}, nil
}

// twoSample computes the two-sample t statistic.
//
// Pooled:  t = (m1 − m2) / √(Sp²·(1/n1 + 1/n2)),  dof = n1 + n2 − 2,
// where Sp² = ((n1−1)·v1 + (n2−1)·v2) / (n1 + n2 − 2).
//
// Welch:   t = (m1 − m2) / √(v1/n1 + v2/n2),
// dof = (v1/n1 + v2/n2)² / ((v1/n1)²/(n1−1) + (v2/n2)²/(n2−1)).
func twoSample(a, b Summary, equalVariances bool) (statistic, error) {
	if err := a.validate(); err != nil {
		return statistic{}, fmt.Errorf("first sample: %w", err)
	}
	if err := b.validate(); err != nil {
		return statistic{}, fmt.Errorf("second sample: %w", err)
	}
	n1, n2 := float64(a.N), float64(b.N)
	diff := a.Mean - b.Mean

	if equalVariances {
		dof := n1 + n2 - 2
		pooled := ((n1-1)*a.Variance + (n2-1)*b.Variance) / dof
		return statistic{t: diff / math.Sqrt(pooled*(1/n1+1/n2)), dof: dof}, nil
	}

	se1, se2 := a.stdErr2(), b.stdErr2()
	sum := se1 + se2
	if sum == 0 {
		// Both samples are constant: the Welch dof is 0/0, fall back to the pooled one.
		return statistic{t: diff / math.Sqrt(sum), dof: n1 + n2 - 2}, nil
	}

	return statistic{
		t:   diff / math.Sqrt(sum),
		dof: sum * sum / (se1*se1/(n1-1) + se2*se2/(n2-1)),
	}, nil
}

// paired reduces a paired test to a one-sample test of a − b against 0.
func paired(a, b []float64) (statistic, error) {
	if len(a) != len(b) {
		return statistic{}, fmt.Errorf("%d vs %d: %w", len(a), len(b), ErrLengthMismatch)
	}
	s, err := Summarize(differences(a, b))
	if err != nil {
		return statistic{}, err
	}

	return oneSample(0, s)
}

// pValue returns the two-tailed p-value 2·CDF(−|t|) of Student's t with dof
// degrees of freedom.
func (st statistic) pValue() (float64, error) {
	if math.IsNaN(st.t) || !(st.dof > 0) {
		return 0, fmt.Errorf("t=%g dof=%g: %w", st.t, st.dof, ErrConvergence)
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: st.dof}
	p := 2 * dist.CDF(-math.Abs(st.t))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("t=%g dof=%g: %w", st.t, st.dof, ErrConvergence)
	}

	return math.Min(p, 1), nil
}

// reject applies the decision rule p < alpha.
func (st statistic) reject(alpha float64) (bool, error) {
	if !(alpha > 0 && alpha < 0.5) {
		return false, fmt.Errorf("alpha=%g: %w", alpha, ErrAlphaOutOfRange)
	}
	p, err := st.pValue()
	if err != nil {
		return false, err
	}

	return p < alpha, nil
}

// T returns the one-sample t statistic of sample against the mean mu.
func T(mu float64, sample []float64) (float64, error) {
	s, err := Summarize(sample)
	if err != nil {
		return 0, ttestErrorf(opT, err)
	}

	return TFromSummary(mu, s)
}

// TFromSummary is T over a precomputed Summary.
func TFromSummary(mu float64, s Summary) (float64, error) {
	st, err := oneSample(mu, s)
	if err != nil {
		return 0, ttestErrorf(opT, err)
	}

	return st.t, nil
}

// PairedT returns the t statistic of the elementwise differences a − b
// against 0.
//
// Errors:
//   - ErrLengthMismatch, ErrInsufficientData.
func PairedT(a, b []float64) (float64, error) {
	st, err := paired(a, b)
	if err != nil {
		return 0, ttestErrorf(opPairedT, err)
	}

	return st.t, nil
}

// TwoSampleT returns the two-sample t statistic. equalVariances selects the
// pooled variance estimate; otherwise the Welch statistic is used.
func TwoSampleT(a, b []float64, equalVariances bool) (float64, error) {
	sa, sb, err := summarizeBoth(a, b)
	if err != nil {
		return 0, ttestErrorf(opTwoSampleT, err)
	}

	return TwoSampleTFromSummary(sa, sb, equalVariances)
}

// TwoSampleTFromSummary is TwoSampleT over precomputed Summaries.
func TwoSampleTFromSummary(a, b Summary, equalVariances bool) (float64, error) {
	st, err := twoSample(a, b, equalVariances)
	if err != nil {
		return 0, ttestErrorf(opTwoSampleT, err)
	}

	return st.t, nil
}

// PValue returns the two-tailed p-value of the one-sample test of sample
// against mu.
//
// Errors:
//   - ErrInsufficientData, ErrConvergence.
func PValue(mu float64, sample []float64) (float64, error) {
	s, err := Summarize(sample)
	if err != nil {
		return 0, ttestErrorf(opPValue, err)
	}

	return PValueFromSummary(mu, s)
}

// PValueFromSummary is PValue over a precomputed Summary.
func PValueFromSummary(mu float64, s Summary) (float64, error) {
	st, err := oneSample(mu, s)
	if err != nil {
		return 0, ttestErrorf(opPValue, err)
	}
	p, err := st.pValue()
	if err != nil {
		return 0, ttestErrorf(opPValue, err)
	}

	return p, nil
}

// PairedPValue returns the two-tailed p-value of the paired test.
func PairedPValue(a, b []float64) (float64, error) {
	st, err := paired(a, b)
	if err != nil {
		return 0, ttestErrorf(opPairedPValue, err)
	}
	p, err := st.pValue()
	if err != nil {
		return 0, ttestErrorf(opPairedPValue, err)
	}

	return p, nil
}

// TwoSamplePValue returns the two-tailed p-value of the two-sample test.
func TwoSamplePValue(a, b []float64, equalVariances bool) (float64, error) {
	sa, sb, err := summarizeBoth(a, b)
	if err != nil {
		return 0, ttestErrorf(opTwoSamplePVal, err)
	}

	return TwoSamplePValueFromSummary(sa, sb, equalVariances)
}

// TwoSamplePValueFromSummary is TwoSamplePValue over precomputed Summaries.
func TwoSamplePValueFromSummary(a, b Summary, equalVariances bool) (float64, error) {
	st, err := twoSample(a, b, equalVariances)
	if err != nil {
		return 0, ttestErrorf(opTwoSamplePVal, err)
	}
	p, err := st.pValue()
	if err != nil {
		return 0, ttestErrorf(opTwoSamplePVal, err)
	}

	return p, nil
}

// Test reports whether the one-sample null hypothesis mean == mu is rejected
// at significance level alpha.
//
// Errors:
//   - ErrAlphaOutOfRange, ErrInsufficientData, ErrConvergence.
func Test(mu float64, sample []float64, alpha float64) (bool, error) {
	s, err := Summarize(sample)
	if err != nil {
		return false, ttestErrorf(opTest, err)
	}

	return TestFromSummary(mu, s, alpha)
}

// TestFromSummary is Test over a precomputed Summary.
func TestFromSummary(mu float64, s Summary, alpha float64) (bool, error) {
	st, err := oneSample(mu, s)
	if err != nil {
		return false, ttestErrorf(opTest, err)
	}
	ok, err := st.reject(alpha)
	if err != nil {
		return false, ttestErrorf(opTest, err)
	}

	return ok, nil
}

// PairedTest reports whether the paired null hypothesis mean(a − b) == 0 is
// rejected at alpha.
func PairedTest(a, b []float64, alpha float64) (bool, error) {
	st, err := paired(a, b)
	if err != nil {
		return false, ttestErrorf(opPairedTest, err)
	}
	ok, err := st.reject(alpha)
	if err != nil {
		return false, ttestErrorf(opPairedTest, err)
	}

	return ok, nil
}

// TwoSampleTest reports whether the null hypothesis of equal means is
// rejected at alpha.
func TwoSampleTest(a, b []float64, equalVariances bool, alpha float64) (bool, error) {
	sa, sb, err := summarizeBoth(a, b)
	if err != nil {
		return false, ttestErrorf(opTwoSampleTest, err)
	}

	return TwoSampleTestFromSummary(sa, sb, equalVariances, alpha)
}

// TwoSampleTestFromSummary is TwoSampleTest over precomputed Summaries.
func TwoSampleTestFromSummary(a, b Summary, equalVariances bool, alpha float64) (bool, error) {
	st, err := twoSample(a, b, equalVariances)
	if err != nil {
		return false, ttestErrorf(opTwoSampleTest, err)
	}
	ok, err := st.reject(alpha)
	if err != nil {
		return false, ttestErrorf(opTwoSampleTest, err)
	}

	return ok, nil
}

func summarizeBoth(a, b []float64) (Summary, Summary, error) {
	sa, err := Summarize(a)
	if err != nil {
		return Summary{}, Summary{}, fmt.Errorf("first sample: %w", err)
	}
	sb, err := Summarize(b)
	if err != nil {
		return Summary{}, Summary{}, fmt.Errorf("second sample: %w", err)
	}

	return sa, sb, nil
}
