// SPDX-License-Identifier: MIT

// Package ttest implements Student's t-tests: one-sample, paired and
// two-sample, the latter with pooled (equal variance) or Welch–Satterthwaite
// (unequal variance) degrees of freedom.
//
// Every test comes in three forms:
//
//	T...       – the t statistic
//	PValue...  – the two-tailed p-value, 2·P(T <= −|t|)
//	Test...    – whether the null hypothesis is rejected at alpha (p < alpha)
//
// Raw-sample forms need at least two observations per sample. FromSummary
// forms take a Summary (mean, unbiased variance, count) instead of the data.
// alpha must lie strictly between 0 and 0.5.
//
// The t distribution comes from gonum's stat/distuv; Summarize uses
// stat.MeanVariance.
package ttest
