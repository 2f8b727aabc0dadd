// SPDX-License-Identifier: MIT

package leastsquares

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxEvaluations disables the evaluation cap.
const DefaultMaxEvaluations = 0

// Panic messages for invalid option arguments.
const (
	panicMaxEvaluationsNegative = "leastsquares: WithMaxEvaluations(n): n must be >= 0"
	panicNilLogger              = "leastsquares: WithLogger(nil)"
	panicNilCounter             = "leastsquares: WithEvaluationCounter(nil)"
)

// Options collects the ambient behaviour of a Problem. The problem data itself
// lives in Config.
//
// MaxEvaluations – upper bound on Evaluate calls; 0 means unlimited.
// Logger         – structured logger; defaults to a discarding handler.
// Counter        – optional metric incremented once per model invocation.
type Options struct {
	MaxEvaluations int
	Logger         *slog.Logger
	Counter        prometheus.Counter
}

// Option represents a functional option for configuring a Problem.
type Option func(*Options)

// WithMaxEvaluations caps the number of Evaluate calls. The call that pushes
// the count past n fails with ErrTooManyEvaluations without invoking the
// model. Negative n panics.
func WithMaxEvaluations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(panicMaxEvaluationsNegative)
		}
		o.MaxEvaluations = n
	}
}

// WithLogger routes Build and Evaluate diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			panic(panicNilLogger)
		}
		o.Logger = l
	}
}

// WithEvaluationCounter registers a counter that is incremented every time
// the model function actually runs.
func WithEvaluationCounter(c prometheus.Counter) Option {
	return func(o *Options) {
		if c == nil {
			panic(panicNilCounter)
		}
		o.Counter = c
	}
}

// DefaultOptions returns the defaults every Build starts from.
//
// Defaults:
//   - MaxEvaluations: DefaultMaxEvaluations (unlimited).
//   - Logger:         text handler writing to io.Discard.
//   - Counter:        nil (no metric).
func DefaultOptions() Options {
	return Options{
		MaxEvaluations: DefaultMaxEvaluations,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// gatherOptions applies user options over DefaultOptions in order.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
