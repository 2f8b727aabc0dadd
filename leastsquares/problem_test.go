// SPDX-License-Identifier: MIT
package leastsquares_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lsq/leastsquares"
	"github.com/katalvlaran/lsq/matrix"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingModel wraps fixedModel and counts invocations.
func countingModel(t *testing.T, calls *atomic.Int64) leastsquares.ModelFunc {
	t.Helper()
	inner := fixedModel([]float64{1, 2}, mustFrom(t, [][]float64{{1, 0}, {0, 1}}))
	return func(p []float64) ([]float64, matrix.Matrix, error) {
		calls.Add(1)
		return inner(p)
	}
}

func TestProblem_Sizes(t *testing.T) {
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{1, 2},
		Target: []float64{1, 2, 3},
		Model:  lineModel(t, []float64{0, 1, 2}),
	})
	assert.Equal(t, 3, p.ObservationSize())
	assert.Equal(t, 2, p.ParameterSize())
	assert.Equal(t, []float64{1, 2}, p.Start())
	assert.Equal(t, 0, p.Evaluations())
}

func TestProblem_EvaluationLimit(t *testing.T) {
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	}, leastsquares.WithMaxEvaluations(2))

	for i := 0; i < 2; i++ {
		_, err := p.Evaluate([]float64{0, 0})
		require.NoError(t, err)
	}
	_, err := p.Evaluate([]float64{0, 0})
	require.ErrorIs(t, err, leastsquares.ErrTooManyEvaluations)
	assert.Equal(t, int64(2), calls.Load(), "model must not run past the limit")
	assert.Equal(t, 3, p.Evaluations())
}

func TestProblem_UnlimitedByDefault(t *testing.T) {
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	})
	for i := 0; i < 1000; i++ {
		_, err := p.Evaluate([]float64{0, 0})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1000), calls.Load())
}

func TestProblem_EvaluateDimensionMismatch(t *testing.T) {
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	})
	_, err := p.Evaluate([]float64{0, 0, 0})
	require.ErrorIs(t, err, leastsquares.ErrDimensionMismatch)
	assert.Equal(t, int64(0), calls.Load())
	assert.Equal(t, 1, p.Evaluations())
}

func TestProblem_ModelError(t *testing.T) {
	boom := errors.New("boom")
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0},
		Target: []float64{1},
		Model: func([]float64) ([]float64, matrix.Matrix, error) {
			return nil, nil, boom
		},
	})
	_, err := p.Evaluate([]float64{0})
	require.ErrorIs(t, err, leastsquares.ErrModel)
	require.ErrorIs(t, err, boom)
}

func TestProblem_ModelReceivesPrivateCopy(t *testing.T) {
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{1, 2},
		Target: []float64{0, 0},
		Model: func(pt []float64) ([]float64, matrix.Matrix, error) {
			pt[0] = -1 // scribbling on the argument must not reach the evaluation
			return []float64{0, 0}, nil, nil
		},
	})
	e := evalAtStart(t, p)
	assert.Equal(t, []float64{1, 2}, e.Point())
}

func TestProblem_ConcurrentEvaluate(t *testing.T) {
	const (
		workers = 8
		each    = 50
	)
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	})

	var wg sync.WaitGroup
	errs := make(chan error, workers*each)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				e, err := p.Evaluate([]float64{0, 0})
				if err != nil {
					errs <- err
					continue
				}
				if _, err = e.ComputeCost(); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, workers*each, p.Evaluations())
	assert.Equal(t, int64(workers*each), calls.Load())
}

func TestProblem_ConcurrentEvaluationLimit(t *testing.T) {
	const limit = 25
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	}, leastsquares.WithMaxEvaluations(limit))

	var (
		wg       sync.WaitGroup
		rejected atomic.Int64
	)
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := p.Evaluate([]float64{0, 0}); errors.Is(err, leastsquares.ErrTooManyEvaluations) {
					rejected.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limit), calls.Load())
	assert.Equal(t, int64(100-limit), rejected.Load())
}

func TestProblem_EvaluationCounterMetric(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lsq",
		Name:      "model_evaluations_total",
		Help:      "Number of model function invocations.",
	})
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	}, leastsquares.WithEvaluationCounter(counter), leastsquares.WithMaxEvaluations(2))

	for i := 0; i < 3; i++ {
		_, _ = p.Evaluate([]float64{0, 0})
	}
	_, _ = p.Evaluate([]float64{0})

	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}

func TestProblem_LogsLimit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var calls atomic.Int64
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Model:  countingModel(t, &calls),
	}, leastsquares.WithLogger(logger), leastsquares.WithMaxEvaluations(1))

	_, err := p.Evaluate([]float64{0, 0})
	require.NoError(t, err)
	_, err = p.Evaluate([]float64{0, 0})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "least-squares problem built")
	assert.Contains(t, out, "model evaluated")
	assert.Contains(t, out, "evaluation limit exceeded")
	assert.Contains(t, out, "max_evaluations=1")
}
