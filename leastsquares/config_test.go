// SPDX-License-Identifier: MIT
package leastsquares_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lsq/leastsquares"
	"github.com/katalvlaran/lsq/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_BuildErrors(t *testing.T) {
	model := lineModel(t, []float64{0, 1})
	cases := []struct {
		name string
		cfg  leastsquares.Config
		want error
	}{
		{"NilModel", leastsquares.Config{Start: []float64{0}, Target: []float64{1}}, leastsquares.ErrNilModel},
		{"NilFromFuncs", leastsquares.Config{Start: []float64{0}, Target: []float64{1}, Model: leastsquares.ModelFromFuncs(nil, nil)}, leastsquares.ErrNilModel},
		{"NoObservations", leastsquares.Config{Start: []float64{0}, Model: model}, leastsquares.ErrNoObservations},
		{"NoParameters", leastsquares.Config{Target: []float64{1, 2}, Model: model}, leastsquares.ErrNoParameters},
		{"NaNTarget", leastsquares.Config{Start: []float64{0, 0}, Target: []float64{1, math.NaN()}, Model: model}, matrix.ErrNaNInf},
		{"InfStart", leastsquares.Config{Start: []float64{math.Inf(1), 0}, Target: []float64{1, 2}, Model: model}, matrix.ErrNaNInf},
		{"ConflictingWeights", leastsquares.Config{
			Start: []float64{0, 0}, Target: []float64{1, 2}, Model: model,
			Weight: mustDiag(t, 1, 1), WeightSqrt: mustDiag(t, 1, 1),
		}, leastsquares.ErrConflictingWeights},
		{"WeightShape", leastsquares.Config{
			Start: []float64{0, 0}, Target: []float64{1, 2}, Model: model,
			Weight: mustDiag(t, 1, 1, 1),
		}, leastsquares.ErrDimensionMismatch},
		{"WeightSqrtShape", leastsquares.Config{
			Start: []float64{0, 0}, Target: []float64{1, 2}, Model: model,
			WeightSqrt: mustFrom(t, [][]float64{{1, 0}}),
		}, leastsquares.ErrDimensionMismatch},
		{"NegativeDiagonalWeight", leastsquares.Config{
			Start: []float64{0, 0}, Target: []float64{1, 2}, Model: model,
			Weight: mustDiag(t, 1, -1),
		}, leastsquares.ErrNonPositiveWeight},
		{"AsymmetricWeight", leastsquares.Config{
			Start: []float64{0, 0}, Target: []float64{1, 2}, Model: model,
			Weight: mustFrom(t, [][]float64{{2, 1}, {0, 2}}),
		}, matrix.ErrAsymmetry},
		{"IndefiniteWeight", leastsquares.Config{
			Start: []float64{0, 0}, Target: []float64{1, 2}, Model: model,
			Weight: mustFrom(t, [][]float64{{1, 2}, {2, 1}}),
		}, matrix.ErrNotPositiveDefinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.cfg.Build()
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, p)
		})
	}
}

func TestConfig_TypedNilWeightIsIdentity(t *testing.T) {
	var w *matrix.Diagonal
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Weight: w,
		Model:  fixedModel([]float64{1, 2}, mustFrom(t, [][]float64{{1, 0}, {0, 1}})),
	})
	r, err := evalAtStart(t, p).ComputeResiduals()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -3}, r)
}

func TestConfig_BuildCopiesInputs(t *testing.T) {
	start := []float64{1, 2}
	target := []float64{3, -1}
	weight := mustDiag(t, 4, 9)
	p := mustBuild(t, leastsquares.Config{
		Start:  start,
		Target: target,
		Weight: weight,
		Model:  fixedModel([]float64{1, 2}, mustFrom(t, [][]float64{{1, 0}, {0, 1}})),
	})

	start[0] = 100
	target[0] = 100
	require.NoError(t, weight.Set(0, 0, 100))

	got := p.Start()
	assert.Equal(t, []float64{1, 2}, got)
	got[1] = -7
	assert.Equal(t, []float64{1, 2}, p.Start())

	r, err := evalAtStart(t, p).ComputeResiduals()
	require.NoError(t, err)
	assert.Equal(t, []float64{4, -9}, r) // (2, -3) scaled by (√4, √9)
}

func TestConfig_ZeroDiagonalWeightIgnoresObservation(t *testing.T) {
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{0, 0},
		Target: []float64{3, -1},
		Weight: mustDiag(t, 1, 0),
		Model:  fixedModel([]float64{1, 2}, mustFrom(t, [][]float64{{1, 0}, {0, 1}})),
	})
	cost, err := evalAtStart(t, p).ComputeCost()
	require.NoError(t, err)
	assert.InEpsilon(t, 2.0, cost, 1e-15)
}

func TestConfig_ModelFromFuncs(t *testing.T) {
	var valueCalls, jacobianCalls int
	value := func(p []float64) ([]float64, error) {
		valueCalls++
		return []float64{p[0], 2 * p[0]}, nil
	}
	jacobian := func([]float64) (matrix.Matrix, error) {
		jacobianCalls++
		return matrix.NewDenseFrom([][]float64{{1}, {2}})
	}
	p := mustBuild(t, leastsquares.Config{
		Start:  []float64{1},
		Target: []float64{1, 2},
		Model:  leastsquares.ModelFromFuncs(value, jacobian),
	})
	e := evalAtStart(t, p)
	assert.Equal(t, 1, valueCalls)
	assert.Equal(t, 1, jacobianCalls)

	cost, err := e.ComputeCost()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
}

func TestOptions_PanicOnInvalidArguments(t *testing.T) {
	assert.Panics(t, func() { leastsquares.WithMaxEvaluations(-1)(&leastsquares.Options{}) })
	assert.Panics(t, func() { leastsquares.WithLogger(nil)(&leastsquares.Options{}) })
	assert.Panics(t, func() { leastsquares.WithEvaluationCounter(nil)(&leastsquares.Options{}) })
}

func TestOptions_Defaults(t *testing.T) {
	o := leastsquares.DefaultOptions()
	assert.Equal(t, leastsquares.DefaultMaxEvaluations, o.MaxEvaluations)
	assert.NotNil(t, o.Logger)
	assert.Nil(t, o.Counter)
}

func TestWeightKind_String(t *testing.T) {
	assert.Equal(t, "diagonal", leastsquares.WeightDiagonal.String())
	assert.Equal(t, "dense", leastsquares.WeightDense.String())
	assert.Equal(t, "WeightKind(7)", leastsquares.WeightKind(7).String())
}

// nanDiagonal reports NaN on the main diagonal and zero elsewhere, a shape
// the package's own constructors refuse to hold.
type nanDiagonal struct{ matrix.Matrix }

func (m nanDiagonal) At(i, j int) (float64, error) {
	if _, err := m.Matrix.At(i, j); err != nil {
		return 0, err
	}
	if i == j {
		return math.NaN(), nil
	}

	return 0, nil
}

func TestConfig_NonFiniteDiagonalWeightSqrt(t *testing.T) {
	p, err := leastsquares.Config{
		Start:      []float64{0, 0},
		Target:     []float64{1, 2},
		WeightSqrt: nanDiagonal{mustFrom(t, [][]float64{{1, 0}, {0, 1}})},
		Model:      lineModel(t, []float64{0, 1}),
	}.Build()
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	assert.Nil(t, p)
}

func TestProblem_WeightSqrtDiagonalCopy(t *testing.T) {
	p := mustBuild(t, leastsquares.Config{
		Start:      []float64{0, 0},
		Target:     []float64{1, 2},
		WeightSqrt: mustFrom(t, [][]float64{{2, 0}, {0, 3}}),
		Model:      lineModel(t, []float64{0, 1}),
	})
	require.Equal(t, leastsquares.WeightDiagonal, p.WeightKind())

	s := p.WeightSqrt()
	require.NotNil(t, s)
	d, ok := s.(*matrix.Diagonal)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 3}, d.Diagonal())

	require.NoError(t, d.Set(0, 0, 100))
	assert.Equal(t, 2.0, mustAt(t, p.WeightSqrt(), 0, 0))
}
