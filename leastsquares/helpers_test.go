// SPDX-License-Identifier: MIT
package leastsquares_test

import (
	"testing"

	"github.com/katalvlaran/lsq/leastsquares"
	"github.com/katalvlaran/lsq/matrix"
	"github.com/stretchr/testify/require"
)

// fixedModel returns a model that ignores its point and always yields
// value and jacobian.
func fixedModel(value []float64, jacobian matrix.Matrix) leastsquares.ModelFunc {
	return func([]float64) ([]float64, matrix.Matrix, error) {
		return value, jacobian, nil
	}
}

// lineModel is y = a + b*x over the given abscissae.
func lineModel(t *testing.T, xs []float64) leastsquares.ModelFunc {
	t.Helper()
	return func(p []float64) ([]float64, matrix.Matrix, error) {
		v := make([]float64, len(xs))
		rows := make([][]float64, len(xs))
		for i, x := range xs {
			v[i] = p[0] + p[1]*x
			rows[i] = []float64{1, x}
		}
		j, err := matrix.NewDenseFrom(rows)
		if err != nil {
			return nil, nil, err
		}

		return v, j, nil
	}
}

func mustFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func mustDiag(t *testing.T, d ...float64) *matrix.Diagonal {
	t.Helper()
	m, err := matrix.NewDiagonal(d)
	require.NoError(t, err)

	return m
}

func mustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func mustBuild(t *testing.T, cfg leastsquares.Config, opts ...leastsquares.Option) *leastsquares.Problem {
	t.Helper()
	p, err := cfg.Build(opts...)
	require.NoError(t, err)

	return p
}

func mustEvaluate(t *testing.T, p *leastsquares.Problem, point []float64) *leastsquares.Evaluation {
	t.Helper()
	ev, err := p.Evaluate(point)
	require.NoError(t, err)

	return ev
}

func evalAtStart(t *testing.T, p *leastsquares.Problem) *leastsquares.Evaluation {
	t.Helper()
	return mustEvaluate(t, p, p.Start())
}
