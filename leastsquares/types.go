// SPDX-License-Identifier: MIT

package leastsquares

import "github.com/katalvlaran/lsq/matrix"

// ModelFunc maps a length-P parameter vector to the length-N model value and
// the N×P Jacobian at that point. It must be pure: the same point yields the
// same result and the function has no observable side effects. The point
// slice is a private copy and may be retained.
type ModelFunc func(point []float64) (value []float64, jacobian matrix.Matrix, err error)

// ValueFunc computes only the model value.
type ValueFunc func(point []float64) ([]float64, error)

// JacobianFunc computes only the model Jacobian.
type JacobianFunc func(point []float64) (matrix.Matrix, error)

// ModelFromFuncs combines separate value and Jacobian functions into a
// ModelFunc. It returns nil when either function is nil, which Build
// reports as ErrNilModel.
func ModelFromFuncs(value ValueFunc, jacobian JacobianFunc) ModelFunc {
	if value == nil || jacobian == nil {
		return nil
	}

	return func(point []float64) ([]float64, matrix.Matrix, error) {
		v, err := value(point)
		if err != nil {
			return nil, nil, err
		}
		j, err := jacobian(point)
		if err != nil {
			return nil, nil, err
		}

		return v, j, nil
	}
}
