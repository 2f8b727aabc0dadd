// SPDX-License-Identifier: MIT

// Package matrix is the dense linear-algebra layer used by the least-squares
// evaluation model.
//
// The matrix package provides:
//
//   - The Matrix interface: bounds-checked At/Set that return errors instead
//     of panicking, plus deep Clone.
//   - Dense, a row-major flat-buffer implementation, and Diagonal, an n×n
//     matrix that stores only its main diagonal.
//   - Kernels that never mutate their operands: Add, Sub, Mul, Transpose,
//     Scale, ScaleRows, MatVec and Diag.
//   - Factorizations: Householder QR with a caller-supplied singularity
//     threshold (NewQR) and Cholesky for symmetric positive-definite input
//     (NewCholesky).
//   - Statistics over covariance matrices: StandardDeviations, Correlation;
//     and the AllClose comparison used throughout the tests.
//
// Errors are package sentinels (errors.go) wrapped with an operation tag,
// e.g. "QR.Inverse: matrix: singular matrix"; match them with errors.Is.
//
// Kernels take a fast path on *Dense operands (flat-slice loops) and fall
// back to At/Set for any other Matrix, with identical results.
//
//	a, _ := matrix.NewDenseFrom([][]float64{{4, 0}, {0, 1e-4}})
//	qr, _ := matrix.NewQR(a, 1e-10)
//	inv, err := qr.Inverse() // diag(0.25, 1e4)
package matrix
