package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotFitted is returned by Predict on a model that has not been trained.
	ErrNotFitted = errors.New("model: not fitted")
	// ErrShape is returned when inputs have inconsistent dimensions.
	ErrShape = errors.New("model: shape mismatch")
)

// Regressor is a supervised model predicting one real value per row.
type Regressor interface {
	Fit(X mat.Matrix, y []float64) error
	Predict(X mat.Matrix) ([]float64, error)
}

// rowsOf copies X into a row-major slice of rows.
func rowsOf(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := range r {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}
