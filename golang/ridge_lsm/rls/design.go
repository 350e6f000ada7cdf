package rls

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

//DesignMatrix holds the data of one fit: observations with the intercept column
//already appended, the target and the sample weights. All three are private copies,
//so a DesignMatrix never aliases caller memory.
type DesignMatrix struct {
	Features *mat.Dense    // n x (m+1), the last column is all ones
	Target   *mat.VecDense // n
	Weights  *mat.VecDense // n, all ones when the caller gave none
}

//NewDesignMatrix validates x, y and w and builds the augmented design matrix.
//w may be nil.
func NewDesignMatrix(x [][]float64, y, w []float64) (*DesignMatrix, error) {
	h := len(x)
	if h == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "no observations")
	}
	width := len(x[0])
	if width == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "observations have no features")
	}
	for p, row := range x {
		if len(row) != width {
			return nil, errors.Wrapf(ErrShapeMismatch, "row %d has %d features, row 0 has %d", p, len(row), width)
		}
	}
	if err := validateVectors(h, y, w); err != nil {
		return nil, err
	}

	features := mat.NewDense(h, width+1, nil)
	for p, row := range x {
		dst := features.RawRowView(p)
		for q, val := range row {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, errors.Wrapf(ErrNonFinite, "x[%d][%d] = %v", p, q, val)
			}
			dst[q] = val
		}
		dst[width] = 1
	}

	return &DesignMatrix{
		Features: features,
		Target:   mat.NewVecDense(h, append([]float64(nil), y...)),
		Weights:  weightsOrOnes(h, w),
	}, nil
}

//NewDesignMatrixFromDense is NewDesignMatrix for observations that are already a gonum matrix.
func NewDesignMatrixFromDense(x mat.Matrix, y, w []float64) (*DesignMatrix, error) {
	return NewDesignMatrix(RowsOf(x), y, w)
}

func validateVectors(h int, y, w []float64) error {
	if len(y) != h {
		return errors.Wrapf(ErrShapeMismatch, "target has %d values for %d observations", len(y), h)
	}
	for p, val := range y {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return errors.Wrapf(ErrNonFinite, "y[%d] = %v", p, val)
		}
	}
	if w == nil {
		return nil
	}
	if len(w) != h {
		return errors.Wrapf(ErrShapeMismatch, "%d weights for %d observations", len(w), h)
	}
	for p, val := range w {
		if val < 0 || math.IsNaN(val) || math.IsInf(val, 0) {
			return errors.Wrapf(ErrInvalidWeight, "w[%d] = %v", p, val)
		}
	}
	return nil
}

func weightsOrOnes(h int, w []float64) *mat.VecDense {
	data := make([]float64, h)
	if w == nil {
		for p := range data {
			data[p] = 1
		}
	} else {
		copy(data, w)
	}
	return mat.NewVecDense(h, data)
}

//validatedDimensions returns the number of observations and the number of
//parameters (features plus the intercept).
func (dm *DesignMatrix) validatedDimensions() (h, d int) {
	h, d = dm.Features.Dims()
	if dm.Target.Len() != h || dm.Weights.Len() != h {
		panic("rls: inconsistent design matrix")
	}
	return h, d
}

//Height returns the number of observations.
func (dm *DesignMatrix) Height() int {
	return Height(dm.Features)
}

//FeatureCount returns m, the number of features without the intercept.
func (dm *DesignMatrix) FeatureCount() int {
	_, d := dm.Features.Dims()
	return d - 1
}
