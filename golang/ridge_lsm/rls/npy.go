package rls

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//ReadNpy reads a one or two dimensional float64 array from an npy file.
//A one dimensional array becomes a single column.
func ReadNpy(fileName string) (denseMat *mat.Dense, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "npy header of %s", fileName)
	}

	for _, dim := range r.Header.Descr.Shape {
		if dim == 0 {
			return nil, errors.Wrapf(ErrShapeMismatch, "%s holds an empty array of shape %v", fileName, r.Header.Descr.Shape)
		}
	}

	denseMat = &mat.Dense{}
	if err = r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "npy data of %s", fileName)
	}
	return denseMat, nil
}

//ReadNpyVector reads an npy file holding either a vector or a single column.
func ReadNpyVector(fileName string) ([]float64, error) {
	denseMat, err := ReadNpy(fileName)
	if err != nil {
		return nil, err
	}
	h, w := denseMat.Dims()
	if w != 1 {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s is %d x %d, expected a single column", fileName, h, w)
	}
	return mat.Col(nil, 0, denseMat), nil
}

//WriteNpy stores values as an n x 1 npy array.
func WriteNpy(fileName string, values []float64) (err error) {
	if len(values) == 0 {
		return errors.Wrapf(ErrShapeMismatch, "nothing to write to %s", fileName)
	}
	dst, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", fileName)
	}
	defer func() {
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
	}()

	column := mat.NewDense(len(values), 1, append([]float64(nil), values...))
	return errors.Wrapf(npyio.Write(dst, column), "write %s", fileName)
}

//Height returns the number of rows of a matrix.
func Height(m mat.Matrix) int {
	h, _ := m.Dims()
	return h
}

//RowsOf copies a matrix into row slices.
func RowsOf(m mat.Matrix) [][]float64 {
	h, w := m.Dims()
	rows := make([][]float64, h)
	for p := 0; p < h; p++ {
		rows[p] = mat.Row(make([]float64, w), p, m)
	}
	return rows
}
