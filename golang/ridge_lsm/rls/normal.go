package rls

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//NormalEquations is the system Lhs * theta = Rhs of a weighted ridge fit.
type NormalEquations struct {
	Lhs  *mat.SymDense // X'^T diag(W) X' + L2 * diag(1, ..., 1, 0)
	Rhs  *mat.VecDense // X'^T diag(W) Y
	Rows int           // the number of observations behind the system

	design *DesignMatrix
	l2     float64
}

//Dim returns the number of unknowns.
func (ne *NormalEquations) Dim() int {
	return ne.Rhs.Len()
}

//SquareRoot returns the least squares form of the system: Lhs = Root^T Root and
//Rhs = Root^T RootRhs. Root is sqrt(W) X' stacked over sqrt(L2) [I 0] when L2 > 0.
//It is built on demand, only solvers that factorize the data matrix need it.
func (ne *NormalEquations) SquareRoot() (root *mat.Dense, rootRhs *mat.VecDense, err error) {
	if ne.design == nil {
		return nil, nil, errors.New("rls: normal equations without a design matrix")
	}
	root, rootRhs = ne.design.squareRoot(ne.l2)
	return root, rootRhs, nil
}

//accumulateHessian sums w_p x'_p x'_p^T over the augmented rows into the upper
//triangle of a d x d tensor.
func (dm *DesignMatrix) accumulateHessian() (hessian *tensor.Dense, err error) {
	h, d := dm.validatedDimensions()

	hessian = tensor.New(tensor.WithShape(d, d), tensor.Of(tensor.Float64))
	accum, ok := hessian.Data().([]float64)
	if !ok {
		return nil, errors.New("rls: hessian is not float64")
	}
	for p := 0; p < h; p++ {
		weight := dm.Weights.AtVec(p)
		if weight == 0 {
			continue
		}
		row := dm.Features.RawRowView(p)
		for q := 0; q < d; q++ {
			wq := weight * row[q]
			if wq == 0 {
				continue
			}
			dst := accum[q*d : (q+1)*d]
			for r := q; r < d; r++ {
				dst[r] += wq * row[r]
			}
		}
	}
	return hessian, nil
}

//BuildNormalEquations forms the weighted, regularized normal equations of dm.
//The last unknown is the intercept and stays out of the penalty.
func (dm *DesignMatrix) BuildNormalEquations(l2 float64) (*NormalEquations, error) {
	h, d := dm.validatedDimensions()

	hessian, err := dm.accumulateHessian()
	if err != nil {
		return nil, errors.Wrap(err, "hessian")
	}

	lhs := mat.NewSymDense(d, nil)
	for q := 0; q < d; q++ {
		for r := q; r < d; r++ {
			val, err := hessian.At(q, r)
			if err != nil {
				return nil, errors.Wrap(err, "hessian")
			}
			v := val.(float64)
			if q == r && q != d-1 {
				v += l2
			}
			lhs.SetSym(q, r, v)
		}
	}

	rhs := mat.NewVecDense(d, nil)
	for p := 0; p < h; p++ {
		target := dm.Weights.AtVec(p) * dm.Target.AtVec(p)
		if target == 0 {
			continue
		}
		rhs.AddScaledVec(rhs, target, dm.Features.RowView(p))
	}

	return &NormalEquations{Lhs: lhs, Rhs: rhs, Rows: h, design: dm, l2: l2}, nil
}
//squareRoot builds the weighted least squares matrix whose Gram matrix is the
//regularized normal matrix. The ridge rows leave the intercept column at zero.
func (dm *DesignMatrix) squareRoot(l2 float64) (*mat.Dense, *mat.VecDense) {
	h, d := dm.validatedDimensions()
	extra := 0
	if l2 > 0 {
		extra = d - 1
	}

	root := mat.NewDense(h+extra, d, nil)
	rootRhs := mat.NewVecDense(h+extra, nil)
	for p := 0; p < h; p++ {
		scale := math.Sqrt(dm.Weights.AtVec(p))
		dst := root.RawRowView(p)
		for q, val := range dm.Features.RawRowView(p) {
			dst[q] = scale * val
		}
		rootRhs.SetVec(p, scale*dm.Target.AtVec(p))
	}

	penalty := math.Sqrt(l2)
	for q := 0; q < extra; q++ {
		root.Set(h+q, q, penalty)
	}
	return root, rootRhs
}
