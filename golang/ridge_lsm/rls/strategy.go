package rls

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	//StrategyAuto picks Cholesky for well conditioned systems and the pseudo-inverse otherwise.
	StrategyAuto = "auto"
	//StrategyCholesky always uses the Cholesky decomposition.
	StrategyCholesky = "cholesky"
	//StrategyPseudoInverse always uses the SVD based pseudo-inverse.
	StrategyPseudoInverse = "pseudo-inverse"
)

// machineEpsilon is the spacing of float64 values around 1.
const machineEpsilon = 0x1p-52

//Solution is the output of a Strategy.
type Solution struct {
	Theta  *mat.VecDense
	Method string
	Rank   int
	// Cond estimates the condition number of the weighted, regularized data matrix
	// sqrt(W) X' (with its ridge rows), whatever matrix the method factorized.
	Cond float64
}

//Strategy solves symmetric positive semi-definite normal equations.
type Strategy interface {
	Name() string
	Solve(system *NormalEquations) (*Solution, error)
}

//StrategyByName maps a configuration string onto a Strategy.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyAuto:
		return AutoStrategy{}, nil
	case StrategyCholesky:
		return CholeskyStrategy{}, nil
	case StrategyPseudoInverse, "pinv", "svd":
		return PseudoInverseStrategy{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

//rankTolerance is the relative singular value cutoff max(n, d) * eps.
func rankTolerance(system *NormalEquations) float64 {
	size := system.Rows
	if d := system.Dim(); d > size {
		size = d
	}
	return float64(size) * machineEpsilon
}

// instabilityCond is the condition number above which about half of the float64
// digits of the solution can no longer be trusted.
var instabilityCond = 1 / math.Sqrt(machineEpsilon)

//CholeskyStrategy solves the system with a Cholesky decomposition.
type CholeskyStrategy struct{}

func (CholeskyStrategy) Name() string {
	return StrategyCholesky
}

func (CholeskyStrategy) Solve(system *NormalEquations) (*Solution, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(system.Lhs); !ok {
		return nil, errors.Wrapf(ErrNotPositiveDefinite, "%d x %d system", system.Dim(), system.Dim())
	}

	theta := mat.NewVecDense(system.Dim(), nil)
	if err := chol.SolveVecTo(theta, system.Rhs); err != nil {
		// gonum reports a badly conditioned but still solved system as mat.Condition.
		var condErr mat.Condition
		if !errors.As(err, &condErr) {
			return nil, errors.Wrap(ErrFactorization, err.Error())
		}
	}

	// cond(Lhs) is the square of the data matrix condition number.
	return &Solution{Theta: theta, Method: StrategyCholesky, Rank: system.Dim(), Cond: math.Sqrt(chol.Cond())}, nil
}

//PseudoInverseStrategy returns the minimum-norm least squares solution through a thin SVD
//of the square-root form of the system. Singular values below s_max * eps * max(n, d) are
//treated as zero, so rank deficient systems do not fail.
type PseudoInverseStrategy struct{}

func (PseudoInverseStrategy) Name() string {
	return StrategyPseudoInverse
}

func (PseudoInverseStrategy) Solve(system *NormalEquations) (*Solution, error) {
	d := system.Dim()

	root, rootRhs, err := system.SquareRoot()
	if err != nil {
		return nil, err
	}

	var svd mat.SVD
	if ok := svd.Factorize(root, mat.SVDThin); !ok {
		return nil, errors.Wrapf(ErrFactorization, "svd of a %d x %d system", Height(root), d)
	}
	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	projected := mat.NewVecDense(len(values), nil)
	projected.MulVec(u.T(), rootRhs)

	cutoff := values[0] * rankTolerance(system)
	rank := 0
	for ind, s := range values {
		if s > cutoff {
			projected.SetVec(ind, projected.AtVec(ind)/s)
			rank++
		} else {
			projected.SetVec(ind, 0)
		}
	}

	theta := mat.NewVecDense(d, nil)
	theta.MulVec(&v, projected)

	cond := math.Inf(1)
	if rank > 0 {
		cond = values[0] / values[rank-1]
	}
	return &Solution{Theta: theta, Method: StrategyPseudoInverse, Rank: rank, Cond: cond}, nil
}

//AutoStrategy tries Cholesky first and falls back to the pseudo-inverse when the
//normal matrix is not positive definite or its condition number reaches 1/sqrt(eps),
//the point where squaring the data matrix costs half of the float64 digits.
type AutoStrategy struct{}

func (AutoStrategy) Name() string {
	return StrategyAuto
}

func (AutoStrategy) Solve(system *NormalEquations) (*Solution, error) {
	solution, err := CholeskyStrategy{}.Solve(system)
	if err == nil && solution.Cond*solution.Cond < instabilityCond {
		return solution, nil
	}
	return PseudoInverseStrategy{}.Solve(system)
}
