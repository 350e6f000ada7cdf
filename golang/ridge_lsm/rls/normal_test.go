package rls

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestNewDesignMatrixAppendsInterceptColumn(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	design, err := NewDesignMatrix(x, []float64{1, 2, 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, design.Height())
	assert.Equal(t, 2, design.FeatureCount())
	assert.True(t, mat.Equal(mat.NewDense(3, 3, []float64{
		1, 2, 1,
		3, 4, 1,
		5, 6, 1,
	}), design.Features))
	assert.Equal(t, []float64{1, 1, 1}, design.Weights.RawVector().Data)

	x[0][0] = 100
	assert.Equal(t, 1.0, design.Features.At(0, 0))
}

func TestBuildNormalEquations(t *testing.T) {
	design, err := NewDesignMatrix(
		[][]float64{{1, 0}, {0, 1}, {1, 1}},
		[]float64{1, 2, 3},
		[]float64{1, 2, 0.5},
	)
	require.NoError(t, err)

	system, err := design.BuildNormalEquations(0.25)
	require.NoError(t, err)
	assert.Equal(t, 3, system.Dim())
	assert.Equal(t, 3, system.Rows)

	// X'^T diag(W) X' with [x 1] rows weighted 1, 2, 0.5, plus 0.25 on the feature diagonal
	expected := mat.NewSymDense(3, []float64{
		1.5 + 0.25, 0.5, 1.5,
		0.5, 2.5 + 0.25, 2.5,
		1.5, 2.5, 3.5,
	})
	assert.True(t, mat.EqualApprox(expected, system.Lhs, 1e-12))
	assert.InDeltaSlice(t, []float64{2.5, 5.5, 6.5}, system.Rhs.RawVector().Data, 1e-12)

	// the square-root form reproduces the same system
	root, rootRhs, err := system.SquareRoot()
	require.NoError(t, err)
	var gram mat.Dense
	gram.Mul(root.T(), root)
	assert.True(t, mat.EqualApprox(expected, &gram, 1e-12))
	var rhs mat.VecDense
	rhs.MulVec(root.T(), rootRhs)
	assert.InDeltaSlice(t, system.Rhs.RawVector().Data, rhs.RawVector().Data, 1e-12)
}

func TestSquareRootWithoutRegularizationHasNoPenaltyRows(t *testing.T) {
	design, err := NewDesignMatrix([][]float64{{1}, {2}}, []float64{1, 2}, []float64{4, 9})
	require.NoError(t, err)

	system, err := design.BuildNormalEquations(0)
	require.NoError(t, err)
	root, rootRhs, err := system.SquareRoot()
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{2, 2, 6, 3}), root))
	assert.Equal(t, []float64{2, 6}, rootRhs.RawVector().Data)
}

func TestBuildNormalEquationsKeepsMemoryBounded(t *testing.T) {
	const h, w = 4000, 99
	x, y, _ := linearDataset(rand.NewSource(seed+5), h, w)
	design, err := NewDesignMatrix(x, y, nil)
	require.NoError(t, err)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	system, err := design.BuildNormalEquations(1)
	require.NoError(t, err)
	solution, err := CholeskyStrategy{}.Solve(system)
	require.NoError(t, err)
	runtime.ReadMemStats(&after)

	assert.Equal(t, w+1, solution.Theta.Len())
	// a per row cache of outer products would take h*(w+1)^2 doubles, 320 MB here
	allocated := after.TotalAlloc - before.TotalAlloc
	assert.Less(t, allocated, uint64(8<<20), "allocated %d bytes", allocated)
}

func TestNormalEquationsMatchDenseProduct(t *testing.T) {
	x, y, _ := linearDataset(rand.NewSource(seed+6), 30, 4)
	weights := make([]float64, len(y))
	for p := range weights {
		weights[p] = float64(p%5) * 0.5
	}
	design, err := NewDesignMatrix(x, y, weights)
	require.NoError(t, err)

	system, err := design.BuildNormalEquations(0.7)
	require.NoError(t, err)

	var weighted, expected mat.Dense
	weighted.Apply(func(p, _ int, v float64) float64 { return weights[p] * v }, design.Features)
	expected.Mul(design.Features.T(), &weighted)
	for q := 0; q < 4; q++ {
		expected.Set(q, q, expected.At(q, q)+0.7)
	}
	assert.True(t, mat.EqualApprox(&expected, system.Lhs, 1e-10))

	var rhs mat.VecDense
	rhs.MulVec(weighted.T(), design.Target)
	assert.InDeltaSlice(t, rhs.RawVector().Data, system.Rhs.RawVector().Data, 1e-10)
}
