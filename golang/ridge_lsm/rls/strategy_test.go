package rls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestStrategyByName(t *testing.T) {
	for name, want := range map[string]string{
		"":               StrategyAuto,
		"auto":           StrategyAuto,
		" Cholesky ":     StrategyCholesky,
		"pseudo-inverse": StrategyPseudoInverse,
		"svd":            StrategyPseudoInverse,
		"pinv":           StrategyPseudoInverse,
	} {
		strategy, err := StrategyByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, strategy.Name(), name)
	}

	_, err := StrategyByName("qr")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategiesAgreeOnWellConditionedSystems(t *testing.T) {
	x, y, _ := linearDataset(rand.NewSource(seed+3), 40, 4)
	noise := rand.New(rand.NewSource(seed + 4))
	w := make([]float64, len(y))
	for p := range y {
		y[p] += 0.1 * noise.NormFloat64()
		w[p] = noise.Float64() * 3
	}

	for _, l2 := range []float64{0, 0.5, 10} {
		chol, err := Fit(x, y, WithL2(l2), WithWeights(w), WithStrategy(CholeskyStrategy{}))
		require.NoError(t, err)
		svd, err := Fit(x, y, WithL2(l2), WithWeights(w), WithStrategy(PseudoInverseStrategy{}))
		require.NoError(t, err)
		auto, err := Fit(x, y, WithL2(l2), WithWeights(w))
		require.NoError(t, err)

		assert.Equal(t, StrategyCholesky, chol.Method)
		assert.Equal(t, StrategyPseudoInverse, svd.Method)
		assert.Equal(t, StrategyCholesky, auto.Method)
		assert.Equal(t, 5, svd.Rank)
		assert.InDeltaSlice(t, chol.Theta, svd.Theta, 1e-9, "l2 = %v", l2)
		assert.Equal(t, chol.Theta, auto.Theta)
	}
}

func TestCholeskyStrategyRejectsSingularSystem(t *testing.T) {
	// the second feature duplicates the first one
	x := [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	y := []float64{1, 2, 3, 4}

	design, err := NewDesignMatrix(x, y, nil)
	require.NoError(t, err)
	system, err := design.BuildNormalEquations(0)
	require.NoError(t, err)

	solution, err := CholeskyStrategy{}.Solve(system)
	if err == nil {
		// rounding may let the factorization through, but never as a well conditioned system
		assert.Greater(t, solution.Cond*solution.Cond, instabilityCond)
	} else {
		assert.ErrorIs(t, err, ErrNotPositiveDefinite)
	}

	auto, err := AutoStrategy{}.Solve(system)
	require.NoError(t, err)
	assert.Equal(t, StrategyPseudoInverse, auto.Method)
	assert.Equal(t, 2, auto.Rank)
	// the minimum-norm split of the slope 1 across two equal columns is 1/2 each
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0}, auto.Theta.RawVector().Data, 1e-9)
}

func TestStrategiesReportConditionOfDataMatrix(t *testing.T) {
	// orthogonal columns (1, -1, 0, 0), (0, 0, b, -b) and the ones column have
	// singular values sqrt(2), sqrt(2) * b and 2
	const b = 1e-4
	x := [][]float64{{1, 0}, {-1, 0}, {0, b}, {0, -b}}
	y := []float64{3, -1, 1 + 2*b, 1 - 2*b}
	want := 2 / (math.Sqrt2 * b)

	chol, err := Fit(x, y, WithStrategy(CholeskyStrategy{}))
	require.NoError(t, err)
	svd, err := Fit(x, y, WithStrategy(PseudoInverseStrategy{}))
	require.NoError(t, err)

	assert.InEpsilon(t, want, chol.Cond, 1e-3)
	assert.InEpsilon(t, want, svd.Cond, 1e-6)
	assert.Empty(t, chol.Warnings)
	assert.Empty(t, svd.Warnings)
	assert.InDeltaSlice(t, []float64{2, 2, 1}, chol.Theta, 1e-6)
	assert.InDeltaSlice(t, chol.Theta, svd.Theta, 1e-6)

	// cond(Lhs) = want^2 is past 1/sqrt(eps), so Auto leaves Cholesky
	auto, err := Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, StrategyPseudoInverse, auto.Method)
}
