// Package rls fits linear models in closed form: weighted least squares with an
// optional ridge penalty and an implicit, unpenalized intercept.
//
// The coefficient vector returned by every fit has one entry per feature followed
// by the intercept. A weight of k on a row is equivalent to repeating that row k
// times. Every call is independent and safe for concurrent use.
package rls

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//Result is a fitted coefficient vector together with solver diagnostics.
type Result struct {
	Theta    []float64 // feature coefficients, then the intercept
	Method   string    // the strategy that produced Theta
	Rank     int       // the numerical rank of the normal matrix
	Cond     float64   // see Solution.Cond
	Warnings []error   // advisory only, see ErrNumericInstability
}

//Model returns the fitted model.
func (r *Result) Model() Model {
	return Model{Theta: append([]float64(nil), r.Theta...)}
}

//FitLSM fits a linear model with an intercept to the observations x and the targets y
//and returns the coefficients; the intercept is the last element.
func FitLSM(x [][]float64, y []float64, opts ...Option) ([]float64, error) {
	result, err := Fit(x, y, opts...)
	if err != nil {
		return nil, err
	}
	return result.Theta, nil
}

//Fit is FitLSM with solver diagnostics.
func Fit(x [][]float64, y []float64, opts ...Option) (*Result, error) {
	params := defaultFitParams()
	for _, opt := range opts {
		opt(&params)
	}

	if params.l2 < 0 || math.IsNaN(params.l2) || math.IsInf(params.l2, 0) {
		return nil, errors.Wrapf(ErrInvalidRegularization, "l2 = %v", params.l2)
	}

	design, err := NewDesignMatrix(x, y, params.weights)
	if err != nil {
		return nil, err
	}
	return FitDesign(design, params.l2, params.strategy, params.logger)
}

//FitDesign solves the regularized normal equations of an already validated design matrix.
func FitDesign(design *DesignMatrix, l2 float64, strategy Strategy, logger *zap.Logger) (*Result, error) {
	if l2 < 0 || math.IsNaN(l2) || math.IsInf(l2, 0) {
		return nil, errors.Wrapf(ErrInvalidRegularization, "l2 = %v", l2)
	}
	if strategy == nil {
		strategy = AutoStrategy{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	system, err := design.BuildNormalEquations(l2)
	if err != nil {
		return nil, err
	}

	solution, err := strategy.Solve(system)
	if err != nil {
		return nil, errors.Wrapf(err, "%s solver", strategy.Name())
	}

	result := &Result{
		Theta:  append([]float64(nil), solution.Theta.RawVector().Data...),
		Method: solution.Method,
		Rank:   solution.Rank,
		Cond:   solution.Cond,
	}
	if solution.Rank > 0 && solution.Cond > instabilityCond {
		warning := errors.Wrapf(ErrNumericInstability, "condition number %.3g", solution.Cond)
		result.Warnings = append(result.Warnings, warning)
		logger.Warn("ill conditioned normal equations", zap.Error(warning))
	}

	logger.Debug("fitted",
		zap.Int("observations", system.Rows),
		zap.Int("features", design.FeatureCount()),
		zap.Float64("l2", l2),
		zap.String("method", result.Method),
		zap.Int("rank", result.Rank),
		zap.Float64("cond", result.Cond),
	)
	return result, nil
}
