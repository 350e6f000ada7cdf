package rls

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

//Model is a fitted coefficient vector: one weight per feature followed by the intercept.
type Model struct {
	Theta []float64
}

//Coefficients returns the feature weights without the intercept.
func (m Model) Coefficients() []float64 {
	return m.Theta[:len(m.Theta)-1]
}

//Intercept returns the constant term.
func (m Model) Intercept() float64 {
	return m.Theta[len(m.Theta)-1]
}

//Norm returns the euclidean norm of the whole coefficient vector, intercept included.
func (m Model) Norm() float64 {
	return floats.Norm(m.Theta, 2)
}

//PredictOne returns the model value for a single observation.
func (m Model) PredictOne(row []float64) (float64, error) {
	coefficients := m.Coefficients()
	if len(row) != len(coefficients) {
		return 0, errors.Wrapf(ErrShapeMismatch, "observation has %d features, model has %d", len(row), len(coefficients))
	}
	return floats.Dot(coefficients, row) + m.Intercept(), nil
}

//Predict returns the model values for every row of x.
func (m Model) Predict(x [][]float64) ([]float64, error) {
	prediction := make([]float64, len(x))
	for p, row := range x {
		val, err := m.PredictOne(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", p)
		}
		prediction[p] = val
	}
	return prediction, nil
}

//WeightedMse returns sum(w * (y - prediction)^2) / sum(w). A nil w means all ones.
func (m Model) WeightedMse(x [][]float64, y, w []float64) (float64, error) {
	prediction, err := m.Predict(x)
	if err != nil {
		return 0, err
	}
	if err = validateVectors(len(x), y, w); err != nil {
		return 0, err
	}

	total, norm := 0.0, 0.0
	for p := range prediction {
		weight := 1.0
		if w != nil {
			weight = w[p]
		}
		diff := y[p] - prediction[p]
		total += weight * diff * diff
		norm += weight
	}
	if norm == 0 {
		return 0, errors.Wrap(ErrInvalidWeight, "weights sum to zero")
	}
	return total / norm, nil
}

//Rmse returns the root mean squared error of the model on (x, y).
func (m Model) Rmse(x [][]float64, y []float64) (float64, error) {
	mse, err := m.WeightedMse(x, y, nil)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

//Score returns the coefficient of determination R^2 of the model on (x, y).
func (m Model) Score(x [][]float64, y []float64) (float64, error) {
	prediction, err := m.Predict(x)
	if err != nil {
		return 0, err
	}
	if err = validateVectors(len(x), y, nil); err != nil {
		return 0, err
	}

	mean := floats.Sum(y) / float64(len(y))
	tss, rss := 0.0, 0.0
	for p := range y {
		tss += (y[p] - mean) * (y[p] - mean)
		rss += (y[p] - prediction[p]) * (y[p] - prediction[p])
	}
	if tss < 1e-15 {
		return 1, nil
	}
	return 1 - rss/tss, nil
}
