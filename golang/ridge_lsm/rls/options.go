package rls

import "go.uber.org/zap"

//fitParams collects the optional arguments of a fit.
type fitParams struct {
	l2       float64
	weights  []float64
	strategy Strategy
	logger   *zap.Logger
}

//Option customizes a single call of Fit or FitLSM.
type Option func(*fitParams)

func defaultFitParams() fitParams {
	return fitParams{
		l2:       0,
		strategy: AutoStrategy{},
		logger:   zap.NewNop(),
	}
}

//WithL2 sets the ridge strength. The intercept is never penalized.
func WithL2(l2 float64) Option {
	return func(p *fitParams) {
		p.l2 = l2
	}
}

//WithWeights sets per-sample weights. A nil slice means all ones.
//The slice is read, never retained or modified.
func WithWeights(weights []float64) Option {
	return func(p *fitParams) {
		p.weights = weights
	}
}

//WithStrategy replaces the default AutoStrategy.
func WithStrategy(strategy Strategy) Option {
	return func(p *fitParams) {
		if strategy != nil {
			p.strategy = strategy
		}
	}
}

// WithLogger attaches a logger; fits log at debug level and report numeric
// instability at warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *fitParams) {
		if logger != nil {
			p.logger = logger
		}
	}
}
