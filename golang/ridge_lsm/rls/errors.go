package rls

import "github.com/pkg/errors"

// Sentinel errors returned by the solver. Callers match them with errors.Is;
// the returned values are usually wrapped with the offending row or index.
var (
	//ErrShapeMismatch is returned for ragged rows, empty inputs or when the target
	//or weight length differs from the number of observations.
	ErrShapeMismatch = errors.New("rls: shape mismatch")

	//ErrInvalidWeight is returned for a negative or non-finite sample weight.
	ErrInvalidWeight = errors.New("rls: invalid weight")

	//ErrInvalidRegularization is returned for a negative or non-finite L2 strength.
	ErrInvalidRegularization = errors.New("rls: invalid regularization")

	//ErrNonFinite is returned when an observation or a target value is NaN or ±Inf.
	ErrNonFinite = errors.New("rls: NaN or Inf in observations")

	//ErrNumericInstability is advisory. It is reported in Result.Warnings next to a
	//complete best-effort solution and never returned as the error of a fit.
	ErrNumericInstability = errors.New("rls: numerically unstable system")

	//ErrNotPositiveDefinite is returned by CholeskyStrategy when the normal matrix
	//cannot be factorized.
	ErrNotPositiveDefinite = errors.New("rls: normal matrix is not positive definite")

	//ErrFactorization is returned when a decomposition fails to converge.
	ErrFactorization = errors.New("rls: factorization failed")

	//ErrUnknownStrategy is returned by StrategyByName.
	ErrUnknownStrategy = errors.New("rls: unknown solver strategy")
)
