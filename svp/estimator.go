package svp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Estimator reconstructs a dense value table from the entries observed
// under a mask, assuming the target table is approximately low rank.
// A fully observed table must be returned unchanged.
type Estimator interface {
	Estimate(observed *mat.Dense, mask *Mask) (*mat.Dense, error)
}

func newEstimator(cfg *Config) Estimator {
	switch cfg.Estimator {
	case EstimatorSVT:
		return &SVTEstimator{
			Rank:          cfg.Rank,
			MaxIterations: cfg.EstimationIterations,
			Tolerance:     cfg.EstimationTolerance,
		}
	default:
		return &SoftImputeEstimator{
			Shrinkage:     cfg.Shrinkage,
			MaxIterations: cfg.EstimationIterations,
			Tolerance:     cfg.EstimationTolerance,
		}
	}
}

// SVTEstimator completes the table by repeated hard truncation of the
// SVD to a target rank, re-imputing the observed entries after every
// truncation until the reconstruction stabilizes.
type SVTEstimator struct {
	// Rank to truncate to. Non-positive picks min(rows, cols)/4 + 1.
	Rank          int
	MaxIterations int
	Tolerance     float64
}

var _ Estimator = &SVTEstimator{}

func (e *SVTEstimator) Estimate(observed *mat.Dense, mask *Mask) (*mat.Dense, error) {
	return complete(observed, mask, e.MaxIterations, e.Tolerance, func(values []float64) {
		rank := e.Rank
		if rank <= 0 {
			rank = len(values)/4 + 1
		}
		for i := rank; i < len(values); i++ {
			values[i] = 0
		}
	})
}

// SoftImputeEstimator completes the table by iterative soft
// singular-value shrinkage, the proximal step of nuclear-norm
// regularized completion.
type SoftImputeEstimator struct {
	// Shrinkage subtracted from every singular value. Non-positive
	// picks a twentieth of the largest singular value.
	Shrinkage     float64
	MaxIterations int
	Tolerance     float64
}

var _ Estimator = &SoftImputeEstimator{}

func (e *SoftImputeEstimator) Estimate(observed *mat.Dense, mask *Mask) (*mat.Dense, error) {
	return complete(observed, mask, e.MaxIterations, e.Tolerance, func(values []float64) {
		tau := e.Shrinkage
		if tau <= 0 && len(values) > 0 {
			// Values come back sorted in descending order.
			tau = values[0] / 20
		}
		for i, v := range values {
			values[i] = math.Max(0, v-tau)
		}
	})
}

// complete runs the impute-threshold loop shared by both engines.
// Unobserved entries start at zero; each pass factorizes the current
// guess, shrinks the spectrum in place, rebuilds the matrix and resets
// the observed entries to their exact values. The loop stops when the
// sup-norm change falls below tol, and fails with a
// NumericalInstabilityError when the factorization breaks down or the
// cap runs out first.
func complete(observed *mat.Dense, mask *Mask, maxIter int, tol float64, shrink func([]float64)) (*mat.Dense, error) {
	if mask.Full() {
		return mat.DenseCopyOf(observed), nil
	}
	rows, cols := observed.Dims()
	cur := mat.DenseCopyOf(observed)
	residual := math.Inf(1)
	var svd mat.SVD
	for iter := 0; iter < maxIter; iter++ {
		if !svd.Factorize(cur, mat.SVDThin) {
			return nil, &NumericalInstabilityError{Iterations: iter, Residual: residual}
		}
		values := svd.Values(nil)
		shrink(values)
		var u, v mat.Dense
		svd.UTo(&u)
		svd.VTo(&v)
		next := rebuild(&u, values, &v)
		// Observed entries are ground truth for this round.
		for s := 0; s < rows; s++ {
			for a := 0; a < cols; a++ {
				if mask.At(s, a) {
					next.Set(s, a, observed.At(s, a))
				}
			}
		}
		residual = supDiff(next, cur)
		cur = next
		if residual < tol {
			return cur, nil
		}
	}
	return nil, &NumericalInstabilityError{Iterations: maxIter, Residual: residual}
}

// rebuild multiplies U diag(values) Vᵀ.
func rebuild(u *mat.Dense, values []float64, v *mat.Dense) *mat.Dense {
	var scaled mat.Dense
	scaled.Mul(u, mat.NewDiagDense(len(values), values))
	var out mat.Dense
	out.Mul(&scaled, v.T())
	return &out
}

// supDiff is the entrywise sup-norm distance between two matrices of
// the same shape.
func supDiff(a, b *mat.Dense) float64 {
	rows, cols := a.Dims()
	max := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if d := math.Abs(a.At(i, j) - b.At(i, j)); d > max {
				max = d
			}
		}
	}
	return max
}
