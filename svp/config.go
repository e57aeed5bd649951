package svp

import (
	"fmt"
	"runtime"
)

// Estimation engine names, matching the --estimator flag.
const (
	EstimatorSVT        = "svt"
	EstimatorSoftImpute = "softimp"
	// Nuclear-norm regularized completion is what the soft-impute
	// engine solves, so the two names share an implementation.
	EstimatorNuclearNorm = "nucnorm"
)

// Config carries every solver parameter. A Config is passed to
// NewSolver and never mutated afterwards; there is no global state.
type Config struct {
	// ObservationRate is the Bernoulli probability of sampling each
	// (state, action) entry per iteration, in (0, 1]. A rate of 1
	// recovers exact value iteration and never invokes estimation.
	ObservationRate float64
	// Discount factor gamma, in [0, 1).
	Discount float64
	// Tolerance on the sup-norm change between successive tables.
	Tolerance float64
	// MaxIterations caps the number of outer rounds.
	MaxIterations int
	// Workers bounds the parallelism of the backup phase. Zero uses
	// one worker per CPU.
	Workers int
	// Seed for the mask sampler. The same seed, shape and rate
	// reproduce the same sequence of masks.
	Seed uint64

	// Estimator names the completion engine: "svt", "softimp" or
	// "nucnorm". Empty selects soft-impute.
	Estimator string
	// Rank is the truncation rank for the svt engine. Zero picks
	// min(|S|, |A|)/4 + 1.
	Rank int
	// Shrinkage is the singular-value threshold for the soft-impute
	// engine. Zero picks a twentieth of the largest singular value.
	Shrinkage float64
	// EstimationIterations caps the inner impute-threshold loop.
	EstimationIterations int
	// EstimationTolerance is the sup-norm stability criterion of the
	// inner loop.
	EstimationTolerance float64

	// OnIteration, when set, is called after every round with the
	// round number and the current delta.
	OnIteration func(iteration int, delta float64)
}

func (c *Config) applyDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = 1e-4
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 2000
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Estimator == "" {
		c.Estimator = EstimatorSoftImpute
	}
	if c.EstimationIterations == 0 {
		c.EstimationIterations = 200
	}
	if c.EstimationTolerance == 0 {
		c.EstimationTolerance = 1e-6
	}
}

func (c *Config) validate() error {
	if c.ObservationRate <= 0 || c.ObservationRate > 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("observation rate %g outside (0, 1]", c.ObservationRate)}
	}
	if c.Discount < 0 || c.Discount >= 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("discount %g outside [0, 1)", c.Discount)}
	}
	if c.Tolerance <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("non-positive tolerance %g", c.Tolerance)}
	}
	if c.MaxIterations < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("negative iteration cap %d", c.MaxIterations)}
	}
	switch c.Estimator {
	case EstimatorSVT, EstimatorSoftImpute, EstimatorNuclearNorm:
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown estimator %q", c.Estimator)}
	}
	return nil
}
