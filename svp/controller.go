// Package svp solves finite MDPs with structured value iteration: each
// round backs up a random subsample of the value table and reconstructs
// the rest with low-rank matrix estimation.
package svp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"svplan/mdp"
)

// Status of a finished solve.
type Status int

const (
	Converged Status = iota
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max iterations reached"
	}
	return "unknown"
}

// Result is the outcome of a solve: the final table, how the loop
// finished and whether any round fell back to the previous table after
// an estimation failure.
type Result struct {
	Q          *mat.Dense
	Status     Status
	Iterations int
	Delta      float64
	Degraded   bool
}

// Solver runs structured value iteration over a finite MDP.
type Solver struct {
	model     mdp.MDP
	config    Config
	sampler   *Sampler
	estimator Estimator
}

// NewSolver validates the configuration and the model. Validation
// failures come back as ConfigurationErrors before any iteration has
// run.
func NewSolver(m mdp.MDP, cfg Config) (*Solver, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := mdp.Validate(m); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	return &Solver{
		model:     m,
		config:    cfg,
		sampler:   NewSampler(m.NumStates(), m.NumActions(), cfg.ObservationRate, cfg.Seed),
		estimator: newEstimator(&cfg),
	}, nil
}

// Solve runs from a zero table.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	return s.SolveFrom(ctx, nil)
}

// SolveFrom warm-starts from a previous table, which must match the
// model's dimensions; nil starts from zeros. The working table is
// replaced wholesale at the end of every round, so a returned Result
// always holds a fully formed table. The context is checked between
// rounds only; in-flight numerical work is never interrupted.
func (s *Solver) SolveFrom(ctx context.Context, warm *mat.Dense) (*Result, error) {
	rows, cols := s.model.NumStates(), s.model.NumActions()
	var prev *mat.Dense
	if warm != nil {
		wr, wc := warm.Dims()
		if wr != rows || wc != cols {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("warm start is %dx%d, model wants %dx%d", wr, wc, rows, cols),
			}
		}
		prev = mat.DenseCopyOf(warm)
	} else {
		prev = mat.NewDense(rows, cols, nil)
	}

	degraded := false
	delta := math.Inf(1)
	for iter := 1; iter <= s.config.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mask := s.sampler.Next()
		backups := partialBackup(s.model, prev, mask, s.config.Discount, s.config.Workers)

		var next *mat.Dense
		if mask.Full() {
			next = backups
		} else {
			est, err := s.estimator.Estimate(backups, mask)
			if err != nil {
				var instability *NumericalInstabilityError
				if !errors.As(err, &instability) {
					return nil, err
				}
				// Recoverable: keep the previous table wherever there
				// is no fresh observation this round.
				fmt.Printf("iteration %d: estimation fell back to previous table: %v\n", iter, err)
				next = fallbackTable(prev, backups, mask)
				degraded = true
			} else {
				next = est
			}
		}

		delta = supDiff(next, prev)
		prev = next
		if s.config.OnIteration != nil {
			s.config.OnIteration(iter, delta)
		}
		if delta < s.config.Tolerance {
			return &Result{Q: prev, Status: Converged, Iterations: iter, Delta: delta, Degraded: degraded}, nil
		}
	}
	return &Result{
		Q:          prev,
		Status:     MaxIterationsReached,
		Iterations: s.config.MaxIterations,
		Delta:      delta,
		Degraded:   degraded,
	}, nil
}

// fallbackTable takes the fresh backups at observed entries and the
// previous table everywhere else.
func fallbackTable(prev, backups *mat.Dense, mask *Mask) *mat.Dense {
	out := mat.DenseCopyOf(prev)
	rows, cols := mask.Dims()
	for s := 0; s < rows; s++ {
		for a := 0; a < cols; a++ {
			if mask.At(s, a) {
				out.Set(s, a, backups.At(s, a))
			}
		}
	}
	return out
}
