package svp

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"svplan/mdp"
)

// switchMDP has two actions that deterministically jump to state 0 or
// state 1. Action 0 pays 1, action 1 pays 0, so the optimal table is
// Q(s, 0) = 1/(1-gamma) and Q(s, 1) = gamma/(1-gamma) for every state.
type switchMDP struct {
	states int
}

func (m *switchMDP) NumStates() int  { return m.states }
func (m *switchMDP) NumActions() int { return 2 }

func (m *switchMDP) Successors(s, a int) []mdp.Transition {
	return []mdp.Transition{{State: a, Prob: 1}}
}

func (m *switchMDP) Reward(s, a int) float64 {
	if a == 0 {
		return 1
	}
	return 0
}

func optimalSwitchQ(states int, gamma float64) *mat.Dense {
	q := mat.NewDense(states, 2, nil)
	for s := 0; s < states; s++ {
		q.Set(s, 0, 1/(1-gamma))
		q.Set(s, 1, gamma/(1-gamma))
	}
	return q
}

func TestSolveExactReachesFixedPoint(t *testing.T) {
	solver, err := NewSolver(&switchMDP{states: 2}, Config{
		ObservationRate: 1,
		Discount:        0.9,
		Tolerance:       1e-8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != Converged {
		t.Fatalf("status %s, want converged", result.Status)
	}
	if result.Degraded {
		t.Errorf("full observation run marked degraded")
	}
	if !mat.EqualApprox(result.Q, optimalSwitchQ(2, 0.9), 1e-4) {
		t.Errorf("table off the known fixed point:\n%v", mat.Formatted(result.Q))
	}
	policy := ExtractPolicy(result.Q)
	for s := 0; s < 2; s++ {
		if policy.Action(s) != 0 {
			t.Errorf("state %d: greedy action %d, want 0", s, policy.Action(s))
		}
	}
}

func TestSolveExactDeltaNonIncreasing(t *testing.T) {
	deltas := make([]float64, 0)
	solver, err := NewSolver(&switchMDP{states: 4}, Config{
		ObservationRate: 1,
		Discount:        0.9,
		Tolerance:       1e-8,
		OnIteration: func(_ int, delta float64) {
			deltas = append(deltas, delta)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := solver.Solve(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(deltas); i++ {
		if deltas[i] > deltas[i-1]+1e-12 {
			t.Errorf("delta increased from %g to %g at round %d", deltas[i-1], deltas[i], i)
		}
	}
}

// Full observation must reproduce plain value iteration round for
// round.
func TestSolveExactMatchesFullBackups(t *testing.T) {
	model := &switchMDP{states: 3}
	rounds := make([]*mat.Dense, 0)
	solver, err := NewSolver(model, Config{
		ObservationRate: 1,
		Discount:        0.9,
		Tolerance:       1e-6,
		MaxIterations:   25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := mat.NewDense(3, 2, nil)
	for i := 0; i < 25; i++ {
		next := partialBackup(model, prev, fullMask(3, 2), 0.9, 1)
		rounds = append(rounds, next)
		prev = next
	}
	result, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mat.EqualApprox(result.Q, rounds[result.Iterations-1], 1e-12) {
		t.Errorf("solver table differs from iterated full backups")
	}
}

func TestSolvePartialObservationBoundedError(t *testing.T) {
	exact := optimalSwitchQ(10, 0.9)
	solver, err := NewSolver(&switchMDP{states: 10}, Config{
		ObservationRate: 0.5,
		Discount:        0.9,
		Tolerance:       1e-4,
		MaxIterations:   5000,
		Seed:            13,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := supDiff(result.Q, exact)
	if diff > 2 {
		t.Errorf("partial observation table off by %g, want within 2 of the exact fixed point", diff)
	}
}

func TestSolveReproducibleAcrossRuns(t *testing.T) {
	run := func() *mat.Dense {
		solver, err := NewSolver(&switchMDP{states: 10}, Config{
			ObservationRate: 0.5,
			Discount:        0.9,
			Tolerance:       1e-4,
			MaxIterations:   200,
			Seed:            21,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, err := solver.Solve(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result.Q
	}
	if !mat.EqualApprox(run(), run(), 0) {
		t.Errorf("same seed produced different tables")
	}
}

func TestSolveDegradedFallback(t *testing.T) {
	// An inner cap of one iteration with zero tolerance cannot
	// stabilize, so every partial round falls back.
	solver, err := NewSolver(&switchMDP{states: 10}, Config{
		ObservationRate:      0.5,
		Discount:             0.9,
		Tolerance:            1e-6,
		MaxIterations:        500,
		Seed:                 3,
		EstimationIterations: 1,
		EstimationTolerance:  math.SmallestNonzeroFloat64,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("solve aborted instead of degrading: %v", err)
	}
	if !result.Degraded {
		t.Errorf("expected a degraded result")
	}
	// Falling back to asynchronous backups still converges on this
	// model.
	diff := supDiff(result.Q, optimalSwitchQ(10, 0.9))
	if diff > 1e-2 {
		t.Errorf("degraded table off by %g", diff)
	}
}

func TestNewSolverRejectsBadConfig(t *testing.T) {
	cases := []Config{
		{ObservationRate: 0, Discount: 0.9},
		{ObservationRate: 1.5, Discount: 0.9},
		{ObservationRate: 1, Discount: 1},
		{ObservationRate: 1, Discount: -0.1},
		{ObservationRate: 1, Discount: 0.9, Estimator: "magic"},
	}
	for i, cfg := range cases {
		if _, err := NewSolver(&switchMDP{states: 2}, cfg); err == nil {
			t.Errorf("case %d: expected a configuration error", i)
		}
	}
}

func TestNewSolverRejectsMalformedModel(t *testing.T) {
	_, err := NewSolver(&badProbMDP{}, Config{ObservationRate: 1, Discount: 0.9})
	if err == nil {
		t.Fatalf("expected a configuration error")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("got %T, want *ConfigurationError", err)
	}
}

type badProbMDP struct{}

func (m *badProbMDP) NumStates() int  { return 2 }
func (m *badProbMDP) NumActions() int { return 1 }

func (m *badProbMDP) Successors(s, a int) []mdp.Transition {
	return []mdp.Transition{{State: 0, Prob: 0.7}}
}

func (m *badProbMDP) Reward(s, a int) float64 { return 0 }

func TestSolveFromRejectsWrongShape(t *testing.T) {
	solver, err := NewSolver(&switchMDP{states: 2}, Config{ObservationRate: 1, Discount: 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := solver.SolveFrom(context.Background(), mat.NewDense(3, 3, nil)); err == nil {
		t.Errorf("expected an error for a mis-shaped warm start")
	}
}

func TestSolveStopsOnCancelledContext(t *testing.T) {
	solver, err := NewSolver(&switchMDP{states: 2}, Config{ObservationRate: 1, Discount: 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := solver.Solve(ctx); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
