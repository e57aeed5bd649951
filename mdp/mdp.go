package mdp

import (
	"fmt"
	"math"
)

// probTolerance bounds how far a transition distribution may deviate
// from summing to 1.
const probTolerance = 1e-6

// Transition is one successor state together with its probability.
type Transition struct {
	State int
	Prob  float64
}

// MDP describes a finite, discretized Markov decision process.
// Implementations must be side-effect free: Successors and Reward are
// queried concurrently during the backup phase.
type MDP interface {
	NumStates() int
	NumActions() int
	// Successors returns the distribution over next states for taking
	// action a in state s. A deterministic model returns a single
	// transition with probability 1.
	Successors(s, a int) []Transition
	// Reward for taking action a in state s.
	Reward(s, a int) float64
}

// Validate checks the model invariants: positive state and action
// counts, transition distributions that sum to 1, successor indices in
// range and finite rewards.
func Validate(m MDP) error {
	numStates := m.NumStates()
	numActions := m.NumActions()
	if numStates <= 0 {
		return fmt.Errorf("non-positive state count %d", numStates)
	}
	if numActions <= 0 {
		return fmt.Errorf("non-positive action count %d", numActions)
	}
	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			sum := 0.0
			for _, t := range m.Successors(s, a) {
				if t.State < 0 || t.State >= numStates {
					return fmt.Errorf("successor %d of (%d, %d) out of range", t.State, s, a)
				}
				if t.Prob < 0 {
					return fmt.Errorf("negative probability %g at (%d, %d)", t.Prob, s, a)
				}
				sum += t.Prob
			}
			if math.Abs(sum-1) > probTolerance {
				return fmt.Errorf("transition probabilities at (%d, %d) sum to %g", s, a, sum)
			}
			if r := m.Reward(s, a); math.IsNaN(r) || math.IsInf(r, 0) {
				return fmt.Errorf("non-finite reward %g at (%d, %d)", r, s, a)
			}
		}
	}
	return nil
}
