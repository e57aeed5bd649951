// Package rollout plays a solved policy against task dynamics to
// verify it, independently of the solver internals.
package rollout

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"svplan/mdp"
	"svplan/svp"
)

// Discretizer maps between continuous points and the solver's integer
// indices.
type Discretizer interface {
	Index(point []float64) int
	Point(index int) []float64
	Len() int
}

// Dynamics is the true continuous stepping function of a task, distinct
// from the discretized transition model the solver plans with.
type Dynamics interface {
	Step(state, control []float64) []float64
	// Done is the task's terminal predicate.
	Done(state []float64) bool
}

// Simulator plays a greedy policy against the true dynamics: discretize
// the state, look up the action, map it back to a control and step.
type Simulator struct {
	States   Discretizer
	Actions  Discretizer
	Dynamics Dynamics
	Policy   *svp.Policy
	MaxSteps int
}

// Run rolls out from a continuous start state until the task reports
// done or the step budget runs out. The returned trajectory never feeds
// back into the solver.
func (s *Simulator) Run(start []float64) *Trajectory {
	traj := NewTrajectory()
	state := append([]float64(nil), start...)
	for i := 0; i < s.MaxSteps; i++ {
		if s.Dynamics.Done(state) {
			break
		}
		control := s.Actions.Point(s.Policy.Action(s.States.Index(state)))
		next := s.Dynamics.Step(state, control)
		traj.Append(state, control, next)
		state = next
	}
	return traj
}

// ModelSimulator rolls out inside the discretized model itself,
// sampling successors from the transition distribution. Useful for
// sanity-checking a policy before trusting the continuous mapping.
type ModelSimulator struct {
	Model    mdp.MDP
	Policy   *svp.Policy
	MaxSteps int
	// Src seeds successor sampling for stochastic models; nil uses the
	// global source.
	Src rand.Source
}

// Run follows the policy from a state index and returns the visited
// state indices, the start included. Terminal is optional.
func (s *ModelSimulator) Run(start int, terminal func(int) bool) []int {
	states := []int{start}
	cur := start
	for i := 0; i < s.MaxSteps; i++ {
		if terminal != nil && terminal(cur) {
			break
		}
		transitions := s.Model.Successors(cur, s.Policy.Action(cur))
		if len(transitions) == 1 {
			cur = transitions[0].State
		} else {
			weights := make([]float64, len(transitions))
			for j, t := range transitions {
				weights[j] = t.Prob
			}
			j, ok := sampleuv.NewWeighted(weights, s.Src).Take()
			if !ok {
				break
			}
			cur = transitions[j].State
		}
		states = append(states, cur)
	}
	return states
}
