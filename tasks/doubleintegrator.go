package tasks

import (
	"math"

	"svplan/mdp"
	"svplan/rollout"
)

// DoubleIntegrator is the second-order point mass: position and
// velocity state, acceleration control, quadratic state and control
// cost. The discretized transition applies one Euler step to the cell
// center and snaps back onto the grid.
type DoubleIntegrator struct {
	States  *Grid
	Actions *Grid
	Dt      float64
	// GoalTol bounds |position| and |velocity| in the terminal
	// predicate used by rollouts.
	GoalTol float64
}

var (
	_ mdp.MDP          = &DoubleIntegrator{}
	_ rollout.Dynamics = &DoubleIntegrator{}
)

// NewDoubleIntegrator discretizes position and velocity over [-3, 3]
// with statesPerDim points each, and acceleration over [-1, 1].
func NewDoubleIntegrator(statesPerDim, numActions int) *DoubleIntegrator {
	return &DoubleIntegrator{
		States:  NewGrid([]float64{-3, -3}, []float64{3, 3}, []int{statesPerDim, statesPerDim}),
		Actions: NewGrid([]float64{-1}, []float64{1}, []int{numActions}),
		Dt:      0.05,
		GoalTol: 0.05,
	}
}

func (d *DoubleIntegrator) NumStates() int {
	return d.States.Len()
}

func (d *DoubleIntegrator) NumActions() int {
	return d.Actions.Len()
}

func (d *DoubleIntegrator) Successors(s, a int) []mdp.Transition {
	next := d.Step(d.States.Point(s), d.Actions.Point(a))
	return []mdp.Transition{{State: d.States.Index(next), Prob: 1}}
}

// Reward is the negative quadratic cost on position, velocity and
// control effort.
func (d *DoubleIntegrator) Reward(s, a int) float64 {
	p := d.States.Point(s)
	u := d.Actions.Point(a)
	return -(p[0]*p[0] + p[1]*p[1] + 0.1*u[0]*u[0])
}

// Step integrates the continuous dynamics with one forward Euler step,
// clamped to the state box.
func (d *DoubleIntegrator) Step(state, control []float64) []float64 {
	x, v := state[0], state[1]
	next := []float64{x + d.Dt*v, v + d.Dt*control[0]}
	return d.States.Clamp(next)
}

// Done holds when the mass is close enough to rest at the origin.
func (d *DoubleIntegrator) Done(state []float64) bool {
	return math.Abs(state[0]) < d.GoalTol && math.Abs(state[1]) < d.GoalTol
}
