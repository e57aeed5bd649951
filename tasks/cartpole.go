package tasks

import (
	"math"

	"svplan/mdp"
	"svplan/rollout"
)

// Cart-pole constants, the standard published ones.
const (
	poleGravity    = 9.8
	cartMass       = 1.0
	poleMass       = 0.1
	poleHalfLength = 0.5
	poleForceMag   = 10.0
	poleDt         = 0.02

	cartLimit      = 2.4
	cartSpeedLimit = 3.0
	poleAngleLimit = 12 * 2 * math.Pi / 360
	poleSpeedLimit = 3.5
)

// CartPole balances an inverted pendulum on a cart. The state is
// (position, velocity, angle, angular velocity); the control is a
// horizontal force. Reward is 1 while balanced; states past the limits
// are absorbing with zero reward.
type CartPole struct {
	States  *Grid
	Actions *Grid
}

var (
	_ mdp.MDP          = &CartPole{}
	_ rollout.Dynamics = &CartPole{}
)

// NewCartPole discretizes each of the four state dimensions with
// statesPerDim points. State counts grow as statesPerDim^4, so keep it
// coarse.
func NewCartPole(statesPerDim, numActions int) *CartPole {
	return &CartPole{
		States: NewGrid(
			[]float64{-cartLimit, -cartSpeedLimit, -poleAngleLimit, -poleSpeedLimit},
			[]float64{cartLimit, cartSpeedLimit, poleAngleLimit, poleSpeedLimit},
			[]int{statesPerDim, statesPerDim, statesPerDim, statesPerDim},
		),
		Actions: NewGrid([]float64{-poleForceMag}, []float64{poleForceMag}, []int{numActions}),
	}
}

func (c *CartPole) NumStates() int {
	return c.States.Len()
}

func (c *CartPole) NumActions() int {
	return c.Actions.Len()
}

func (c *CartPole) Successors(s, a int) []mdp.Transition {
	point := c.States.Point(s)
	if c.Done(point) {
		return []mdp.Transition{{State: s, Prob: 1}}
	}
	next := c.Step(point, c.Actions.Point(a))
	return []mdp.Transition{{State: c.States.Index(next), Prob: 1}}
}

func (c *CartPole) Reward(s, a int) float64 {
	if c.Done(c.States.Point(s)) {
		return 0
	}
	return 1
}

// Step integrates the cart-pole equations of motion with one Euler
// step.
func (c *CartPole) Step(state, control []float64) []float64 {
	x, xDot, theta, thetaDot := state[0], state[1], state[2], state[3]
	force := control[0]

	totalMass := cartMass + poleMass
	poleMassLength := poleMass * poleHalfLength

	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)
	temp := (force + poleMassLength*thetaDot*thetaDot*sinTheta) / totalMass
	thetaAcc := (poleGravity*sinTheta - cosTheta*temp) /
		(poleHalfLength * (4.0/3.0 - poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	return []float64{
		x + poleDt*xDot,
		xDot + poleDt*xAcc,
		theta + poleDt*thetaDot,
		thetaDot + poleDt*thetaAcc,
	}
}

// Done holds once the cart reaches the edge of the track or the pole
// falls to the failure angle. The boundary grid cells are the absorbing
// failure states of the discretized model.
func (c *CartPole) Done(state []float64) bool {
	return math.Abs(state[0]) >= cartLimit || math.Abs(state[2]) >= poleAngleLimit
}
