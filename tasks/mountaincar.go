package tasks

import (
	"math"

	"svplan/mdp"
	"svplan/rollout"
)

// Mountain car constants, the standard published ones.
const (
	carMinPosition  = -1.2
	carMaxPosition  = 0.6
	carMaxVelocity  = 0.07
	carGoalPosition = 0.5
	carForceScale   = 0.001
	carGravity      = 0.0025
)

// MountainCar is the underpowered car in a valley: position and
// velocity state, throttle control in [-1, 1], reward -1 per step until
// the goal position is reached. The goal is absorbing.
type MountainCar struct {
	States  *Grid
	Actions *Grid
}

var (
	_ mdp.MDP          = &MountainCar{}
	_ rollout.Dynamics = &MountainCar{}
)

func NewMountainCar(statesPerDim, numActions int) *MountainCar {
	return &MountainCar{
		States: NewGrid(
			[]float64{carMinPosition, -carMaxVelocity},
			[]float64{carMaxPosition, carMaxVelocity},
			[]int{statesPerDim, statesPerDim},
		),
		Actions: NewGrid([]float64{-1}, []float64{1}, []int{numActions}),
	}
}

func (c *MountainCar) NumStates() int {
	return c.States.Len()
}

func (c *MountainCar) NumActions() int {
	return c.Actions.Len()
}

func (c *MountainCar) Successors(s, a int) []mdp.Transition {
	point := c.States.Point(s)
	if c.Done(point) {
		// Absorbing goal.
		return []mdp.Transition{{State: s, Prob: 1}}
	}
	next := c.Step(point, c.Actions.Point(a))
	return []mdp.Transition{{State: c.States.Index(next), Prob: 1}}
}

func (c *MountainCar) Reward(s, a int) float64 {
	if c.Done(c.States.Point(s)) {
		return 0
	}
	return -1
}

// Step applies the classic mountain car update. Hitting the left wall
// kills the velocity.
func (c *MountainCar) Step(state, control []float64) []float64 {
	position, velocity := state[0], state[1]
	velocity += carForceScale*control[0] - carGravity*math.Cos(3*position)
	velocity = math.Max(-carMaxVelocity, math.Min(carMaxVelocity, velocity))
	position += velocity
	if position < carMinPosition {
		position = carMinPosition
		velocity = 0
	}
	if position > carMaxPosition {
		position = carMaxPosition
	}
	return []float64{position, velocity}
}

func (c *MountainCar) Done(state []float64) bool {
	return state[0] >= carGoalPosition
}
