package rollout

// Trajectory of a rollout as (state, control, nextState) triplets in
// continuous coordinates.
type Trajectory struct {
	states     [][]float64
	controls   [][]float64
	nextStates [][]float64
}

func NewTrajectory() *Trajectory {
	return &Trajectory{
		states:     make([][]float64, 0),
		controls:   make([][]float64, 0),
		nextStates: make([][]float64, 0),
	}
}

func (t *Trajectory) Append(state, control, nextState []float64) {
	t.states = append(t.states, state)
	t.controls = append(t.controls, control)
	t.nextStates = append(t.nextStates, nextState)
}

func (t *Trajectory) Len() int {
	return len(t.states)
}

func (t *Trajectory) Get(i int) ([]float64, []float64, []float64, bool) {
	if i >= len(t.states) {
		return nil, nil, nil, false
	}
	return t.states[i], t.controls[i], t.nextStates[i], true
}

func (t *Trajectory) Last() ([]float64, []float64, []float64, bool) {
	if len(t.states) < 1 {
		return nil, nil, nil, false
	}
	lastIndex := len(t.states) - 1
	return t.states[lastIndex], t.controls[lastIndex], t.nextStates[lastIndex], true
}

// Final is the continuous state the rollout ended in, or the start
// state for an empty trajectory.
func (t *Trajectory) Final() []float64 {
	if len(t.nextStates) == 0 {
		return nil
	}
	return t.nextStates[len(t.nextStates)-1]
}
