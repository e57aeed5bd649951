package rollout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"svplan/mdp"
	"svplan/svp"
)

// lineStates discretizes [-1, 1] into 21 points 0.1 apart.
type lineStates struct{}

func (lineStates) Len() int { return 21 }

func (lineStates) Index(p []float64) int {
	i := int(math.Round((p[0] + 1) / 0.1))
	if i < 0 {
		return 0
	}
	if i > 20 {
		return 20
	}
	return i
}

func (lineStates) Point(i int) []float64 {
	return []float64{-1 + 0.1*float64(i)}
}

// lineActions are the three controls {-0.1, 0, 0.1}.
type lineActions struct{}

func (lineActions) Len() int { return 3 }

func (lineActions) Index(p []float64) int {
	return int(math.Round(p[0]/0.1)) + 1
}

func (lineActions) Point(i int) []float64 {
	return []float64{0.1 * float64(i-1)}
}

type lineDynamics struct {
	neverDone bool
}

func (d lineDynamics) Step(state, control []float64) []float64 {
	return []float64{state[0] + control[0]}
}

func (d lineDynamics) Done(state []float64) bool {
	return !d.neverDone && math.Abs(state[0]) < 0.05
}

// homingPolicy always steps toward the origin.
func homingPolicy() *svp.Policy {
	q := mat.NewDense(21, 3, nil)
	for i := 0; i < 21; i++ {
		x := -1 + 0.1*float64(i)
		best := 1
		if x > 0.05 {
			best = 0
		} else if x < -0.05 {
			best = 2
		}
		q.Set(i, best, 1)
	}
	return svp.ExtractPolicy(q)
}

func TestSimulatorTerminatesUnderBudget(t *testing.T) {
	sim := &Simulator{
		States:   lineStates{},
		Actions:  lineActions{},
		Dynamics: lineDynamics{},
		Policy:   homingPolicy(),
		MaxSteps: 50,
	}
	traj := sim.Run([]float64{1})
	if traj.Len() >= 50 {
		t.Fatalf("stabilizing rollout used the whole budget")
	}
	final := traj.Final()
	if math.Abs(final[0]) >= 0.05 {
		t.Errorf("final state %g not at the target", final[0])
	}
}

func TestSimulatorRespectsStepBudget(t *testing.T) {
	sim := &Simulator{
		States:   lineStates{},
		Actions:  lineActions{},
		Dynamics: lineDynamics{neverDone: true},
		Policy:   homingPolicy(),
		MaxSteps: 25,
	}
	if got := sim.Run([]float64{1}).Len(); got != 25 {
		t.Errorf("trajectory length %d, want the budget of 25", got)
	}
}

// ringMDP cycles through its states whatever the action.
type ringMDP struct {
	states int
}

func (m *ringMDP) NumStates() int  { return m.states }
func (m *ringMDP) NumActions() int { return 2 }

func (m *ringMDP) Successors(s, a int) []mdp.Transition {
	return []mdp.Transition{{State: (s + 1) % m.states, Prob: 1}}
}

func (m *ringMDP) Reward(s, a int) float64 { return 0 }

func TestModelSimulatorFollowsDeterministicModel(t *testing.T) {
	model := &ringMDP{states: 4}
	sim := &ModelSimulator{
		Model:    model,
		Policy:   svp.ExtractPolicy(mat.NewDense(4, 2, nil)),
		MaxSteps: 6,
	}
	got := sim.Run(0, nil)
	want := []int{0, 1, 2, 3, 0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v, want %v", got, want)
		}
	}
}

func TestModelSimulatorStopsAtTerminal(t *testing.T) {
	model := &ringMDP{states: 4}
	sim := &ModelSimulator{
		Model:    model,
		Policy:   svp.ExtractPolicy(mat.NewDense(4, 2, nil)),
		MaxSteps: 100,
	}
	got := sim.Run(0, func(s int) bool { return s == 2 })
	if got[len(got)-1] != 2 {
		t.Errorf("rollout did not stop at the terminal state: %v", got)
	}
	if len(got) != 3 {
		t.Errorf("visited %v, want three states", got)
	}
}
