package svp

import "gonum.org/v1/gonum/mat"

// Policy is the greedy policy read off a value table. It is immutable
// once extracted.
type Policy struct {
	actions []int
}

// ExtractPolicy picks, for every state, the action with the highest
// value. Ties go to the lowest action index, so extraction is
// deterministic.
func ExtractPolicy(q *mat.Dense) *Policy {
	rows, cols := q.Dims()
	actions := make([]int, rows)
	for s := 0; s < rows; s++ {
		best := 0
		bestVal := q.At(s, 0)
		for a := 1; a < cols; a++ {
			if v := q.At(s, a); v > bestVal {
				best, bestVal = a, v
			}
		}
		actions[s] = best
	}
	return &Policy{actions: actions}
}

// Action returns the greedy action index for a state.
func (p *Policy) Action(s int) int {
	return p.actions[s]
}

// NumStates is the number of states the policy covers.
func (p *Policy) NumStates() int {
	return len(p.actions)
}
