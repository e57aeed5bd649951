package svp

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestExtractPolicyGreedy(t *testing.T) {
	q := mat.NewDense(3, 3, []float64{
		0, 2, 1,
		5, 4, 3,
		-2, -1, -3,
	})
	policy := ExtractPolicy(q)
	want := []int{1, 0, 1}
	for s, a := range want {
		if policy.Action(s) != a {
			t.Errorf("state %d: got action %d, want %d", s, policy.Action(s), a)
		}
	}
}

func TestExtractPolicyTieBreaksLowestIndex(t *testing.T) {
	q := mat.NewDense(2, 3, []float64{
		1, 1, 1,
		0.5, 1, 1,
	})
	policy := ExtractPolicy(q)
	if policy.Action(0) != 0 {
		t.Errorf("state 0: got action %d, want 0 on a three-way tie", policy.Action(0))
	}
	if policy.Action(1) != 1 {
		t.Errorf("state 1: got action %d, want 1 on a two-way tie", policy.Action(1))
	}
}
