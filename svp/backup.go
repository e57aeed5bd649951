package svp

import (
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"svplan/mdp"
)

// partialBackup computes the one-step Bellman backup at every observed
// entry, reading only the previous round's table. Unobserved entries of
// the returned matrix are zero and carry no meaning; the mask says
// which entries are set. Rows are split across workers and no two
// goroutines touch the same row.
func partialBackup(m mdp.MDP, prev *mat.Dense, mask *Mask, gamma float64, workers int) *mat.Dense {
	rows, cols := mask.Dims()
	out := mat.NewDense(rows, cols, nil)
	if workers < 1 {
		workers = 1
	}
	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > rows {
			hi = rows
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for s := lo; s < hi; s++ {
				for a := 0; a < cols; a++ {
					if !mask.At(s, a) {
						continue
					}
					out.Set(s, a, backupEntry(m, prev, s, a, gamma))
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

// backupEntry is the Bellman operator at a single (state, action) pair:
// reward plus the discounted expectation of the best next value.
func backupEntry(m mdp.MDP, prev *mat.Dense, s, a int, gamma float64) float64 {
	expected := 0.0
	for _, t := range m.Successors(s, a) {
		expected += t.Prob * floats.Max(prev.RawRowView(t.State))
	}
	return m.Reward(s, a) + gamma*expected
}
