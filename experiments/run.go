package experiments

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"gonum.org/v1/gonum/mat"

	"svplan/mdp"
	"svplan/rollout"
	"svplan/store"
	"svplan/svp"
	"svplan/tasks"
	"svplan/util"
)

// task bundles everything the run harness needs: the discretized model,
// the grids to map indices back to physical units, the true dynamics
// for rollouts and the start states to verify from.
type task struct {
	name     string
	model    mdp.MDP
	states   *tasks.Grid
	actions  *tasks.Grid
	dynamics rollout.Dynamics
	starts   [][]float64
	horizon  int
}

func tableStore() store.Store {
	if redisAddr != "" {
		return store.NewRedisStore(redisAddr)
	}
	return store.NewFileStore(saveDir)
}

func runTask(ctx context.Context, t *task) error {
	cfg, err := solverConfig()
	if err != nil {
		return err
	}

	rows, cols := t.model.NumStates(), t.model.NumActions()
	fmt.Printf("Running %s: %d states, %d actions\n", t.name, rows, cols)

	st := tableStore()
	var warm *mat.Dense
	if cache {
		loaded, err := st.Load(t.name, rows, cols)
		var mismatch *store.DimensionMismatchError
		switch {
		case err == nil:
			fmt.Printf("Warm starting from cached table %q\n", t.name)
			warm = loaded
		case errors.As(err, &mismatch):
			fmt.Printf("Ignoring cached table: %v\n", err)
		}
	}

	progress := newProgressPrinter(t.name)
	cfg.OnIteration = progress.update

	solver, err := svp.NewSolver(t.model, cfg)
	if err != nil {
		return err
	}
	progress.start()
	result, err := solver.SolveFrom(ctx, warm)
	progress.stop()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s after %d iterations (delta %.4g)\n", t.name, result.Status, result.Iterations, result.Delta)
	if result.Degraded {
		fmt.Println("warning: some rounds fell back to the previous table, quality may be degraded")
	}

	if err := st.Save(t.name, result.Q); err != nil {
		fmt.Printf("saving table: %v\n", err)
	}

	policy := svp.ExtractPolicy(result.Q)
	sim := &rollout.Simulator{
		States:   t.states,
		Actions:  t.actions,
		Dynamics: t.dynamics,
		Policy:   policy,
		MaxSteps: t.horizon,
	}
	trajectories := make([]*rollout.Trajectory, 0, len(t.starts))
	for _, start := range t.starts {
		traj := sim.Run(start)
		trajectories = append(trajectories, traj)
		fmt.Printf("rollout from %v: %d steps, final state %v\n", start, traj.Len(), traj.Final())
	}

	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return err
	}
	if t.states.Axes() == 2 {
		if err := plotValueHeatMap(path.Join(saveDir, t.name+"_value.png"), result.Q, t.states); err != nil {
			fmt.Printf("plotting value function: %v\n", err)
		}
	}
	if err := plotTrajectories(path.Join(saveDir, t.name+"_rollouts.png"), trajectories); err != nil {
		fmt.Printf("plotting rollouts: %v\n", err)
	}
	return util.WriteToFile(path.Join(saveDir, t.name+"_config.txt"), configPrintable(cfg)...)
}
