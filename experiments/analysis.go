package experiments

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"svplan/rollout"
	"svplan/tasks"
)

// valueDataSet adapts the state value function V(s) = max_a Q[s][a]
// over a 2-D state grid to the heat map interface.
type valueDataSet struct {
	q    *mat.Dense
	grid *tasks.Grid
}

var _ plotter.GridXYZ = &valueDataSet{}

func (d *valueDataSet) Dims() (int, int) {
	return d.grid.Count(1), d.grid.Count(0)
}

func (d *valueDataSet) Z(c, r int) float64 {
	state := r*d.grid.Count(1) + c
	return floats.Max(d.q.RawRowView(state))
}

func (d *valueDataSet) X(c int) float64 {
	return d.grid.AxisPoint(1, c)
}

func (d *valueDataSet) Y(r int) float64 {
	return d.grid.AxisPoint(0, r)
}

func plotValueHeatMap(plotPath string, q *mat.Dense, grid *tasks.Grid) error {
	p := plot.New()
	p.Title.Text = "State value"
	p.X.Label.Text = "dim 1"
	p.Y.Label.Text = "dim 0"
	p.Add(plotter.NewHeatMap(&valueDataSet{q: q, grid: grid}, palette.Heat(20, 1)))
	return p.Save(8*vg.Inch, 8*vg.Inch, plotPath)
}

// plotTrajectories draws the first state coordinate of each rollout
// over time.
func plotTrajectories(plotPath string, trajectories []*rollout.Trajectory) error {
	p := plot.New()
	p.Title.Text = "Rollouts"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "State[0]"
	for i, traj := range trajectories {
		points := make(plotter.XYs, traj.Len())
		for j := 0; j < traj.Len(); j++ {
			state, _, _, _ := traj.Get(j)
			points[j] = plotter.XY{
				X: float64(j),
				Y: state[0],
			}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, plotPath)
}
