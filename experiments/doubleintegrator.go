package experiments

import (
	"fmt"

	"github.com/spf13/cobra"

	"svplan/tasks"
)

func DoubleIntegratorCommand() *cobra.Command {
	var statesPerDim int
	var numActions int
	var horizon int

	cmd := &cobra.Command{
		Use: "double-integrator",
		Run: func(cmd *cobra.Command, args []string) {
			di := tasks.NewDoubleIntegrator(statesPerDim, numActions)
			t := &task{
				name:     "double_integrator",
				model:    di,
				states:   di.States,
				actions:  di.Actions,
				dynamics: di,
				starts: [][]float64{
					{2, 1},
					{-1.5, -1},
					{2.5, -2},
				},
				horizon: horizon,
			}
			if err := runTask(signalContext(), t); err != nil {
				fmt.Println(err)
			}
		},
	}
	cmd.PersistentFlags().IntVar(&statesPerDim, "grid", 61, "States per state dimension")
	cmd.PersistentFlags().IntVar(&numActions, "actions", 11, "Number of discretized actions")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", 600, "Rollout step budget")
	return cmd
}
