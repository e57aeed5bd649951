package experiments

import (
	"fmt"

	"github.com/spf13/cobra"

	"svplan/tasks"
)

func MountainCarCommand() *cobra.Command {
	var statesPerDim int
	var numActions int
	var horizon int

	cmd := &cobra.Command{
		Use: "mountain-car",
		Run: func(cmd *cobra.Command, args []string) {
			mc := tasks.NewMountainCar(statesPerDim, numActions)
			t := &task{
				name:     "mountain_car",
				model:    mc,
				states:   mc.States,
				actions:  mc.Actions,
				dynamics: mc,
				starts: [][]float64{
					{-0.5, 0},
					{-0.9, 0.02},
				},
				horizon: horizon,
			}
			if err := runTask(signalContext(), t); err != nil {
				fmt.Println(err)
			}
		},
	}
	cmd.PersistentFlags().IntVar(&statesPerDim, "grid", 150, "States per state dimension")
	cmd.PersistentFlags().IntVar(&numActions, "actions", 3, "Number of discretized actions")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", 1000, "Rollout step budget")
	return cmd
}
